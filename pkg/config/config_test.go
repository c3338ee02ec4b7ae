package config_test

import (
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "regional_economics", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 500, cfg.Database.BatchSize)

	assert.Equal(t,
		"https://www.regionalstatistik.de/genesisws/rest/2020",
		cfg.API.RegionalURL)
	assert.Equal(t,
		"https://www.landesdatenbank.nrw.de/ldbnrwws/rest/2020",
		cfg.API.LandesURL)
	assert.Equal(t, 300, cfg.API.TimeoutSec)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)
}

func TestUpdate(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptDatabaseHost("db.example.org"),
		config.OptDatabasePort(5433),
		config.OptAPIRegionalUser("RE123456"),
		config.OptAPIRegionalPassword("secret"),
		config.OptLogLevel("debug"),
	})

	assert.Equal(t, "db.example.org", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "RE123456", cfg.API.RegionalUser)
	assert.Equal(t, "secret", cfg.API.RegionalPassword)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestUpdateRejectsInvalid(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptDatabaseHost(""),
		config.OptDatabasePort(-1),
		config.OptDatabaseSSLMode("maybe"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("syslog"),
	})

	// invalid values rejected, defaults survive
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "file", cfg.Log.Destination)
}

func TestAPIURLTrailingSlash(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptAPIRegionalURL("https://example.org/rest/2020/"),
	})
	assert.Equal(t, "https://example.org/rest/2020", cfg.API.RegionalURL)
}

func TestToOptionsRoundTrip(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{
		config.OptDatabaseHost("warehouse"),
		config.OptDatabaseBatchSize(1000),
		config.OptAPILandesUser("LD987654"),
		config.OptLogFormat("text"),
		// runtime-only fields must not survive the round trip
		config.OptPipelineTableID("12411-03-03-4"),
		config.OptPipelineSkipTotals(true),
		config.OptHomeDir("/home/someone"),
	})

	restored := config.New()
	restored.Update(orig.ToOptions())

	assert.Equal(t, "warehouse", restored.Database.Host)
	assert.Equal(t, 1000, restored.Database.BatchSize)
	assert.Equal(t, "LD987654", restored.API.LandesUser)
	assert.Equal(t, "text", restored.Log.Format)

	assert.Empty(t, restored.Pipeline.TableID)
	assert.False(t, restored.Pipeline.SkipTotals)
	assert.Empty(t, restored.HomeDir)
}

func TestVars(t *testing.T) {
	home := "/home/someone"

	assert.Equal(t, "/home/someone/.config/regiodb",
		config.ConfigDir(home))
	assert.Equal(t, "/home/someone/.config/regiodb/config.yaml",
		config.ConfigFilePath(home))
	assert.Equal(t, "/home/someone/.config/regiodb/tables.yaml",
		config.TablesFilePath(home))
	assert.Equal(t, "/home/someone/.cache/regiodb/responses.db",
		config.ResponseCachePath(home))
	assert.Equal(t, "/home/someone/.local/share/regiodb/logs",
		config.LogDir(home))
}
