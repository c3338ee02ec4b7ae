package iotables_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iofs"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iotables"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/config"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTables places a registry file where the loader expects it for
// the given fake home dir.
func writeTables(t *testing.T, home, content string) {
	t.Helper()
	dir := config.ConfigDir(home)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t,
		os.WriteFile(config.TablesFilePath(home), []byte(content), 0644))
}

func newConfig(home string) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})
	return cfg
}

func TestLoadEmbeddedRegistry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	// the embedded registry shipped with the binary must always load
	home := t.TempDir()
	writeTables(t, home, iofs.TablesYAML)

	registry, err := iotables.New(newConfig(home)).Load()
	require.NoError(t, err)
	require.Len(t, registry.Tables, 8)

	pop, ok := registry.Find("12411-03-03-4")
	require.True(t, ok)
	assert.Equal(t, tables.SourceRegional, pop.Source)
	assert.Equal(t, 1975, pop.FirstYear)
	assert.Len(t, pop.Metrics, 5)

	care, ok := registry.Find("22411-01i")
	require.True(t, ok)
	assert.Equal(t, tables.SourceLandes, care.Source)
	assert.Equal(t, []int{2017, 2019, 2021, 2023}, care.AvailableYears())
	assert.True(t, care.HasCategory())

	// every indicator id unique across the file
	ids := registry.IndicatorIDs()
	seen := make(map[int]struct{})
	for _, id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate indicator id %d", id)
		seen[id] = struct{}{}
	}
}

func TestLoadMinimalRegistry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	writeTables(t, home, `
tables:
  - id: "99999-00-00-0"
    source: regional
    name: Testtabelle
    category: demographics
    update_frequency: annual
    first_year: 2020
    last_year: 2024
    header:
      strategy: date
    columns:
      date: 0
      region_code: 1
      region_name: 2
      category: -1
    region_prefix: "05"
    breakdown_default: total
    metrics:
      - column: 3
        code: test_metric
        indicator_id: 900
        name: Testmetrik
        unit: Anzahl
`)

	registry, err := iotables.New(newConfig(home)).Load()
	require.NoError(t, err)
	require.Len(t, registry.Tables, 1)
	assert.Equal(t, "test_metric", registry.Tables[0].Metrics[0].Code)
}

func TestLoadFileNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	_, err := iotables.New(newConfig(t.TempDir())).Load()
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	writeTables(t, home, "tables: [unclosed")

	_, err := iotables.New(newConfig(home)).Load()
	assert.Error(t, err)
}

func TestLoadRejectsDuplicateIndicatorIDs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	writeTables(t, home, `
tables:
  - id: "11111-00-00-0"
    source: regional
    name: Tabelle A
    category: demographics
    update_frequency: annual
    first_year: 2020
    last_year: 2024
    header: {strategy: date}
    columns: {date: 0, region_code: 1, region_name: 2, category: -1}
    region_prefix: "05"
    breakdown_default: total
    metrics:
      - {column: 3, code: metric_a, indicator_id: 900, name: A, unit: Anzahl}
  - id: "22222-00-00-0"
    source: regional
    name: Tabelle B
    category: demographics
    update_frequency: annual
    first_year: 2020
    last_year: 2024
    header: {strategy: date}
    columns: {date: 0, region_code: 1, region_name: 2, category: -1}
    region_prefix: "05"
    breakdown_default: total
    metrics:
      - {column: 3, code: metric_b, indicator_id: 900, name: B, unit: Anzahl}
`)

	_, err := iotables.New(newConfig(home)).Load()
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.TablesValidationError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "900")
}

func TestTablesFilePathUsed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	home := t.TempDir()
	// file in the wrong place is not found
	require.NoError(t, os.WriteFile(
		filepath.Join(home, "tables.yaml"), []byte(iofs.TablesYAML), 0644))

	_, err := iotables.New(newConfig(home)).Load()
	assert.Error(t, err)
}
