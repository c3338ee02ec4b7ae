// Package config provides configuration management for regiodb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - API: regional/landesdatenbank base URLs and credentials, timeout
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Pipeline.TableID, Years, RefreshCache, SkipTotals (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use REGIODB_ prefix with underscores for nesting:
//
//	REGIODB_DATABASE_HOST=localhost
//	REGIODB_DATABASE_PORT=5432
//	REGIODB_API_REGIONAL_USER=...
//	REGIODB_LOG_LEVEL=info
package config

// Config represents the complete regiodb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings for the warehouse.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// API contains settings for the two upstream statistics services.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Pipeline contains settings specific to the pipeline command.
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of fact rows sent to the warehouse
	// per batch during load. Each row is still an independent upsert;
	// batching only cuts down network round trips.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// APIConfig contains settings for the upstream GENESIS statistics services.
type APIConfig struct {
	// RegionalURL is the base URL of the national Regionaldatenbank
	// REST service.
	RegionalURL string `mapstructure:"regional_url" yaml:"regional_url"`

	// RegionalUser is the Regionaldatenbank account name.
	RegionalUser string `mapstructure:"regional_user" yaml:"regional_user"`

	// RegionalPassword is the Regionaldatenbank account password.
	RegionalPassword string `mapstructure:"regional_password" yaml:"regional_password"`

	// LandesURL is the base URL of the Landesdatenbank NRW REST service.
	LandesURL string `mapstructure:"landes_url" yaml:"landes_url"`

	// LandesUser is the Landesdatenbank NRW account name.
	LandesUser string `mapstructure:"landes_user" yaml:"landes_user"`

	// LandesPassword is the Landesdatenbank NRW account password.
	LandesPassword string `mapstructure:"landes_password" yaml:"landes_password"`

	// TimeoutSec is the per-call HTTP timeout in seconds. Table exports
	// are generated server-side and routinely take minutes.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// PipelineConfig contains settings specific to the pipeline command.
type PipelineConfig struct {
	// TableID is the source table to run, e.g. "12411-03-03-4".
	// Runtime-only, set by the --table flag.
	TableID string `mapstructure:"table_id" yaml:"table_id"`

	// Years is an explicit list of years to extract. Empty means the
	// table's full availability window.
	// Runtime-only, set by the --years flag.
	Years []int `mapstructure:"years" yaml:"years"`

	// FromYear and ToYear give an inclusive year range as an alternative
	// to an explicit Years list. Runtime-only.
	FromYear int `mapstructure:"from_year" yaml:"from_year"`
	ToYear   int `mapstructure:"to_year" yaml:"to_year"`

	// RefreshCache bypasses the local response cache and re-fetches
	// every year from the upstream API. Runtime-only.
	RefreshCache bool `mapstructure:"refresh_cache" yaml:"refresh_cache"`

	// SkipTotals excludes aggregate ("Insgesamt") breakdown rows so that
	// disaggregated detail is not double-counted against a separately
	// loaded total indicator. Runtime-only.
	SkipTotals bool `mapstructure:"skip_totals" yaml:"skip_totals"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "regional_economics",
			SSLMode:   "disable",
			BatchSize: 500,
		},
		API: APIConfig{
			RegionalURL: "https://www.regionalstatistik.de/genesisws/rest/2020",
			LandesURL:   "https://www.landesdatenbank.nrw.de/ldbnrwws/rest/2020",
			TimeoutSec:  300,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}
	return res
}
