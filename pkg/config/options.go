package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of fact rows per load batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptAPIRegionalURL sets the Regionaldatenbank base URL.
func OptAPIRegionalURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Regional API URL", s) {
			c.API.RegionalURL = strings.TrimSuffix(s, "/")
		}
	}
}

// OptAPIRegionalUser sets the Regionaldatenbank account name.
func OptAPIRegionalUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.API.RegionalUser = s
	}
}

// OptAPIRegionalPassword sets the Regionaldatenbank account password.
func OptAPIRegionalPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.API.RegionalPassword = s
	}
}

// OptAPILandesURL sets the Landesdatenbank NRW base URL.
func OptAPILandesURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Landesdatenbank API URL", s) {
			c.API.LandesURL = strings.TrimSuffix(s, "/")
		}
	}
}

// OptAPILandesUser sets the Landesdatenbank NRW account name.
func OptAPILandesUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.API.LandesUser = s
	}
}

// OptAPILandesPassword sets the Landesdatenbank NRW account password.
func OptAPILandesPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.API.LandesPassword = s
	}
}

// OptAPITimeoutSec sets the per-call HTTP timeout in seconds.
func OptAPITimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("API Timeout", i) {
			c.API.TimeoutSec = i
		}
	}
}

// OptPipelineTableID sets the source table for a pipeline run.
// Runtime-only field - not in ToOptions().
func OptPipelineTableID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Table ID", s) {
			c.Pipeline.TableID = s
		}
	}
}

// OptPipelineYears sets an explicit list of years to extract.
// Runtime-only field - not in ToOptions().
func OptPipelineYears(ii []int) Option {
	return func(c *Config) {
		if len(ii) > 0 {
			c.Pipeline.Years = ii
		}
	}
}

// OptPipelineYearRange sets an inclusive year range.
// Runtime-only field - not in ToOptions().
func OptPipelineYearRange(from, to int) Option {
	return func(c *Config) {
		c.Pipeline.FromYear = from
		c.Pipeline.ToYear = to
	}
}

// OptPipelineRefreshCache bypasses the local response cache.
// Runtime-only field - not in ToOptions().
func OptPipelineRefreshCache(b bool) Option {
	return func(c *Config) {
		c.Pipeline.RefreshCache = b
	}
}

// OptPipelineSkipTotals excludes aggregate breakdown rows.
// Runtime-only field - not in ToOptions().
func OptPipelineSkipTotals(b bool) Option {
	return func(c *Config) {
		c.Pipeline.SkipTotals = b
	}
}

// OptLogFormat sets the log output format.
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the log level.
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets the log destination.
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory used for config, cache and logs.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
