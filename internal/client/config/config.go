package config

import "time"

// Config holds runtime settings for the profilehub CLI.
//
// Fields:
//   - APIBaseURL: root of the profile service REST API, including the
//     /api prefix.
//   - RequestTimeout: upper bound for a single API round-trip.
//   - KeystorePath: SQLite file holding the persisted session token.
//   - PerPage: directory page size.
//   - Verbose: enable debug-level logging.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	KeystorePath   string
	PerPage        int
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5000/api"
	c.RequestTimeout = 15 * time.Second
	c.KeystorePath = "profilehub.db"
	c.PerPage = 10
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
