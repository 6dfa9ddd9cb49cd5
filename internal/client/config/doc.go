// Package config loads runtime configuration for the profilehub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the profile service API
//	-k string   path to the token keystore file
//	-p int      directory page size
//	-v          verbose (debug) logging
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the request timeout, so values can
// be either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:5000/api",
//	  "request_timeout": "15s",
//	  "keystore_path": "profilehub.db",
//	  "per_page": 10
//	}
//
// Primary API
//
//   - type Config                     — holds the API endpoint, timeout and keystore settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
