package config

import (
	"encoding/json"
	"os"

	"profilehub/internal/flagx"
	"profilehub/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	KeystorePath   string         `json:"keystore_path"`
	PerPage        int            `json:"per_page"`
	Verbose        bool           `json:"verbose"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When neither flag is present, nothing is loaded. Only
// fields actually present in the file override the current values. Panics
// on read or unmarshal errors; intended usage is defaults -> parseJson ->
// parseFlags, where later stages override earlier ones.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.KeystorePath != "" {
		cfg.KeystorePath = jc.KeystorePath
	}
	if jc.PerPage != 0 {
		cfg.PerPage = jc.PerPage
	}
	if jc.Verbose {
		cfg.Verbose = true
	}
}
