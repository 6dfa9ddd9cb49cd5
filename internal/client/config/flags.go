package config

import (
	"flag"
	"os"

	"profilehub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the profile service API (default from Config)
//	-k string   path to the token keystore file
//	-p int      directory page size
//	-v          verbose (debug) logging
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-p", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the profile service API")
	fs.StringVar(&cfg.KeystorePath, "k", cfg.KeystorePath, "path to the token keystore file")
	fs.IntVar(&cfg.PerPage, "p", cfg.PerPage, "directory page size")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
