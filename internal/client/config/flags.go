package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/babyguessr/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-m", "-t", "-l", "-f"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     base URL of the event service
//	-d string     path of the local identity database
//	-m            keep identities in memory only
//	-t duration   per-request timeout (e.g. 5s)
//	-l string     log level: debug, info, warn, error
//	-f string     log format: text, json, zerolog
//
// os.Args is filtered with flagx.FilterArgs so -c/-e and unknown arguments
// do not trip the parser. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the event service")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local identity database")
	fs.BoolVar(&cfg.Ephemeral, "m", cfg.Ephemeral, "keep identities in memory only")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
