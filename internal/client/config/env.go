package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvServerURL      = "GUESSR_SERVER_URL"
	EnvDatabasePath   = "GUESSR_DB_PATH"
	EnvEphemeral      = "GUESSR_EPHEMERAL"
	EnvRequestTimeout = "GUESSR_REQUEST_TIMEOUT"
	EnvLogLevel       = "GUESSR_LOG_LEVEL"
	EnvLogFormat      = "GUESSR_LOG_FORMAT"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with GUESSR_* environment variables.
//
// A dotenv file is loaded first: the path given via -e/-env-file, or ./.env
// when it exists. godotenv never overrides variables already set in the
// process environment. A missing explicit file or a malformed value panics,
// like the other loaders.
func parseEnv(cfg *Config) {
	loadEnvFile(flagx.EnvFileFlags())

	if v, ok := os.LookupEnv(EnvServerURL); ok {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(EnvEphemeral); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Ephemeral = b
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
}

func loadEnvFile(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}

	if _, err := os.Stat(defaultEnvFile); errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err := godotenv.Load(defaultEnvFile); err != nil {
		panic(err)
	}
}
