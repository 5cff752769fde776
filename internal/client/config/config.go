package config

import "time"

// Config holds runtime settings for the guessing client.
//
// Fields:
//   - ServerURL: base URL of the event service (REST and live channel).
//   - DatabasePath: sqlite file holding admin secrets and guess tokens.
//   - Ephemeral: keep identities in memory only; DatabasePath is ignored.
//   - RequestTimeout: per-request timeout for REST calls.
//   - LogLevel, LogFormat: passed to logging.New.
type Config struct {
	ServerURL      string
	DatabasePath   string
	Ephemeral      bool
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabasePath = "babyguessr.db"
	c.Ephemeral = false
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (optionally seeded from a .env file), JSON and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
