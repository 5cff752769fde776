// Package config loads runtime configuration for the babyguessr client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables GUESSR_*, seeded from a dotenv file given via
//     -e/-env-file or ./.env when present (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "server_url": "https://guess.example.com",
//	  "database_path": "/home/me/.babyguessr.db",
//	  "request_timeout": "10s",
//	  "log_level": "debug",
//	  "log_format": "zerolog"
//	}
package config
