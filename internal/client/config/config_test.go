package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, "babyguessr.db", c.DatabasePath)
	assert.False(t, c.Ephemeral)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_LayersInOrder(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())

	t.Setenv(EnvServerURL, "http://env:1")
	t.Setenv(EnvLogLevel, "warn")

	path := writeTempJSON(t, "", "", map[string]any{
		"log_level":       "debug",
		"request_timeout": "3s",
	})
	os.Args = []string{"cmd", "-c", path, "-t", "7s"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "http://env:1", cfg.ServerURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "babyguessr.db", cfg.DatabasePath)
}
