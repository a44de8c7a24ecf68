package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRead_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  http:
    port: 8081
db:
  driver: sqlite
  dsn: file:test.db
cors:
  allowOrigins: ["http://localhost:5173"]
`)
	t.Setenv("APP_REDIS_ADDR", "redis:6379")

	c, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, c.App.HTTP.Port)
	assert.Equal(t, 9090, c.App.Admin.Port)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, "auto", c.DB.Migrate)
	assert.Equal(t, 5, c.DB.ConnectRetries)
	assert.Equal(t, []string{"http://localhost:5173"}, c.CORS.AllowOrigins)
	assert.Equal(t, "redis:6379", c.Redis.Addr)
	assert.Equal(t, 5*time.Minute, c.Redis.TTL())
	assert.Equal(t, "logs/app.log", c.Log.Rotate.Filename)
}

func TestRead_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown driver":  "db:\n  driver: oracle\n  dsn: x\n",
		"goose needs pg":  "db:\n  driver: mysql\n  dsn: x\n  migrate: goose\n",
		"unknown migrate": "db:\n  driver: postgres\n  dsn: x\n  migrate: flyway\n",
		"missing dsn":     "db:\n  driver: postgres\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
