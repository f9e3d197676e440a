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

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: ":9000"
session:
  backend: redis
  ttl: 30m
  secret: from-file
redis:
  addr: "cache:6379"
  db: 2
game:
  seed: 42
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Server.Port)
	assert.Equal(t, "redis", c.Session.Backend)
	assert.Equal(t, 30*time.Minute, c.Session.TTL)
	assert.Equal(t, "from-file", c.Session.Secret)
	assert.Equal(t, "bj_session", c.Session.Cookie)
	assert.Equal(t, "cache:6379", c.Redis.Addr)
	assert.Equal(t, 2, c.Redis.DB)
	assert.Equal(t, int64(42), c.Game.Seed)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BLACKJACK_SESSION_SECRET", "from-env")
	t.Setenv("BLACKJACK_SERVER_PORT", ":7000")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Session.Secret)
	assert.Equal(t, ":7000", c.Server.Port)
	assert.Equal(t, "memory", c.Session.Backend)
	assert.Equal(t, 24*time.Hour, c.Session.TTL)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("BLACKJACK_SESSION_SECRET", "s")
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Server.Port)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, "session:\n  backend: memory\n"))
	assert.ErrorContains(t, err, "session.secret")

	_, err = Load(writeConfig(t, "session:\n  backend: sqlite\n  secret: x\n"))
	assert.ErrorContains(t, err, "unknown session backend")

	_, err = Load(writeConfig(t, "session:\n  backend: postgres\n  secret: x\n"))
	assert.ErrorContains(t, err, "database.dsn")
}
