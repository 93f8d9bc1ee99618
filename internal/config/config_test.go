package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "sqlite"
path = "test.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, psqlbuilder.SQLite, cfg.Dialect())
	assert.Equal(t, "test.db", cfg.Database.DSN())
	assert.True(t, cfg.Booking.AllowSnapshotFallback)
	assert.Equal(t, 5*time.Second, cfg.Booking.LockTimeout())
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("LOG_LEVEL", "debug")

	path := writeConfig(t, `
[database]
driver = "postgres"
host = "db"
port = 5433
user = "barber"
dbname = "barber"

[redis]
enabled = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "host=db port=5433 user=barber password=secret dbname=barber sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown driver", content: "[database]\ndriver = \"mysql\"\n"},
		{name: "negative horizon", content: "[booking]\nadvance_booking_days = -1\n"},
		{name: "horizon above a year", content: "[booking]\nadvance_booking_days = 400\n"},
		{name: "zero lock timeout", content: "[booking]\nlock_timeout_ms = 0\n"},
		{name: "bad port", content: "[server]\nhttp_port = 70000\n"},
		{name: "broken toml", content: "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
