package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	cfg, err := Parse()
	require.ErrorIs(t, err, ErrUnknownDriver)
	assert.Nil(t, cfg)
}

func TestParseValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("STORE_PATH", "/tmp/zozikafe.db")
	t.Setenv("GATE_TTL", "30m")
	t.Setenv("SEED_ON_EMPTY", "false")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/zozikafe.db", cfg.StorePath)
	assert.Equal(t, 30*time.Minute, cfg.GateTTL)
	assert.False(t, cfg.SeedOnEmpty)
}

func TestPostgresNeedsURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_URL", "")
	_, err := Parse()
	require.ErrorIs(t, err, ErrMissingDBURL)
}

func TestValidateGate(t *testing.T) {
	cfg := &Config{StoreDriver: DriverBadger}
	require.ErrorIs(t, cfg.ValidateGate(), ErrMissingPassword)
	cfg.AdminPassword = "secret"
	require.NoError(t, cfg.ValidateGate())
}
