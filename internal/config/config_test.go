package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shopping_list", cfg.DBName)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.ServerSelectionTimeout)
	assert.Equal(t, uint64(50), cfg.MaxPoolSize)
	assert.Equal(t, uint64(10), cfg.MinPoolSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_NAME", "groceries")
	t.Setenv("CONNECT_TIMEOUT_MS", "2500")
	t.Setenv("MAX_POOL_SIZE", "20")
	t.Setenv("MIN_POOL_SIZE", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "groceries", cfg.DBName)
	assert.Equal(t, 2500*time.Millisecond, cfg.ConnectTimeout)
	assert.Equal(t, uint64(20), cfg.MaxPoolSize)
	assert.Equal(t, uint64(2), cfg.MinPoolSize)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}

func TestLoadNegativePoolSize(t *testing.T) {
	// A negative value must fail loudly instead of wrapping around to a huge
	// unsigned pool size.
	setRequired(t)
	t.Setenv("MAX_POOL_SIZE", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_POOL_SIZE")

	t.Setenv("MAX_POOL_SIZE", "50")
	t.Setenv("MIN_POOL_SIZE", "-3")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_POOL_SIZE")
}

func TestLoadBadInteger(t *testing.T) {
	setRequired(t)
	t.Setenv("MAX_POOL_SIZE", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_POOL_SIZE")
}

func TestValidate(t *testing.T) {
	t.Run("bad URI scheme", func(t *testing.T) {
		setRequired(t)
		t.Setenv("MONGODB_URI", "postgres://localhost:5432")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mongodb://")
	})

	t.Run("pool ordering", func(t *testing.T) {
		setRequired(t)
		t.Setenv("MAX_POOL_SIZE", "1")
		t.Setenv("MIN_POOL_SIZE", "5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pool size")
	})

	t.Run("reports all problems at once", func(t *testing.T) {
		cfg := &Config{
			MongoURI:               "bogus",
			ConnectTimeout:         0,
			ServerSelectionTimeout: -time.Second,
			MaxPoolSize:            1,
			MinPoolSize:            5,
		}

		err := cfg.Validate()
		require.Error(t, err)
		for _, want := range []string{"MongoDB URI", "connection timeout", "server selection timeout", "pool size"} {
			assert.Contains(t, err.Error(), want)
		}
	})
}
