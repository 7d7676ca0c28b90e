package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"AGUULGA_APP_NAME":                "",
		"AGUULGA_APP_ENV":                 "",
		"AGUULGA_APP_PORT":                "",
		"AGUULGA_DATABASE_HOST":           "",
		"AGUULGA_DATABASE_PORT":           "",
		"AGUULGA_DATABASE_USER":           "",
		"AGUULGA_DATABASE_PASSWORD":       "",
		"AGUULGA_DATABASE_DBNAME":         "",
		"AGUULGA_DATABASE_SSLMODE":        "",
		"AGUULGA_DATABASE_MAX_OPEN_CONNS": "",
		"AGUULGA_DATABASE_MAX_IDLE_CONNS": "",
		"AGUULGA_WEVE_API_BASE_URL":       "",
		"AGUULGA_WEVE_API_KEY":            "",
		"AGUULGA_WEVE_TIMEOUT_MILLIS":     "",
		"AGUULGA_WEVE_SIMULATION":         "",
	}
	for k := range originalEnv {
		originalEnv[k] = os.Getenv(k)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "aguulga-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "aguulga", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 30000, cfg.Weve.TimeoutMillis)
		assert.Equal(t, int64(3600), cfg.Weve.SimulatedSessionTTLSeconds)
	})

	t.Run("simulation mode defaults to on", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Weve.Simulation)
	})

	t.Run("loads values from environment variables with AGUULGA prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("AGUULGA_APP_NAME", "test-app")
		os.Setenv("AGUULGA_APP_PORT", "9000")
		os.Setenv("AGUULGA_DATABASE_HOST", "testdb.local")
		os.Setenv("AGUULGA_DATABASE_PORT", "5433")
		os.Setenv("AGUULGA_WEVE_API_BASE_URL", "https://staging.weve.mn/api")
		os.Setenv("AGUULGA_WEVE_API_KEY", "key-123")
		os.Setenv("AGUULGA_WEVE_TIMEOUT_MILLIS", "5000")
		os.Setenv("AGUULGA_WEVE_SIMULATION", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "https://staging.weve.mn/api", cfg.Weve.APIBaseURL)
		assert.Equal(t, "key-123", cfg.Weve.APIKey)
		assert.Equal(t, 5000, cfg.Weve.TimeoutMillis)
		assert.False(t, cfg.Weve.Simulation)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("AGUULGA_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("AGUULGA_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("production requires an API URL when simulation is off", func(t *testing.T) {
		clearEnv()
		os.Setenv("AGUULGA_APP_ENV", "production")
		os.Setenv("AGUULGA_DATABASE_PASSWORD", "secret")
		os.Setenv("AGUULGA_DATABASE_SSLMODE", "require")
		os.Setenv("AGUULGA_WEVE_SIMULATION", "false")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "weve.api_base_url")
	})

	t.Run("production rejects a missing database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("AGUULGA_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "aguulga",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
