package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FRUITSCM_APP_NAME":                os.Getenv("FRUITSCM_APP_NAME"),
		"FRUITSCM_APP_ENV":                 os.Getenv("FRUITSCM_APP_ENV"),
		"FRUITSCM_APP_PORT":                os.Getenv("FRUITSCM_APP_PORT"),
		"FRUITSCM_DATABASE_HOST":           os.Getenv("FRUITSCM_DATABASE_HOST"),
		"FRUITSCM_DATABASE_PORT":           os.Getenv("FRUITSCM_DATABASE_PORT"),
		"FRUITSCM_DATABASE_USER":           os.Getenv("FRUITSCM_DATABASE_USER"),
		"FRUITSCM_DATABASE_PASSWORD":       os.Getenv("FRUITSCM_DATABASE_PASSWORD"),
		"FRUITSCM_DATABASE_DBNAME":         os.Getenv("FRUITSCM_DATABASE_DBNAME"),
		"FRUITSCM_DATABASE_SSLMODE":        os.Getenv("FRUITSCM_DATABASE_SSLMODE"),
		"FRUITSCM_DATABASE_MAX_OPEN_CONNS": os.Getenv("FRUITSCM_DATABASE_MAX_OPEN_CONNS"),
		"FRUITSCM_DATABASE_MAX_IDLE_CONNS": os.Getenv("FRUITSCM_DATABASE_MAX_IDLE_CONNS"),
		"FRUITSCM_JWT_SECRET":              os.Getenv("FRUITSCM_JWT_SECRET"),
		"FRUITSCM_ALERT_SCAN_ENABLED":      os.Getenv("FRUITSCM_ALERT_SCAN_ENABLED"),
		"FRUITSCM_ALERT_SCAN_INTERVAL":     os.Getenv("FRUITSCM_ALERT_SCAN_INTERVAL"),
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

		assert.Equal(t, "fruitscm-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "fruitscm", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, time.Hour, cfg.Alert.ScanInterval)
		assert.False(t, cfg.Alert.ScanEnabled)
	})

	t.Run("loads values from environment variables with FRUITSCM prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_APP_NAME", "test-app")
		os.Setenv("FRUITSCM_APP_ENV", "testing")
		os.Setenv("FRUITSCM_APP_PORT", "9000")
		os.Setenv("FRUITSCM_DATABASE_HOST", "testdb.local")
		os.Setenv("FRUITSCM_DATABASE_PORT", "5433")
		os.Setenv("FRUITSCM_DATABASE_USER", "testuser")
		os.Setenv("FRUITSCM_DATABASE_PASSWORD", "testpass")
		os.Setenv("FRUITSCM_DATABASE_DBNAME", "testdb")
		os.Setenv("FRUITSCM_DATABASE_SSLMODE", "require")
		os.Setenv("FRUITSCM_ALERT_SCAN_ENABLED", "true")
		os.Setenv("FRUITSCM_ALERT_SCAN_INTERVAL", "30m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.True(t, cfg.Alert.ScanEnabled)
		assert.Equal(t, 30*time.Minute, cfg.Alert.ScanInterval)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("FRUITSCM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"FRUITSCM_APP_ENV":                 os.Getenv("FRUITSCM_APP_ENV"),
		"FRUITSCM_JWT_SECRET":              os.Getenv("FRUITSCM_JWT_SECRET"),
		"FRUITSCM_DATABASE_PASSWORD":       os.Getenv("FRUITSCM_DATABASE_PASSWORD"),
		"FRUITSCM_DATABASE_SSLMODE":        os.Getenv("FRUITSCM_DATABASE_SSLMODE"),
		"FRUITSCM_HTTP_CORS_ALLOW_ORIGINS": os.Getenv("FRUITSCM_HTTP_CORS_ALLOW_ORIGINS"),
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

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_APP_ENV", "production")
		os.Setenv("FRUITSCM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("FRUITSCM_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_APP_ENV", "production")
		os.Setenv("FRUITSCM_JWT_SECRET", "short-secret")
		os.Setenv("FRUITSCM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("FRUITSCM_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_APP_ENV", "production")
		os.Setenv("FRUITSCM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("FRUITSCM_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_APP_ENV", "production")
		os.Setenv("FRUITSCM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("FRUITSCM_DATABASE_PASSWORD", "secure-password")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("FRUITSCM_APP_ENV", "production")
		os.Setenv("FRUITSCM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("FRUITSCM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("FRUITSCM_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "fruit",
		Password: "p@ss/word",
		DBName:   "fruitscm",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
