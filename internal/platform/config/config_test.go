package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/sqldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_DRIVER", "DATABASE_URL", "PORT", "JWT_SECRET", "JWT_EXPIRY_DURATION", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "IS_PRODUCTION", "RUN_MIGRATIONS", "RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, sqldb.SQLite, cfg.Dialect)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.False(t, cfg.IsProduction)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://ledger@localhost/ledger")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("RATE_LIMIT", "5-S")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, sqldb.Postgres, cfg.Dialect)
	assert.Equal(t, "postgres://ledger@localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "5-S", cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RunMigrations)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("DB_DRIVER", "oracle")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("production without secret", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("IS_PRODUCTION", "true")
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
