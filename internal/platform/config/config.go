package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/sqldb"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Dialect       sqldb.Dialect
	DatabaseURL   string
	RunMigrations bool

	Port         string
	IsProduction bool
	LogLevel     slog.Level

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// RateLimit uses the limiter format, e.g. "100-M" for 100 per minute.
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "ledger.db")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "bookkeeping-ledger")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	cfg := &Config{}

	dialect, err := sqldb.ParseDialect(v.GetString("DB_DRIVER"))
	if err != nil {
		return nil, err
	}
	cfg.Dialect = dialect

	cfg.DatabaseURL = v.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must not be empty")
	}
	cfg.RunMigrations = v.GetBool("RUN_MIGRATIONS")

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set", slog.String("default", cfg.Port))
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		slog.Warn("Invalid LOG_LEVEL, defaulting to info", slog.String("value", v.GetString("LOG_LEVEL")))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET not set. Using default insecure key.")
	}

	// e.g. "60m", "12h"
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	cfg.JWTExpiryDuration, err = time.ParseDuration(jwtExpiryStr)
	if err != nil || cfg.JWTExpiryDuration <= 0 {
		cfg.JWTExpiryDuration = 12 * time.Hour
		slog.Warn("Invalid value for JWT_EXPIRY_DURATION", slog.String("value", jwtExpiryStr), slog.Duration("default", cfg.JWTExpiryDuration))
	}

	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "bookkeeping-ledger"
	}

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
