package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/sqldb"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DataSourceName turns the configured DATABASE_URL into a driver DSN. For
// sqlite a bare file path is accepted and foreign keys plus WAL are enabled.
func DataSourceName(dialect sqldb.Dialect, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("database URL cannot be empty")
	}
	if dialect != sqldb.SQLite || strings.HasPrefix(url, "file:") {
		return url, nil
	}
	if dir := filepath.Dir(url); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", url), nil
}

// Open opens the ledger database and checks connectivity.
func Open(ctx context.Context, dialect sqldb.Dialect, url string) (*sql.DB, error) {
	dsn, err := DataSourceName(dialect, url)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == sqldb.SQLite {
		// sqlite allows a single writer; one connection keeps every
		// unit of work serialised instead of failing with SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Close closes the database handle, logging any failure.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("Error closing database", slog.String("error", err.Error()))
		return
	}
	logger.Info("Database connection closed.")
}
