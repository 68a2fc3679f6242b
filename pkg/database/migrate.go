package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/sqldb"
	"github.com/SscSPs/bookkeeping_ledger/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies every pending up migration for the dialect. It uses its
// own connection because the migrate drivers close the handle they are given.
func Migrate(dialect sqldb.Dialect, url string, logger *slog.Logger) error {
	dsn, err := DataSourceName(dialect, url)
	if err != nil {
		return err
	}

	migrationDB, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	var (
		driver migratedb.Driver
		dir    string
	)
	switch dialect {
	case sqldb.Postgres:
		driver, err = postgres.WithInstance(migrationDB, &postgres.Config{})
		dir = "postgres"
	default:
		driver, err = sqlite3.WithInstance(migrationDB, &sqlite3.Config{})
		dir = "sqlite"
	}
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not create %s driver instance for migrations: %w", dialect, err)
	}

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(dialect), driver)
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.", slog.String("driver", string(dialect)))
	} else {
		logger.Info("Database migrations applied successfully.", slog.String("driver", string(dialect)))
	}
	return nil
}
