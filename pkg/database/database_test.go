package database_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/sqldb"
	"github.com/SscSPs/bookkeeping_ledger/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSourceName(t *testing.T) {
	dsn, err := database.DataSourceName(sqldb.SQLite, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	assert.Contains(t, dsn, "_foreign_keys=on")
	assert.Contains(t, dsn, "_journal_mode=WAL")

	dsn, err = database.DataSourceName(sqldb.SQLite, "file:already.db?mode=ro")
	require.NoError(t, err)
	assert.Equal(t, "file:already.db?mode=ro", dsn)

	dsn, err = database.DataSourceName(sqldb.Postgres, "postgres://u:p@localhost/ledger")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/ledger", dsn)

	_, err = database.DataSourceName(sqldb.SQLite, "")
	assert.Error(t, err)
}

func TestMigrate_IsRepeatable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "ledger.db")

	require.NoError(t, database.Migrate(sqldb.SQLite, path, logger))
	require.NoError(t, database.Migrate(sqldb.SQLite, path, logger))

	db, err := database.Open(context.Background(), sqldb.SQLite, path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM expense_categories WHERE name IN ('Vendors', 'Salary')").Scan(&n))
	assert.Equal(t, 2, n)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM income_categories WHERE name IN ('Sales', 'Services')").Scan(&n))
	assert.Equal(t, 2, n)
}
