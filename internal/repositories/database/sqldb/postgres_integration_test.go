//go:build integration

package sqldb_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/sqldb"
	"github.com/SscSPs/bookkeeping_ledger/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// openPostgresStore starts a disposable PostgreSQL container, migrates it
// and returns a unit of work over it.
func openPostgresStore(t *testing.T) *sqldb.UnitOfWork {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger"),
		tcpostgres.WithUsername("ledger"),
		tcpostgres.WithPassword("ledger"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, database.Migrate(sqldb.Postgres, dsn, logger))

	db, err := database.Open(ctx, sqldb.Postgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqldb.NewUnitOfWork(db, sqldb.Postgres)
}

func TestIntegration_Postgres_VendorRepository(t *testing.T) {
	ctx := context.Background()
	repos := openPostgresStore(t).Reader()

	v, err := repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Acme", OpeningBalance: decimal.RequireFromString("1000.50")})
	require.NoError(t, err)

	_, err = repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Acme"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = repos.Vendors.BumpVendorVersion(ctx, v.ID, 7)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	found, err := repos.Vendors.FindVendorByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(found.OpeningBalance))
}

func TestIntegration_Postgres_ChequeSettlement(t *testing.T) {
	ctx := context.Background()
	uow := openPostgresStore(t)
	engine := services.NewReconciliationEngine(uow, services.WithClock(func() time.Time {
		return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, engine.EnsureReservedCategories(ctx))

	vendor, err := engine.CreateVendor(ctx, dto.CreateVendorRequest{Name: "Acme", OpeningBalance: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	purchase, err := engine.RecordVendorTransaction(ctx, dto.RecordVendorTransactionRequest{
		VendorID: vendor.Vendor.ID,
		VendorTransactionFields: dto.VendorTransactionFields{
			Type:     "purchase",
			Amount:   decimal.NewFromInt(500),
			Date:     "2024-06-01",
			NetTerms: "NET 30",
			Cheque:   &dto.ChequeDetails{BankName: "First Bank"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, purchase.Cheque)

	paid, err := engine.MarkChequePaid(ctx, purchase.Cheque.ID)
	require.NoError(t, err)
	assert.False(t, paid.AlreadyPaid)
	require.NotNil(t, paid.VendorBalance)
	assert.True(t, decimal.NewFromInt(1000).Equal(*paid.VendorBalance))

	again, err := engine.MarkChequePaid(ctx, purchase.Cheque.ID)
	require.NoError(t, err)
	assert.True(t, again.AlreadyPaid)

	balance, err := engine.GetVendorBalance(ctx, vendor.Vendor.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(balance))
}
