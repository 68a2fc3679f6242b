package sqldb_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/sqldb"
	"github.com/SscSPs/bookkeeping_ledger/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *sqldb.UnitOfWork {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, database.Migrate(sqldb.SQLite, path, logger))

	db, err := database.Open(context.Background(), sqldb.SQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqldb.NewUnitOfWork(db, sqldb.SQLite)
}

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestVendorRepository_UniqueNameAndVersion(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()

	v, err := repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Acme", OpeningBalance: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Version)

	_, err = repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Acme"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	version, err := repos.Vendors.BumpVendorVersion(ctx, v.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	_, err = repos.Vendors.BumpVendorVersion(ctx, v.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = repos.Vendors.BumpVendorVersion(ctx, 999, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	found, err := repos.Vendors.FindVendorByName(ctx, "Acme")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(found.OpeningBalance))
}

func TestVendorTransactionRepository_KeepsFullPrecision(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()
	want := decimal.RequireFromString("1234567890123456.78")

	v, err := repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Acme", OpeningBalance: want})
	require.NoError(t, err)
	_, err = repos.VendorTransactions.CreateVendorTransaction(ctx, domain.VendorTransaction{
		VendorID: v.ID, Date: day("2024-01-01"), Type: domain.VendorPurchase, Amount: want,
	})
	require.NoError(t, err)

	found, err := repos.Vendors.FindVendorByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, want.String(), found.OpeningBalance.String())

	txns, err := repos.VendorTransactions.ListVendorTransactions(ctx, v.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, want.String(), txns[0].Amount.String())
}

func TestVendorTransactionRepository_OrderAndRange(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()
	v, err := repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Acme"})
	require.NoError(t, err)

	for _, d := range []string{"2024-01-03", "2024-01-01", "2024-01-03", "2024-01-02"} {
		_, err := repos.VendorTransactions.CreateVendorTransaction(ctx, domain.VendorTransaction{
			VendorID: v.ID, Date: day(d), Type: domain.VendorPurchase, Amount: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}

	all, err := repos.VendorTransactions.ListVendorTransactions(ctx, v.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2024-01-01", domain.FormatDate(all[0].Date))
	assert.Equal(t, "2024-01-02", domain.FormatDate(all[1].Date))
	assert.Less(t, all[2].ID, all[3].ID)

	from, to := day("2024-01-02"), day("2024-01-02")
	ranged, err := repos.VendorTransactions.ListVendorTransactions(ctx, v.ID, &from, &to)
	require.NoError(t, err)
	assert.Len(t, ranged, 1)
}

func TestChequeRepository_MarkPaidOnce(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()

	c, err := repos.Cheques.CreateCheque(ctx, domain.Cheque{
		IssueDate: day("2024-03-01"), PayeeName: "Acme", BankName: "City Bank",
		Amount: decimal.NewFromInt(250), Status: domain.ChequeIssued,
	})
	require.NoError(t, err)

	changed, err := repos.Cheques.MarkChequePaid(ctx, c.ID, day("2024-03-05"))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repos.Cheques.MarkChequePaid(ctx, c.ID, day("2024-03-06"))
	require.NoError(t, err)
	assert.False(t, changed)

	stored, err := repos.Cheques.FindChequeByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid())
	require.NotNil(t, stored.PaidDate)
	assert.Equal(t, "2024-03-05", domain.FormatDate(*stored.PaidDate))

	_, err = repos.Cheques.MarkChequePaid(ctx, 404, day("2024-03-06"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	paid := domain.ChequePaid
	listed, err := repos.Cheques.ListCheques(ctx, portsrepo.ChequeFilter{Status: &paid})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestExpenseRepository_OneMirrorPerSource(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()

	v, err := repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Acme"})
	require.NoError(t, err)
	txn, err := repos.VendorTransactions.CreateVendorTransaction(ctx, domain.VendorTransaction{
		VendorID: v.ID, Date: day("2024-01-02"), Type: domain.VendorPayment, Amount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	cat, err := repos.Categories.EnsureCategory(ctx, domain.ExpenseCategory, domain.CategoryVendors)
	require.NoError(t, err)

	mirror := domain.ExpenseEntry{
		Date: txn.Date, Amount: txn.Amount, CategoryID: cat.ID, Description: v.Name,
		Notes: domain.PaymentNotes("Cash"), VendorTransactionID: &txn.ID,
	}
	_, err = repos.Expenses.CreateExpense(ctx, mirror)
	require.NoError(t, err)
	_, err = repos.Expenses.CreateExpense(ctx, mirror)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	found, err := repos.Expenses.FindExpenseByVendorTransactionID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryVendors, found.CategoryName)
	assert.True(t, found.IsMirror())
}

func TestExpenseRepository_KeysetPagination(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()
	cat, err := repos.Categories.EnsureCategory(ctx, domain.ExpenseCategory, "Rent")
	require.NoError(t, err)

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-02", "2024-01-03", "2024-01-04"} {
		_, err := repos.Expenses.CreateExpense(ctx, domain.ExpenseEntry{Date: day(d), Amount: decimal.NewFromInt(5), CategoryID: cat.ID})
		require.NoError(t, err)
	}

	first, err := repos.Expenses.ListExpenses(ctx, portsrepo.ExpenseFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)

	last := first[len(first)-1]
	second, err := repos.Expenses.ListExpenses(ctx, portsrepo.ExpenseFilter{
		Limit: 2, After: &portsrepo.PageCursor{Date: last.Date, ID: last.ID},
	})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "2024-01-02", domain.FormatDate(second[0].Date))
	assert.Greater(t, second[0].ID, last.ID)
	assert.Equal(t, "2024-01-03", domain.FormatDate(second[1].Date))
}

func TestCategoryRepository_EnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()

	first, err := repos.Categories.EnsureCategory(ctx, domain.ExpenseCategory, domain.CategorySalary)
	require.NoError(t, err)
	again, err := repos.Categories.EnsureCategory(ctx, domain.ExpenseCategory, "salary")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	sales, err := repos.Categories.FindCategoryByName(ctx, domain.IncomeCategory, "SALES")
	require.NoError(t, err)
	assert.Equal(t, domain.CategorySales, sales.Name)

	_, err = repos.Categories.ListCategories(ctx, domain.CategoryKind("asset"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCategoryRepository_RenameAndDelete(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()

	rent, err := repos.Categories.EnsureCategory(ctx, domain.ExpenseCategory, "Rent")
	require.NoError(t, err)
	require.NoError(t, repos.Categories.RenameCategory(ctx, domain.ExpenseCategory, rent.ID, "Shop Rent"))
	err = repos.Categories.RenameCategory(ctx, domain.ExpenseCategory, rent.ID, domain.CategorySalary)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = repos.Expenses.CreateExpense(ctx, domain.ExpenseEntry{
		Date: day("2024-02-01"), Amount: decimal.NewFromInt(90), CategoryID: rent.ID,
	})
	require.NoError(t, err)
	usage, err := repos.Categories.CategoryUsage(ctx, domain.ExpenseCategory, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryUsage{Entries: 1}, usage)

	removed, err := repos.Categories.DeleteCategory(ctx, domain.ExpenseCategory, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	_, err = repos.Categories.FindCategoryByName(ctx, domain.ExpenseCategory, "Shop Rent")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repos.Categories.DeleteCategory(ctx, domain.IncomeCategory, 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	uow := openStore(t)
	boom := errors.New("boom")

	err := uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = uow.Reader().Vendors.FindVendorByName(ctx, "Ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		_, err := repos.Vendors.CreateVendor(ctx, domain.Vendor{Name: "Kept"})
		return err
	})
	require.NoError(t, err)
	_, err = uow.Reader().Vendors.FindVendorByName(ctx, "Kept")
	assert.NoError(t, err)
}

func TestIncomeRepository_ExistsExcludesSelf(t *testing.T) {
	ctx := context.Background()
	repos := openStore(t).Reader()
	sales, err := repos.Categories.FindCategoryByName(ctx, domain.IncomeCategory, domain.CategorySales)
	require.NoError(t, err)

	entry, err := repos.Income.CreateIncome(ctx, domain.IncomeEntry{Date: day("2024-05-01"), Amount: decimal.NewFromInt(100), CategoryID: sales.ID})
	require.NoError(t, err)

	exists, err := repos.Income.IncomeExists(ctx, day("2024-05-01"), sales.ID, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Income.IncomeExists(ctx, day("2024-05-01"), sales.ID, entry.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
