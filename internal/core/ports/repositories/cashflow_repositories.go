package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// ExpenseFilter narrows ListExpenses. After is an exclusive keyset cursor on (date, id).
type ExpenseFilter struct {
	From  *time.Time
	To    *time.Time
	After *PageCursor
	Limit int
}

// PageCursor is the (date, id) position of the last row of a page.
type PageCursor struct {
	Date time.Time
	ID   int64
}

// ExpenseRepository persists cashflow expense rows, including mirror rows.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, entry domain.ExpenseEntry) (*domain.ExpenseEntry, error)
	FindExpenseByID(ctx context.Context, expenseID int64) (*domain.ExpenseEntry, error)
	FindExpenseByVendorTransactionID(ctx context.Context, txnID int64) (*domain.ExpenseEntry, error)
	FindExpenseByPayrollTransactionID(ctx context.Context, txnID int64) (*domain.ExpenseEntry, error)

	// ListExpenses returns rows ordered by (date, id).
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]domain.ExpenseEntry, error)

	UpdateExpense(ctx context.Context, entry domain.ExpenseEntry) error
	DeleteExpense(ctx context.Context, expenseID int64) error
}

// IncomeRepository persists cashflow income rows.
type IncomeRepository interface {
	CreateIncome(ctx context.Context, entry domain.IncomeEntry) (*domain.IncomeEntry, error)
	FindIncomeByID(ctx context.Context, incomeID int64) (*domain.IncomeEntry, error)
	ListIncome(ctx context.Context, from, to *time.Time) ([]domain.IncomeEntry, error)

	// IncomeExists reports whether a row exists for (date, categoryID),
	// ignoring excludeID when it is non-zero.
	IncomeExists(ctx context.Context, date time.Time, categoryID int64, excludeID int64) (bool, error)

	UpdateIncome(ctx context.Context, entry domain.IncomeEntry) error
	DeleteIncome(ctx context.Context, incomeID int64) error
}

// CapitalRepository persists capital injections.
type CapitalRepository interface {
	CreateCapital(ctx context.Context, entry domain.CapitalEntry) (*domain.CapitalEntry, error)
	ListCapital(ctx context.Context, from, to *time.Time) ([]domain.CapitalEntry, error)
}

// CategoryRepository persists expense and income categories.
type CategoryRepository interface {
	FindCategoryByID(ctx context.Context, kind domain.CategoryKind, categoryID int64) (*domain.Category, error)

	// FindCategoryByName matches case-insensitively.
	FindCategoryByName(ctx context.Context, kind domain.CategoryKind, name string) (*domain.Category, error)

	// EnsureCategory finds the named category or creates it. Concurrent
	// callers converge on a single row.
	EnsureCategory(ctx context.Context, kind domain.CategoryKind, name string) (*domain.Category, error)

	ListCategories(ctx context.Context, kind domain.CategoryKind) ([]domain.Category, error)

	// CategoryUsage counts the entry rows filed under the category.
	CategoryUsage(ctx context.Context, kind domain.CategoryKind, categoryID int64) (domain.CategoryUsage, error)

	RenameCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64, name string) error

	// DeleteCategory removes the category together with every entry row
	// filed under it and returns how many entry rows went with it.
	DeleteCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64) (int64, error)
}
