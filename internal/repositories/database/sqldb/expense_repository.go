package sqldb

import (
	"context"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

const expenseSelect = `SELECT e.id, e.date, e.amount, e.category_id, COALESCE(c.name, ''), e.description, e.notes,
	e.vendor_transaction_id, e.payroll_transaction_id
	FROM daily_expense e LEFT JOIN expense_categories c ON c.id = e.category_id`

type expenseRepository struct {
	BaseRepository
}

func newExpenseRepository(base BaseRepository) *expenseRepository {
	return &expenseRepository{BaseRepository: base}
}

var _ portsrepo.ExpenseRepository = (*expenseRepository)(nil)

func scanExpense(row rowScanner) (domain.ExpenseEntry, error) {
	var m models.Expense
	err := row.Scan(&m.ID, &m.Date, &m.Amount, &m.CategoryID, &m.CategoryName, &m.Description, &m.Notes,
		&m.VendorTransactionID, &m.PayrollTransactionID)
	if err != nil {
		return domain.ExpenseEntry{}, err
	}
	return mapping.ToDomainExpense(m), nil
}

func (r *expenseRepository) CreateExpense(ctx context.Context, entry domain.ExpenseEntry) (*domain.ExpenseEntry, error) {
	id, err := r.insertID(ctx, "failed to create expense",
		`INSERT INTO daily_expense (date, amount, category_id, description, notes, vendor_transaction_id, payroll_transaction_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		r.dialect.dateArg(entry.Date), entry.Amount, entry.CategoryID, entry.Description, entry.Notes,
		mapping.ToNullInt64(entry.VendorTransactionID), mapping.ToNullInt64(entry.PayrollTransactionID))
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return &entry, nil
}

func (r *expenseRepository) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.ExpenseEntry, error) {
	return r.findOne(ctx, "e.id", expenseID, apperrors.NotFoundf("expense %d", expenseID))
}

func (r *expenseRepository) FindExpenseByVendorTransactionID(ctx context.Context, txnID int64) (*domain.ExpenseEntry, error) {
	return r.findOne(ctx, "e.vendor_transaction_id", txnID, apperrors.NotFoundf("expense mirroring vendor transaction %d", txnID))
}

func (r *expenseRepository) FindExpenseByPayrollTransactionID(ctx context.Context, txnID int64) (*domain.ExpenseEntry, error) {
	return r.findOne(ctx, "e.payroll_transaction_id", txnID, apperrors.NotFoundf("expense mirroring payroll transaction %d", txnID))
}

func (r *expenseRepository) findOne(ctx context.Context, column string, value int64, notFound error) (*domain.ExpenseEntry, error) {
	entry, err := scanExpense(r.queryRow(ctx, expenseSelect+" WHERE "+column+" = ?", value))
	if err != nil {
		return nil, r.rowErr("failed to find expense", err, notFound)
	}
	return &entry, nil
}

func (r *expenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.ExpenseEntry, error) {
	var where []string
	var args []any
	if filter.From != nil {
		where = append(where, "e.date >= ?")
		args = append(args, r.dialect.dateArg(*filter.From))
	}
	if filter.To != nil {
		where = append(where, "e.date <= ?")
		args = append(args, r.dialect.dateArg(*filter.To))
	}
	if filter.After != nil {
		cursorDate := r.dialect.dateArg(filter.After.Date)
		where = append(where, "(e.date > ? OR (e.date = ? AND e.id > ?))")
		args = append(args, cursorDate, cursorDate, filter.After.ID)
	}

	query := expenseSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.date, e.id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, r.storageErr("failed to list expenses", err)
	}
	entries, err := scanAll(rows, scanExpense)
	if err != nil {
		return nil, r.storageErr("failed to scan expenses", err)
	}
	return entries, nil
}

func (r *expenseRepository) UpdateExpense(ctx context.Context, entry domain.ExpenseEntry) error {
	return r.execOne(ctx, "failed to update expense", apperrors.NotFoundf("expense %d", entry.ID),
		`UPDATE daily_expense
		 SET date = ?, amount = ?, category_id = ?, description = ?, notes = ?, vendor_transaction_id = ?, payroll_transaction_id = ?
		 WHERE id = ?`,
		r.dialect.dateArg(entry.Date), entry.Amount, entry.CategoryID, entry.Description, entry.Notes,
		mapping.ToNullInt64(entry.VendorTransactionID), mapping.ToNullInt64(entry.PayrollTransactionID), entry.ID)
}

func (r *expenseRepository) DeleteExpense(ctx context.Context, expenseID int64) error {
	return r.execOne(ctx, "failed to delete expense", apperrors.NotFoundf("expense %d", expenseID),
		"DELETE FROM daily_expense WHERE id = ?", expenseID)
}
