package sqldb

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

const incomeSelect = `SELECT i.id, i.date, i.amount, i.category_id, COALESCE(c.name, ''), i.description, i.notes
	FROM daily_income i LEFT JOIN income_categories c ON c.id = i.category_id`

type incomeRepository struct {
	BaseRepository
}

func newIncomeRepository(base BaseRepository) *incomeRepository {
	return &incomeRepository{BaseRepository: base}
}

var _ portsrepo.IncomeRepository = (*incomeRepository)(nil)

func scanIncome(row rowScanner) (domain.IncomeEntry, error) {
	var m models.Income
	if err := row.Scan(&m.ID, &m.Date, &m.Amount, &m.CategoryID, &m.CategoryName, &m.Description, &m.Notes); err != nil {
		return domain.IncomeEntry{}, err
	}
	return mapping.ToDomainIncome(m), nil
}

func (r *incomeRepository) CreateIncome(ctx context.Context, entry domain.IncomeEntry) (*domain.IncomeEntry, error) {
	id, err := r.insertID(ctx, "failed to create income",
		"INSERT INTO daily_income (date, amount, category_id, description, notes) VALUES (?, ?, ?, ?, ?) RETURNING id",
		r.dialect.dateArg(entry.Date), entry.Amount, entry.CategoryID, entry.Description, entry.Notes)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return &entry, nil
}

func (r *incomeRepository) FindIncomeByID(ctx context.Context, incomeID int64) (*domain.IncomeEntry, error) {
	entry, err := scanIncome(r.queryRow(ctx, incomeSelect+" WHERE i.id = ?", incomeID))
	if err != nil {
		return nil, r.rowErr("failed to find income", err, apperrors.NotFoundf("income %d", incomeID))
	}
	return &entry, nil
}

func (r *incomeRepository) ListIncome(ctx context.Context, from, to *time.Time) ([]domain.IncomeEntry, error) {
	query, args := appendDateRange(r.dialect, incomeSelect+" WHERE 1 = 1", "i.date", from, to)
	rows, err := r.query(ctx, query+" ORDER BY i.date, i.id", args...)
	if err != nil {
		return nil, r.storageErr("failed to list income", err)
	}
	entries, err := scanAll(rows, scanIncome)
	if err != nil {
		return nil, r.storageErr("failed to scan income", err)
	}
	return entries, nil
}

func (r *incomeRepository) IncomeExists(ctx context.Context, date time.Time, categoryID int64, excludeID int64) (bool, error) {
	var exists bool
	err := r.queryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM daily_income WHERE date = ? AND category_id = ? AND id <> ?)",
		r.dialect.dateArg(date), categoryID, excludeID).Scan(&exists)
	if err != nil {
		return false, r.storageErr("failed to check income duplicate", err)
	}
	return exists, nil
}

func (r *incomeRepository) UpdateIncome(ctx context.Context, entry domain.IncomeEntry) error {
	return r.execOne(ctx, "failed to update income", apperrors.NotFoundf("income %d", entry.ID),
		"UPDATE daily_income SET date = ?, amount = ?, category_id = ?, description = ?, notes = ? WHERE id = ?",
		r.dialect.dateArg(entry.Date), entry.Amount, entry.CategoryID, entry.Description, entry.Notes, entry.ID)
}

func (r *incomeRepository) DeleteIncome(ctx context.Context, incomeID int64) error {
	return r.execOne(ctx, "failed to delete income", apperrors.NotFoundf("income %d", incomeID),
		"DELETE FROM daily_income WHERE id = ?", incomeID)
}

type capitalRepository struct {
	BaseRepository
}

func newCapitalRepository(base BaseRepository) *capitalRepository {
	return &capitalRepository{BaseRepository: base}
}

var _ portsrepo.CapitalRepository = (*capitalRepository)(nil)

func (r *capitalRepository) CreateCapital(ctx context.Context, entry domain.CapitalEntry) (*domain.CapitalEntry, error) {
	id, err := r.insertID(ctx, "failed to create capital entry",
		"INSERT INTO daily_capital (date, amount, category, description, notes) VALUES (?, ?, ?, ?, ?) RETURNING id",
		r.dialect.dateArg(entry.Date), entry.Amount, entry.Category, entry.Description, entry.Notes)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return &entry, nil
}

func (r *capitalRepository) ListCapital(ctx context.Context, from, to *time.Time) ([]domain.CapitalEntry, error) {
	query, args := appendDateRange(r.dialect,
		"SELECT id, date, amount, category, description, notes FROM daily_capital WHERE 1 = 1", "date", from, to)
	rows, err := r.query(ctx, query+" ORDER BY date, id", args...)
	if err != nil {
		return nil, r.storageErr("failed to list capital", err)
	}
	entries, err := scanAll(rows, func(row rowScanner) (domain.CapitalEntry, error) {
		var m models.Capital
		if err := row.Scan(&m.ID, &m.Date, &m.Amount, &m.Category, &m.Description, &m.Notes); err != nil {
			return domain.CapitalEntry{}, err
		}
		return mapping.ToDomainCapital(m), nil
	})
	if err != nil {
		return nil, r.storageErr("failed to scan capital", err)
	}
	return entries, nil
}

func appendDateRange(d Dialect, query, column string, from, to *time.Time) (string, []any) {
	var args []any
	if from != nil {
		query += " AND " + column + " >= ?"
		args = append(args, d.dateArg(*from))
	}
	if to != nil {
		query += " AND " + column + " <= ?"
		args = append(args, d.dateArg(*to))
	}
	return query, args
}
