package sqldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
)

type categoryRepository struct {
	BaseRepository
}

func newCategoryRepository(base BaseRepository) *categoryRepository {
	return &categoryRepository{BaseRepository: base}
}

var _ portsrepo.CategoryRepository = (*categoryRepository)(nil)

func categoryTable(kind domain.CategoryKind) (string, error) {
	switch kind {
	case domain.ExpenseCategory:
		return "expense_categories", nil
	case domain.IncomeCategory:
		return "income_categories", nil
	}
	return "", apperrors.Validationf("unknown category kind %q", kind)
}

func (r *categoryRepository) scanOne(row rowScanner, kind domain.CategoryKind) (domain.Category, error) {
	var m models.Category
	if err := row.Scan(&m.ID, &m.Name); err != nil {
		return domain.Category{}, err
	}
	return mapping.ToDomainCategory(m, kind), nil
}

func (r *categoryRepository) FindCategoryByID(ctx context.Context, kind domain.CategoryKind, categoryID int64) (*domain.Category, error) {
	table, err := categoryTable(kind)
	if err != nil {
		return nil, err
	}
	cat, err := r.scanOne(r.queryRow(ctx, "SELECT id, name FROM "+table+" WHERE id = ?", categoryID), kind)
	if err != nil {
		return nil, r.rowErr("failed to find category", err, apperrors.NotFoundf("%s category %d", kind, categoryID))
	}
	return &cat, nil
}

func (r *categoryRepository) FindCategoryByName(ctx context.Context, kind domain.CategoryKind, name string) (*domain.Category, error) {
	table, err := categoryTable(kind)
	if err != nil {
		return nil, err
	}
	cat, err := r.scanOne(r.queryRow(ctx,
		"SELECT id, name FROM "+table+" WHERE LOWER(name) = LOWER(?) ORDER BY id LIMIT 1", name), kind)
	if err != nil {
		return nil, r.rowErr("failed to find category", err, apperrors.NotFoundf("%s category %q", kind, name))
	}
	return &cat, nil
}

func (r *categoryRepository) EnsureCategory(ctx context.Context, kind domain.CategoryKind, name string) (*domain.Category, error) {
	cat, err := r.FindCategoryByName(ctx, kind, name)
	if err == nil || !errors.Is(err, apperrors.ErrNotFound) {
		return cat, err
	}

	table, _ := categoryTable(kind)
	if _, err := r.exec(ctx, "INSERT INTO "+table+" (name) VALUES (?) ON CONFLICT (name) DO NOTHING", name); err != nil {
		return nil, r.storageErr(fmt.Sprintf("failed to create %s category", kind), err)
	}
	return r.FindCategoryByName(ctx, kind, name)
}

func (r *categoryRepository) ListCategories(ctx context.Context, kind domain.CategoryKind) ([]domain.Category, error) {
	table, err := categoryTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.query(ctx, "SELECT id, name FROM "+table+" ORDER BY name")
	if err != nil {
		return nil, r.storageErr("failed to list categories", err)
	}
	cats, err := scanAll(rows, func(row rowScanner) (domain.Category, error) {
		return r.scanOne(row, kind)
	})
	if err != nil {
		return nil, r.storageErr("failed to scan categories", err)
	}
	return cats, nil
}

func entryTable(kind domain.CategoryKind) string {
	if kind == domain.IncomeCategory {
		return "daily_income"
	}
	return "daily_expense"
}

func (r *categoryRepository) CategoryUsage(ctx context.Context, kind domain.CategoryKind, categoryID int64) (domain.CategoryUsage, error) {
	if _, err := categoryTable(kind); err != nil {
		return domain.CategoryUsage{}, err
	}
	var usage domain.CategoryUsage
	if kind == domain.IncomeCategory {
		err := r.queryRow(ctx, "SELECT COUNT(*) FROM daily_income WHERE category_id = ?", categoryID).Scan(&usage.Entries)
		if err != nil {
			return usage, r.storageErr("failed to count category entries", err)
		}
		return usage, nil
	}
	err := r.queryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE vendor_transaction_id IS NOT NULL OR payroll_transaction_id IS NOT NULL)
		 FROM daily_expense WHERE category_id = ?`, categoryID).Scan(&usage.Entries, &usage.Mirrors)
	if err != nil {
		return usage, r.storageErr("failed to count category entries", err)
	}
	return usage, nil
}

func (r *categoryRepository) RenameCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64, name string) error {
	table, err := categoryTable(kind)
	if err != nil {
		return err
	}
	return r.execOne(ctx, fmt.Sprintf("failed to rename %s category", kind), apperrors.NotFoundf("%s category %d", kind, categoryID),
		"UPDATE "+table+" SET name = ? WHERE id = ?", name, categoryID)
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64) (int64, error) {
	table, err := categoryTable(kind)
	if err != nil {
		return 0, err
	}
	res, err := r.exec(ctx, "DELETE FROM "+entryTable(kind)+" WHERE category_id = ?", categoryID)
	if err != nil {
		return 0, r.storageErr("failed to delete category entries", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, r.storageErr("failed to delete category entries", err)
	}
	err = r.execOne(ctx, fmt.Sprintf("failed to delete %s category", kind), apperrors.NotFoundf("%s category %d", kind, categoryID),
		"DELETE FROM "+table+" WHERE id = ?", categoryID)
	if err != nil {
		return 0, err
	}
	return removed, nil
}
