package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/pagination"
)

const defaultExpensePageSize = 50

// resolveCategory finds a category by id, or find-or-creates it by name.
func resolveCategory(ctx context.Context, repos portsrepo.Repositories, kind domain.CategoryKind, id int64, name string) (*domain.Category, error) {
	if id > 0 {
		return repos.Categories.FindCategoryByID(ctx, kind, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("a category id or name is required")
	}
	return repos.Categories.EnsureCategory(ctx, kind, name)
}

func (e *ReconciliationEngine) parseIncome(req dto.IncomeRequest) (*domain.IncomeEntry, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	return &domain.IncomeEntry{
		Date:         date,
		Amount:       req.Amount,
		CategoryID:   req.CategoryID,
		CategoryName: strings.TrimSpace(req.CategoryName),
		Description:  strings.TrimSpace(req.Description),
		Notes:        strings.TrimSpace(req.Notes),
	}, nil
}

// RecordIncome writes an income row. Sales and Services allow one row per day.
func (e *ReconciliationEngine) RecordIncome(ctx context.Context, req dto.IncomeRequest) (*domain.CashflowResult, error) {
	entry, err := e.parseIncome(req)
	if err != nil {
		return nil, err
	}

	result := &domain.CashflowResult{}
	err = e.run(ctx, "RecordIncome", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		category, err := resolveCategory(ctx, repos, domain.IncomeCategory, entry.CategoryID, entry.CategoryName)
		if err != nil {
			return err
		}
		guard := NewDuplicateGuard(repos.Categories, repos.Income, repos.Cheques)
		if err := guard.CheckIncomeDuplicate(ctx, entry.Date, category.ID, 0); err != nil {
			return err
		}

		entry.CategoryID = category.ID
		created, err := repos.Income.CreateIncome(ctx, *entry)
		if err != nil {
			return err
		}
		created.CategoryName = category.Name
		result.Income = created
		result.Record(domain.EventCreated, domain.EntityIncome, created.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EditIncome replaces an income row. The row being edited does not count
// against its own day.
func (e *ReconciliationEngine) EditIncome(ctx context.Context, incomeID int64, req dto.IncomeRequest) (*domain.CashflowResult, error) {
	entry, err := e.parseIncome(req)
	if err != nil {
		return nil, err
	}

	result := &domain.CashflowResult{}
	err = e.run(ctx, "EditIncome", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Income.FindIncomeByID(ctx, incomeID); err != nil {
			return err
		}
		category, err := resolveCategory(ctx, repos, domain.IncomeCategory, entry.CategoryID, entry.CategoryName)
		if err != nil {
			return err
		}
		guard := NewDuplicateGuard(repos.Categories, repos.Income, repos.Cheques)
		if err := guard.CheckIncomeDuplicate(ctx, entry.Date, category.ID, incomeID); err != nil {
			return err
		}

		entry.ID = incomeID
		entry.CategoryID = category.ID
		entry.CategoryName = category.Name
		if err := repos.Income.UpdateIncome(ctx, *entry); err != nil {
			return err
		}
		result.Income = entry
		result.Record(domain.EventUpdated, domain.EntityIncome, incomeID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteIncome removes an income row.
func (e *ReconciliationEngine) DeleteIncome(ctx context.Context, incomeID int64) (*domain.CashflowResult, error) {
	result := &domain.CashflowResult{}
	err := e.run(ctx, "DeleteIncome", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := repos.Income.FindIncomeByID(ctx, incomeID)
		if err != nil {
			return err
		}
		if err := repos.Income.DeleteIncome(ctx, incomeID); err != nil {
			return err
		}
		result.Income = entry
		result.Record(domain.EventDeleted, domain.EntityIncome, incomeID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListIncome returns income rows in (date, id) order.
func (e *ReconciliationEngine) ListIncome(ctx context.Context, from, to *time.Time) ([]domain.IncomeEntry, error) {
	return e.uow.Reader().Income.ListIncome(ctx, from, to)
}

func (e *ReconciliationEngine) parseExpense(req dto.ExpenseRequest) (*domain.ExpenseEntry, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	return &domain.ExpenseEntry{
		Date:         date,
		Amount:       req.Amount,
		CategoryID:   req.CategoryID,
		CategoryName: strings.TrimSpace(req.CategoryName),
		Description:  strings.TrimSpace(req.Description),
		Notes:        strings.TrimSpace(req.Notes),
	}, nil
}

// refuseMirror rejects changes made directly to a mirror row.
func refuseMirror(entry *domain.ExpenseEntry) error {
	switch {
	case entry.VendorTransactionID != nil:
		return apperrors.Validationf("expense %d belongs to vendor transaction %d; change that instead", entry.ID, *entry.VendorTransactionID)
	case entry.PayrollTransactionID != nil:
		return apperrors.Validationf("expense %d belongs to payroll transaction %d; change that instead", entry.ID, *entry.PayrollTransactionID)
	}
	return nil
}

// RecordExpense writes a manual expense row.
func (e *ReconciliationEngine) RecordExpense(ctx context.Context, req dto.ExpenseRequest) (*domain.CashflowResult, error) {
	entry, err := e.parseExpense(req)
	if err != nil {
		return nil, err
	}

	result := &domain.CashflowResult{}
	err = e.run(ctx, "RecordExpense", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		category, err := resolveCategory(ctx, repos, domain.ExpenseCategory, entry.CategoryID, entry.CategoryName)
		if err != nil {
			return err
		}
		entry.CategoryID = category.ID
		entry.CategoryName = category.Name
		created, err := repos.Expenses.CreateExpense(ctx, *entry)
		if err != nil {
			return err
		}
		result.Expense = created
		result.Record(domain.EventCreated, domain.EntityExpense, created.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EditExpense replaces a manual expense row. Mirror rows are refused.
func (e *ReconciliationEngine) EditExpense(ctx context.Context, expenseID int64, req dto.ExpenseRequest) (*domain.CashflowResult, error) {
	entry, err := e.parseExpense(req)
	if err != nil {
		return nil, err
	}

	result := &domain.CashflowResult{}
	err = e.run(ctx, "EditExpense", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := repos.Expenses.FindExpenseByID(ctx, expenseID)
		if err != nil {
			return err
		}
		if err := refuseMirror(existing); err != nil {
			return err
		}
		category, err := resolveCategory(ctx, repos, domain.ExpenseCategory, entry.CategoryID, entry.CategoryName)
		if err != nil {
			return err
		}

		entry.ID = expenseID
		entry.CategoryID = category.ID
		entry.CategoryName = category.Name
		if err := repos.Expenses.UpdateExpense(ctx, *entry); err != nil {
			return err
		}
		result.Expense = entry
		result.Record(domain.EventUpdated, domain.EntityExpense, expenseID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteExpense removes a manual expense row. Rows generated from a vendor
// payment or payroll row are refused.
func (e *ReconciliationEngine) DeleteExpense(ctx context.Context, expenseID int64) (*domain.CashflowResult, error) {
	result := &domain.CashflowResult{}
	err := e.run(ctx, "DeleteExpense", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := repos.Expenses.FindExpenseByID(ctx, expenseID)
		if err != nil {
			return err
		}
		if err := refuseMirror(entry); err != nil {
			return err
		}
		if err := repos.Expenses.DeleteExpense(ctx, expenseID); err != nil {
			return err
		}
		result.Expense = entry
		result.Record(domain.EventDeleted, domain.EntityExpense, expenseID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListExpenses returns one page of the expense ledger.
func (e *ReconciliationEngine) ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*domain.ExpensePage, error) {
	if err := e.validateRequest(params); err != nil {
		return nil, err
	}
	from, to, err := ParseDateRange(params.From, params.To)
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultExpensePageSize
	}

	filter := portsrepo.ExpenseFilter{From: from, To: to, Limit: limit + 1}
	if params.NextToken != "" {
		date, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, apperrors.Validationf("%v", err)
		}
		filter.After = &portsrepo.PageCursor{Date: date, ID: id}
	}

	items, err := e.uow.Reader().Expenses.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := &domain.ExpensePage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		last := page.Items[limit-1]
		page.NextPageToken = pagination.EncodeToken(last.Date, last.ID)
	}
	return page, nil
}

// RecordCapital writes a capital injection.
func (e *ReconciliationEngine) RecordCapital(ctx context.Context, req dto.CapitalRequest) (*domain.CashflowResult, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	result := &domain.CashflowResult{}
	err = e.run(ctx, "RecordCapital", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		created, err := repos.Capital.CreateCapital(ctx, domain.CapitalEntry{
			Date:        date,
			Amount:      req.Amount,
			Category:    domain.CapitalCategory,
			Description: strings.TrimSpace(req.Description),
			Notes:       strings.TrimSpace(req.Notes),
		})
		if err != nil {
			return err
		}
		result.Capital = created
		result.Record(domain.EventCreated, domain.EntityCapital, created.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListCapital returns capital rows in (date, id) order.
func (e *ReconciliationEngine) ListCapital(ctx context.Context, from, to *time.Time) ([]domain.CapitalEntry, error) {
	return e.uow.Reader().Capital.ListCapital(ctx, from, to)
}

// EnsureCategory finds the named category or creates it.
func (e *ReconciliationEngine) EnsureCategory(ctx context.Context, kind domain.CategoryKind, req dto.CreateCategoryRequest) (*domain.CategoryResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}
	if kind != domain.ExpenseCategory && kind != domain.IncomeCategory {
		return nil, apperrors.Validationf("unknown category kind %q", kind)
	}

	result := &domain.CategoryResult{}
	err := e.run(ctx, "EnsureCategory", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		category, err := repos.Categories.EnsureCategory(ctx, kind, req.Name)
		if err != nil {
			return err
		}
		result.Category = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// editableCategory loads a category that may be renamed or deleted.
func editableCategory(ctx context.Context, repos portsrepo.Repositories, kind domain.CategoryKind, categoryID int64) (*domain.Category, error) {
	category, err := repos.Categories.FindCategoryByID(ctx, kind, categoryID)
	if err != nil {
		return nil, err
	}
	if domain.IsReservedCategory(kind, category.Name) {
		return nil, apperrors.Validationf("%s category %q is reserved", kind, category.Name)
	}
	usage, err := repos.Categories.CategoryUsage(ctx, kind, categoryID)
	if err != nil {
		return nil, err
	}
	if usage.Mirrors > 0 {
		return nil, apperrors.Validationf("%s category %q holds %d rows generated from vendor or payroll entries", kind, category.Name, usage.Mirrors)
	}
	return category, nil
}

// RenameCategory renames a category. Reserved categories and categories
// holding mirror rows are refused.
func (e *ReconciliationEngine) RenameCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64, req dto.RenameCategoryRequest) (*domain.CategoryResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}
	if domain.IsReservedCategory(kind, req.Name) {
		return nil, apperrors.Validationf("%q is a reserved category name", req.Name)
	}

	result := &domain.CategoryResult{}
	err := e.run(ctx, "RenameCategory", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		category, err := editableCategory(ctx, repos, kind, categoryID)
		if err != nil {
			return err
		}
		if other, err := repos.Categories.FindCategoryByName(ctx, kind, req.Name); err == nil && other.ID != categoryID {
			return apperrors.Duplicatef("%s category %q already exists", kind, other.Name)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		if err := repos.Categories.RenameCategory(ctx, kind, categoryID, req.Name); err != nil {
			return err
		}
		category.Name = req.Name
		result.Category = category
		result.Record(domain.EventUpdated, domain.EntityCategory, categoryID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteCategory removes a category and the entry rows filed under it.
// Reserved categories and categories holding mirror rows are refused.
func (e *ReconciliationEngine) DeleteCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64) (*domain.CategoryResult, error) {
	result := &domain.CategoryResult{}
	err := e.run(ctx, "DeleteCategory", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		category, err := editableCategory(ctx, repos, kind, categoryID)
		if err != nil {
			return err
		}
		removed, err := repos.Categories.DeleteCategory(ctx, kind, categoryID)
		if err != nil {
			return err
		}
		result.Category = category
		result.EntriesRemoved = removed
		result.Record(domain.EventDeleted, domain.EntityCategory, categoryID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListCategories returns the categories of one kind.
func (e *ReconciliationEngine) ListCategories(ctx context.Context, kind domain.CategoryKind) ([]domain.Category, error) {
	if kind != domain.ExpenseCategory && kind != domain.IncomeCategory {
		return nil, apperrors.Validationf("unknown category kind %q", kind)
	}
	return e.uow.Reader().Categories.ListCategories(ctx, kind)
}

// EnsureReservedCategories find-or-creates the categories the engine
// writes to on its own.
func (e *ReconciliationEngine) EnsureReservedCategories(ctx context.Context) error {
	reserved := []struct {
		kind domain.CategoryKind
		name string
	}{
		{domain.ExpenseCategory, domain.CategoryVendors},
		{domain.ExpenseCategory, domain.CategorySalary},
		{domain.IncomeCategory, domain.CategorySales},
		{domain.IncomeCategory, domain.CategoryServices},
	}
	for _, r := range reserved {
		if _, err := e.EnsureCategory(ctx, r.kind, dto.CreateCategoryRequest{Name: r.name}); err != nil {
			return err
		}
	}
	return nil
}
