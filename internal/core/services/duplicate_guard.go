package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

// DuplicateGuard rejects writes that would create a second row where only
// one is allowed. It reads through whatever repositories it is given, so a
// guard built from transactional repositories sees uncommitted writes.
type DuplicateGuard struct {
	categories portsrepo.CategoryRepository
	income     portsrepo.IncomeRepository
	cheques    portsrepo.ChequeRepository
}

// NewDuplicateGuard creates a DuplicateGuard.
func NewDuplicateGuard(categories portsrepo.CategoryRepository, income portsrepo.IncomeRepository, cheques portsrepo.ChequeRepository) *DuplicateGuard {
	return &DuplicateGuard{categories: categories, income: income, cheques: cheques}
}

// CheckIncomeDuplicate fails with ErrDuplicate when the category is Sales or
// Services and another income row already exists for the same date. A
// non-zero excludeID ignores that row, for edits.
func (g *DuplicateGuard) CheckIncomeDuplicate(ctx context.Context, date time.Time, categoryID int64, excludeID int64) error {
	category, err := g.categories.FindCategoryByID(ctx, domain.IncomeCategory, categoryID)
	if err != nil {
		return err
	}
	if !domain.IsReservedIncomeCategory(category.Name) {
		return nil
	}
	exists, err := g.income.IncomeExists(ctx, date, categoryID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Duplicatef("a %s entry already exists for %s", category.Name, domain.FormatDate(date))
	}
	return nil
}

// CheckChequeAlreadyPaid reports whether the cheque is already paid.
func (g *DuplicateGuard) CheckChequeAlreadyPaid(ctx context.Context, chequeID int64) (bool, error) {
	cheque, err := g.cheques.FindChequeByID(ctx, chequeID)
	if err != nil {
		return false, fmt.Errorf("cheque %d: %w", chequeID, err)
	}
	return cheque.IsPaid(), nil
}
