package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

// UnitOfWork hands out repository sets bound to one *sql.DB or one of its
// transactions.
type UnitOfWork struct {
	db      *sql.DB
	dialect Dialect
	reader  portsrepo.Repositories
}

// NewUnitOfWork wraps an open database handle. The caller owns the handle.
func NewUnitOfWork(db *sql.DB, dialect Dialect) *UnitOfWork {
	return &UnitOfWork{
		db:      db,
		dialect: dialect,
		reader:  newRepositories(db, dialect),
	}
}

var _ portsrepo.UnitOfWork = (*UnitOfWork)(nil)

// Reader returns repositories bound to the connection pool.
func (u *UnitOfWork) Reader() portsrepo.Repositories {
	return u.reader
}

// WithinTx runs fn in a transaction, committing on nil and rolling back otherwise.
func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.Repositories) error) error {
	tx, err := u.begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = u.rollback(tx)
			panic(p)
		}
	}()

	if err := fn(ctx, newRepositories(tx, u.dialect)); err != nil {
		if rbErr := u.rollback(tx); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return u.commit(tx)
}

func (u *UnitOfWork) begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

func (u *UnitOfWork) commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

func (u *UnitOfWork) rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

func newRepositories(db querier, dialect Dialect) portsrepo.Repositories {
	base := BaseRepository{db: db, dialect: dialect}
	return portsrepo.Repositories{
		Vendors:            newVendorRepository(base),
		VendorTransactions: newVendorTransactionRepository(base),
		Cheques:            newChequeRepository(base),
		Expenses:           newExpenseRepository(base),
		Income:             newIncomeRepository(base),
		Capital:            newCapitalRepository(base),
		Categories:         newCategoryRepository(base),
		Employees:          newEmployeeRepository(base),
		Payroll:            newPayrollRepository(base),
	}
}
