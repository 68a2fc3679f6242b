package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

// chequeDetails is the cheque a purchase asks for.
type chequeDetails struct {
	BankName string
	DueDate  *time.Time
}

// mirrorWriter keeps the records generated from a source row in step with
// it. Every method works on the repositories of the caller's unit of work
// and reports what it wrote through the outcome.
type mirrorWriter struct{}

// notFound separates a missing row from a real failure.
func notFound(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return true, nil
	}
	return false, err
}

func mismatch(source string, sourceID int64, mirror string, mirrorID int64, format string, args ...any) *apperrors.ReconciliationMismatchError {
	return &apperrors.ReconciliationMismatchError{
		Source:   source,
		SourceID: sourceID,
		Mirror:   mirror,
		MirrorID: mirrorID,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// syncVendorExpense makes the expense mirror of txn match its current state:
// one Vendors expense for a payment, none otherwise. wasPayment says whether
// the row was a payment before this command, which is when a mirror is
// expected to exist already.
func (w mirrorWriter) syncVendorExpense(ctx context.Context, repos portsrepo.Repositories, vendor *domain.Vendor, txn *domain.VendorTransaction, wasPayment bool, outcome *domain.Outcome) (*domain.ExpenseEntry, error) {
	existing, err := repos.Expenses.FindExpenseByVendorTransactionID(ctx, txn.ID)
	missing, err := notFound(err)
	if err != nil {
		return nil, err
	}

	if txn.Type != domain.VendorPayment {
		if !missing {
			if err := repos.Expenses.DeleteExpense(ctx, existing.ID); err != nil {
				return nil, err
			}
			outcome.Record(domain.EventDeleted, domain.EntityExpense, existing.ID)
		} else if wasPayment {
			outcome.Warn(mismatch(domain.EntityVendorTransaction, txn.ID, domain.EntityExpense, 0,
				"payment had no expense entry to remove"))
		}
		return nil, nil
	}

	category, err := repos.Categories.EnsureCategory(ctx, domain.ExpenseCategory, domain.CategoryVendors)
	if err != nil {
		return nil, err
	}
	txnID := txn.ID
	want := domain.ExpenseEntry{
		Date:                txn.Date,
		Amount:              txn.Amount,
		CategoryID:          category.ID,
		CategoryName:        category.Name,
		Description:         vendor.Name,
		Notes:               domain.PaymentNotes(txn.PaymentMode),
		VendorTransactionID: &txnID,
	}

	if !missing {
		want.ID = existing.ID
		if err := repos.Expenses.UpdateExpense(ctx, want); err != nil {
			return nil, err
		}
		outcome.Record(domain.EventUpdated, domain.EntityExpense, want.ID)
		return &want, nil
	}

	created, err := repos.Expenses.CreateExpense(ctx, want)
	if err != nil {
		return nil, err
	}
	if wasPayment {
		outcome.Warn(mismatch(domain.EntityVendorTransaction, txn.ID, domain.EntityExpense, created.ID,
			"payment had no expense entry; a new one was written"))
	}
	outcome.Record(domain.EventCreated, domain.EntityExpense, created.ID)
	return created, nil
}

// syncPurchaseCheque makes the cheque linked to txn match details: one cheque
// for a purchase paid by cheque, none otherwise. Paid cheques are never
// rewritten.
func (w mirrorWriter) syncPurchaseCheque(ctx context.Context, repos portsrepo.Repositories, vendor *domain.Vendor, txn *domain.VendorTransaction, details *chequeDetails, outcome *domain.Outcome) (*domain.Cheque, error) {
	existing, err := repos.Cheques.FindChequeByVendorTransactionID(ctx, txn.ID)
	missing, err := notFound(err)
	if err != nil {
		return nil, err
	}
	wanted := txn.Type == domain.VendorPurchase && details != nil

	switch {
	case !wanted && missing:
		return nil, nil

	case !wanted && existing.IsPaid():
		existing.VendorTransactionID = nil
		if err := repos.Cheques.UpdateCheque(ctx, *existing); err != nil {
			return nil, err
		}
		outcome.Warn(mismatch(domain.EntityVendorTransaction, txn.ID, domain.EntityCheque, existing.ID,
			"cheque already paid; kept and unlinked from the purchase"))
		outcome.Record(domain.EventUpdated, domain.EntityCheque, existing.ID)
		return nil, nil

	case !wanted:
		if err := repos.Cheques.DeleteCheque(ctx, existing.ID); err != nil {
			return nil, err
		}
		outcome.Record(domain.EventDeleted, domain.EntityCheque, existing.ID)
		return nil, nil

	case missing:
		txnID := txn.ID
		dueDate := details.DueDate
		if dueDate == nil {
			dueDate = txn.DueDate
		}
		created, err := repos.Cheques.CreateCheque(ctx, domain.Cheque{
			IssueDate:           txn.Date,
			PayeeName:           vendor.Name,
			BankName:            details.BankName,
			DueDate:             dueDate,
			Amount:              txn.Amount,
			Status:              domain.ChequeIssued,
			VendorTransactionID: &txnID,
		})
		if err != nil {
			return nil, err
		}
		outcome.Record(domain.EventCreated, domain.EntityCheque, created.ID)
		return created, nil

	case existing.IsPaid():
		if !existing.Amount.Equal(txn.Amount) {
			outcome.Warn(mismatch(domain.EntityVendorTransaction, txn.ID, domain.EntityCheque, existing.ID,
				"cheque already paid for %s; purchase is now %s", existing.Amount, txn.Amount))
		}
		return existing, nil
	}

	existing.IssueDate = txn.Date
	existing.PayeeName = vendor.Name
	existing.BankName = details.BankName
	existing.Amount = txn.Amount
	existing.DueDate = details.DueDate
	if existing.DueDate == nil {
		existing.DueDate = txn.DueDate
	}
	if err := repos.Cheques.UpdateCheque(ctx, *existing); err != nil {
		return nil, err
	}
	outcome.Record(domain.EventUpdated, domain.EntityCheque, existing.ID)
	return existing, nil
}

// detachSettledCheque clears the link from a paid cheque to txn when txn
// is about to stop being that cheque's payment. The cheque stays paid.
func (w mirrorWriter) detachSettledCheque(ctx context.Context, repos portsrepo.Repositories, txn *domain.VendorTransaction, outcome *domain.Outcome) error {
	cheque, err := repos.Cheques.FindChequeByPaymentTransactionID(ctx, txn.ID)
	if missing, err := notFound(err); missing || err != nil {
		return err
	}
	if err := repos.Cheques.SetChequePaymentTransaction(ctx, cheque.ID, nil); err != nil {
		return err
	}
	outcome.Warn(mismatch(domain.EntityVendorTransaction, txn.ID, domain.EntityCheque, cheque.ID,
		"cheque stays paid but no longer points at a payment"))
	outcome.Record(domain.EventUpdated, domain.EntityCheque, cheque.ID)
	return nil
}

// removeVendorTransaction deletes txn together with everything generated
// from it. Links are cleared before the row goes.
func (w mirrorWriter) removeVendorTransaction(ctx context.Context, repos portsrepo.Repositories, txn *domain.VendorTransaction, outcome *domain.Outcome) error {
	expense, err := repos.Expenses.FindExpenseByVendorTransactionID(ctx, txn.ID)
	missing, err := notFound(err)
	if err != nil {
		return err
	}
	switch {
	case !missing:
		if err := repos.Expenses.DeleteExpense(ctx, expense.ID); err != nil {
			return err
		}
		outcome.Record(domain.EventDeleted, domain.EntityExpense, expense.ID)
	case txn.Type == domain.VendorPayment:
		outcome.Warn(mismatch(domain.EntityVendorTransaction, txn.ID, domain.EntityExpense, 0,
			"payment had no expense entry to remove"))
	}

	cheque, err := repos.Cheques.FindChequeByVendorTransactionID(ctx, txn.ID)
	missing, err = notFound(err)
	if err != nil {
		return err
	}
	if !missing {
		if err := repos.Cheques.DeleteCheque(ctx, cheque.ID); err != nil {
			return err
		}
		if cheque.IsPaid() {
			outcome.Warn(mismatch(domain.EntityVendorTransaction, txn.ID, domain.EntityCheque, cheque.ID,
				"paid cheque removed; the payment it generated was kept"))
		}
		outcome.Record(domain.EventDeleted, domain.EntityCheque, cheque.ID)
	}

	if err := w.detachSettledCheque(ctx, repos, txn, outcome); err != nil {
		return err
	}

	if err := repos.VendorTransactions.DeleteVendorTransaction(ctx, txn.ID); err != nil {
		return err
	}
	outcome.Record(domain.EventDeleted, domain.EntityVendorTransaction, txn.ID)
	return nil
}

// syncPayrollExpense makes the Salary expense mirror of txn match its
// current state. wasMirrored says whether a mirror was expected to exist.
func (w mirrorWriter) syncPayrollExpense(ctx context.Context, repos portsrepo.Repositories, employee *domain.Employee, txn *domain.PayrollTransaction, wasMirrored bool, outcome *domain.Outcome) (*domain.ExpenseEntry, error) {
	existing, err := repos.Expenses.FindExpenseByPayrollTransactionID(ctx, txn.ID)
	missing, err := notFound(err)
	if err != nil {
		return nil, err
	}

	if !txn.Type.MirrorsToExpense() {
		if !missing {
			if err := repos.Expenses.DeleteExpense(ctx, existing.ID); err != nil {
				return nil, err
			}
			outcome.Record(domain.EventDeleted, domain.EntityExpense, existing.ID)
		} else if wasMirrored {
			outcome.Warn(mismatch(domain.EntityPayrollTransaction, txn.ID, domain.EntityExpense, 0,
				"payroll row had no expense entry to remove"))
		}
		return nil, nil
	}

	category, err := repos.Categories.EnsureCategory(ctx, domain.ExpenseCategory, domain.CategorySalary)
	if err != nil {
		return nil, err
	}
	txnID := txn.ID
	want := domain.ExpenseEntry{
		Date:                 txn.Date,
		Amount:               txn.Amount,
		CategoryID:           category.ID,
		CategoryName:         category.Name,
		Description:          employee.Name,
		Notes:                txn.Type.MirrorNotes(),
		PayrollTransactionID: &txnID,
	}

	if !missing {
		want.ID = existing.ID
		if err := repos.Expenses.UpdateExpense(ctx, want); err != nil {
			return nil, err
		}
		outcome.Record(domain.EventUpdated, domain.EntityExpense, want.ID)
		return &want, nil
	}

	created, err := repos.Expenses.CreateExpense(ctx, want)
	if err != nil {
		return nil, err
	}
	if wasMirrored {
		outcome.Warn(mismatch(domain.EntityPayrollTransaction, txn.ID, domain.EntityExpense, created.ID,
			"payroll row had no expense entry; a new one was written"))
	}
	outcome.Record(domain.EventCreated, domain.EntityExpense, created.ID)
	return created, nil
}

// removePayrollTransaction deletes txn and its expense mirror.
func (w mirrorWriter) removePayrollTransaction(ctx context.Context, repos portsrepo.Repositories, txn *domain.PayrollTransaction, outcome *domain.Outcome) error {
	expense, err := repos.Expenses.FindExpenseByPayrollTransactionID(ctx, txn.ID)
	missing, err := notFound(err)
	if err != nil {
		return err
	}
	switch {
	case !missing:
		if err := repos.Expenses.DeleteExpense(ctx, expense.ID); err != nil {
			return err
		}
		outcome.Record(domain.EventDeleted, domain.EntityExpense, expense.ID)
	case txn.Type.MirrorsToExpense():
		outcome.Warn(mismatch(domain.EntityPayrollTransaction, txn.ID, domain.EntityExpense, 0,
			"payroll row had no expense entry to remove"))
	}

	if err := repos.Payroll.DeletePayrollTransaction(ctx, txn.ID); err != nil {
		return err
	}
	outcome.Record(domain.EventDeleted, domain.EntityPayrollTransaction, txn.ID)
	return nil
}
