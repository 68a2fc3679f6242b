package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ChequeLifecycle moves cheques from issued to paid. Paying a cheque whose
// payee is a vendor writes the vendor payment and its expense mirror in the
// same unit of work.
type ChequeLifecycle struct {
	BaseService
	today   func() time.Time
	mirrors mirrorWriter
}

// NewChequeLifecycle creates a ChequeLifecycle that dates settlements with today.
func NewChequeLifecycle(today func() time.Time) *ChequeLifecycle {
	return &ChequeLifecycle{today: today}
}

// Issue writes a new cheque in the issued state.
func (l *ChequeLifecycle) Issue(ctx context.Context, repos portsrepo.Repositories, cheque domain.Cheque) (*domain.Cheque, error) {
	if err := requirePositive("amount", cheque.Amount); err != nil {
		return nil, err
	}
	cheque.Status = domain.ChequeIssued
	cheque.PaidDate = nil
	cheque.PaymentTransactionID = nil
	return repos.Cheques.CreateCheque(ctx, cheque)
}

// MarkPaid settles the cheque. A cheque that is already paid is left alone
// and its stored settlement is returned with AlreadyPaid set.
func (l *ChequeLifecycle) MarkPaid(ctx context.Context, repos portsrepo.Repositories, chequeID int64, outcome *domain.Outcome) (*domain.ChequePaymentResult, error) {
	guard := NewDuplicateGuard(repos.Categories, repos.Income, repos.Cheques)
	paid, err := guard.CheckChequeAlreadyPaid(ctx, chequeID)
	if err != nil {
		return nil, err
	}
	if paid {
		return l.settlement(ctx, repos, chequeID)
	}

	today := l.today()
	changed, err := repos.Cheques.MarkChequePaid(ctx, chequeID, today)
	if err != nil {
		return nil, err
	}
	if !changed {
		return l.settlement(ctx, repos, chequeID)
	}
	outcome.Record(domain.EventUpdated, domain.EntityCheque, chequeID)

	cheque, err := repos.Cheques.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, err
	}
	result := &domain.ChequePaymentResult{Cheque: cheque}

	vendor, err := repos.Vendors.FindVendorByName(ctx, cheque.PayeeName)
	if missing, err := notFound(err); err != nil {
		return nil, err
	} else if missing {
		l.LogWarn(ctx, "Cheque payee matches no vendor; marked paid without ledger entries",
			slog.Int64("cheque_id", cheque.ID),
			slog.String("payee", cheque.PayeeName))
		result.Unmirrored = true
		return result, nil
	}

	if _, err := repos.Vendors.BumpVendorVersion(ctx, vendor.ID, 0); err != nil {
		return nil, err
	}
	payment, err := repos.VendorTransactions.CreateVendorTransaction(ctx, domain.VendorTransaction{
		VendorID:    vendor.ID,
		Date:        today,
		Type:        domain.VendorPayment,
		Amount:      cheque.Amount,
		Note:        domain.ChequePaymentNote,
		PaymentMode: domain.PaymentModeCheque,
	})
	if err != nil {
		return nil, err
	}
	outcome.Record(domain.EventCreated, domain.EntityVendorTransaction, payment.ID)

	expense, err := l.mirrors.syncVendorExpense(ctx, repos, vendor, payment, false, outcome)
	if err != nil {
		return nil, err
	}

	if err := repos.Cheques.SetChequePaymentTransaction(ctx, cheque.ID, &payment.ID); err != nil {
		return nil, err
	}
	cheque.PaymentTransactionID = &payment.ID

	balance, err := vendorBalance(ctx, repos, vendor)
	if err != nil {
		return nil, err
	}

	result.Payment = payment
	result.Expense = expense
	result.VendorBalance = &balance
	return result, nil
}

// settlement rebuilds the result of an earlier MarkPaid from storage.
func (l *ChequeLifecycle) settlement(ctx context.Context, repos portsrepo.Repositories, chequeID int64) (*domain.ChequePaymentResult, error) {
	cheque, err := repos.Cheques.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, err
	}
	result := &domain.ChequePaymentResult{Cheque: cheque, AlreadyPaid: true}
	if cheque.PaymentTransactionID == nil {
		result.Unmirrored = true
		return result, nil
	}

	payment, err := repos.VendorTransactions.FindVendorTransactionByID(ctx, *cheque.PaymentTransactionID)
	if err != nil {
		return nil, err
	}
	result.Payment = payment

	expense, err := repos.Expenses.FindExpenseByVendorTransactionID(ctx, payment.ID)
	if missing, err := notFound(err); err != nil {
		return nil, err
	} else if !missing {
		result.Expense = expense
	}

	vendor, err := repos.Vendors.FindVendorByID(ctx, payment.VendorID)
	if err != nil {
		return nil, err
	}
	balance, err := vendorBalance(ctx, repos, vendor)
	if err != nil {
		return nil, err
	}
	result.VendorBalance = &balance
	return result, nil
}

// Delete removes the cheque row only. It reports whether the cheque was
// paid, in which case the records its settlement generated stay.
func (l *ChequeLifecycle) Delete(ctx context.Context, repos portsrepo.Repositories, chequeID int64, outcome *domain.Outcome) (*domain.Cheque, bool, error) {
	cheque, err := repos.Cheques.FindChequeByID(ctx, chequeID)
	if err != nil {
		return nil, false, err
	}
	if err := repos.Cheques.DeleteCheque(ctx, chequeID); err != nil {
		return nil, false, err
	}
	outcome.Record(domain.EventDeleted, domain.EntityCheque, chequeID)
	if cheque.IsPaid() {
		l.LogWarn(ctx, "Paid cheque deleted; its payment and expense entries were kept",
			slog.Int64("cheque_id", cheque.ID),
			slog.Any("payment_transaction_id", cheque.PaymentTransactionID))
	}
	return cheque, cheque.IsPaid(), nil
}

// Listing computes days remaining for each cheque against today.
func (l *ChequeLifecycle) Listing(cheques []domain.Cheque) *domain.ChequeListing {
	today := l.today()
	listing := &domain.ChequeListing{Cheques: make([]domain.ChequeView, 0, len(cheques)), TotalDue: decimal.Zero}
	for _, c := range cheques {
		view := domain.ChequeView{Cheque: c}
		if days, ok := c.DaysRemaining(today); ok {
			view.DaysRemaining = &days
			view.Overdue = days < 0 && !c.IsPaid()
		}
		if !c.IsPaid() && !view.Overdue {
			listing.TotalDue = listing.TotalDue.Add(c.Amount)
		}
		listing.Cheques = append(listing.Cheques, view)
	}
	return listing
}

// parseChequeStatus maps a listing filter onto a status.
func parseChequeStatus(s string) (*domain.ChequeStatus, error) {
	switch domain.ChequeStatus(s) {
	case "":
		return nil, nil
	case domain.ChequeIssued, domain.ChequePaid:
		status := domain.ChequeStatus(s)
		return &status, nil
	}
	return nil, apperrors.Validationf("unknown cheque status %q", s)
}
