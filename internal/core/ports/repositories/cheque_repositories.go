package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// ChequeFilter narrows ListCheques. A nil Status lists every cheque.
type ChequeFilter struct {
	Status *domain.ChequeStatus
}

// ChequeRepository persists cheques and their links to vendor transactions.
type ChequeRepository interface {
	CreateCheque(ctx context.Context, cheque domain.Cheque) (*domain.Cheque, error)
	FindChequeByID(ctx context.Context, chequeID int64) (*domain.Cheque, error)
	FindChequeByVendorTransactionID(ctx context.Context, txnID int64) (*domain.Cheque, error)
	FindChequeByPaymentTransactionID(ctx context.Context, txnID int64) (*domain.Cheque, error)

	// ListCheques returns cheques ordered by due date, unscheduled last.
	ListCheques(ctx context.Context, filter ChequeFilter) ([]domain.Cheque, error)

	UpdateCheque(ctx context.Context, cheque domain.Cheque) error

	// MarkChequePaid flips an issued cheque to paid. It reports false when the
	// cheque was already paid, leaving the row untouched.
	MarkChequePaid(ctx context.Context, chequeID int64, paidDate time.Time) (bool, error)

	SetChequePaymentTransaction(ctx context.Context, chequeID int64, paymentTxnID *int64) error
	DeleteCheque(ctx context.Context, chequeID int64) error
}
