package domain

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Outcome lists what a committed command wrote and any linked records that
// were found out of sync along the way.
type Outcome struct {
	Events   []LedgerEvent                            `json:"events"`
	Warnings []*apperrors.ReconciliationMismatchError `json:"warnings,omitempty"`
}

// Record appends an event.
func (o *Outcome) Record(kind EventKind, entity string, id int64) {
	o.Events = append(o.Events, LedgerEvent{Kind: kind, Entity: entity, ID: id})
}

// Warn appends a mismatch warning.
func (o *Outcome) Warn(w *apperrors.ReconciliationMismatchError) {
	o.Warnings = append(o.Warnings, w)
}

// HasWarnings reports whether the command was saved with linked records out of sync.
func (o *Outcome) HasWarnings() bool {
	return len(o.Warnings) > 0
}

type VendorResult struct {
	Vendor  *Vendor         `json:"vendor"`
	Balance decimal.Decimal `json:"balance"`
	Outcome
}

// VendorTransactionResult is returned by vendor transaction commands. For
// deletes Transaction holds the removed row.
type VendorTransactionResult struct {
	Transaction *VendorTransaction `json:"transaction"`
	Cheque      *Cheque            `json:"cheque,omitempty"`
	Expense     *ExpenseEntry      `json:"expense,omitempty"`
	Balance     decimal.Decimal    `json:"balance"`
	Outcome
}

type ChequeResult struct {
	Cheque *Cheque `json:"cheque"`
	// PaidRecordsKept is set when a paid cheque was deleted; the payment
	// and expense it generated stay on the ledger.
	PaidRecordsKept bool `json:"paidRecordsKept,omitempty"`
	Outcome
}

// ChequePaymentResult is returned by MarkChequePaid, on the first call and
// on every repeat.
type ChequePaymentResult struct {
	Cheque        *Cheque            `json:"cheque"`
	Payment       *VendorTransaction `json:"payment,omitempty"`
	Expense       *ExpenseEntry      `json:"expense,omitempty"`
	VendorBalance *decimal.Decimal   `json:"vendorBalance,omitempty"`
	AlreadyPaid   bool               `json:"alreadyPaid"`
	// Unmirrored is set when no vendor matched the payee, so the cheque was
	// marked paid without ledger entries.
	Unmirrored bool `json:"unmirrored"`
	Outcome
}

type EmployeeResult struct {
	Employee *Employee `json:"employee"`
	Outcome
}

// PayrollTransactionResult is returned by payroll commands. Deduction is
// set when a salary carried a same-day loan deduction.
type PayrollTransactionResult struct {
	Transaction *PayrollTransaction `json:"transaction"`
	Deduction   *PayrollTransaction `json:"deduction,omitempty"`
	Expense     *ExpenseEntry       `json:"expense,omitempty"`
	Balance     decimal.Decimal     `json:"balance"`
	Outcome
}

type CashflowResult struct {
	Income  *IncomeEntry  `json:"income,omitempty"`
	Expense *ExpenseEntry `json:"expense,omitempty"`
	Capital *CapitalEntry `json:"capital,omitempty"`
	Outcome
}

type CategoryResult struct {
	Category       *Category `json:"category"`
	EntriesRemoved int64     `json:"entriesRemoved,omitempty"`
	Outcome
}

// ChequeView is a cheque with its days remaining to the due date.
type ChequeView struct {
	Cheque
	DaysRemaining *int `json:"daysRemaining,omitempty"`
	Overdue       bool `json:"overdue"`
}

// ChequeListing is the cheque register. TotalDue sums unpaid cheques that
// are not yet overdue.
type ChequeListing struct {
	Cheques  []ChequeView    `json:"cheques"`
	TotalDue decimal.Decimal `json:"totalDue"`
}

// ExpensePage is one page of the expense ledger.
type ExpensePage struct {
	Items         []ExpenseEntry `json:"items"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}
