package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChequeStatus is the lifecycle state of a cheque.
type ChequeStatus string

const (
	ChequeIssued ChequeStatus = "issued"
	ChequePaid   ChequeStatus = "paid"
)

// ChequePaymentNote is the note on vendor payments generated by cheque settlement.
const ChequePaymentNote = "Payment via Cheque"

// Cheque is a post-dated cheque handed to a payee.
type Cheque struct {
	ID                   int64           `json:"id"`
	IssueDate            time.Time       `json:"issueDate"`
	PayeeName            string          `json:"payeeName"`
	BankName             string          `json:"bankName"`
	DueDate              *time.Time      `json:"dueDate,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Status               ChequeStatus    `json:"status"`
	PaidDate             *time.Time      `json:"paidDate,omitempty"`
	VendorTransactionID  *int64          `json:"vendorTransactionID,omitempty"`
	PaymentTransactionID *int64          `json:"paymentTransactionID,omitempty"`
}

// IsPaid reports whether the cheque reached the paid state.
func (c Cheque) IsPaid() bool {
	return c.Status == ChequePaid
}

// DaysRemaining returns the whole days from today until the due date.
// Negative values mean the cheque is overdue.
func (c Cheque) DaysRemaining(today time.Time) (int, bool) {
	if c.DueDate == nil {
		return 0, false
	}
	return int(DateOf(*c.DueDate).Sub(DateOf(today)).Hours() / 24), true
}
