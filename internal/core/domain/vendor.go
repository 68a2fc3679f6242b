package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VendorTransactionType is the kind of movement on a vendor's payable account.
type VendorTransactionType string

const (
	VendorPurchase VendorTransactionType = "purchase"
	VendorPayment  VendorTransactionType = "payment"
	VendorReturn   VendorTransactionType = "return"
)

// Valid reports whether t is a known vendor transaction type.
func (t VendorTransactionType) Valid() bool {
	switch t {
	case VendorPurchase, VendorPayment, VendorReturn:
		return true
	}
	return false
}

// PaymentModeCheque is the payment mode recorded for cheque settlements.
const PaymentModeCheque = "Cheque"

// Vendor is an accounts-payable account. Its balance is always derived.
type Vendor struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Contact        string          `json:"contact"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Version        int64           `json:"version"`
}

// VendorTransaction is one purchase, payment or return against a vendor.
type VendorTransaction struct {
	ID          int64                 `json:"id"`
	VendorID    int64                 `json:"vendorID"`
	Date        time.Time             `json:"date"`
	Type        VendorTransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	Note        string                `json:"note"`
	DueDate     *time.Time            `json:"dueDate,omitempty"`
	InvoiceNo   string                `json:"invoiceNo"`
	PaymentMode string                `json:"paymentMode"`
	NetTerms    string                `json:"netTerms"`
}

// VendorLedgerRow is a vendor transaction with the balance after it.
type VendorLedgerRow struct {
	VendorTransaction
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// VendorSummary pairs a vendor with its derived balance.
type VendorSummary struct {
	Vendor
	Balance decimal.Decimal `json:"balance"`
}

// NetTermsDays extracts the day count from terms such as "NET 30" or "net60".
func NetTermsDays(terms string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(terms))
	if !strings.HasPrefix(s, "NET") {
		return 0, false
	}
	days, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, "NET")))
	if err != nil || days <= 0 {
		return 0, false
	}
	return days, true
}

// PaymentNotes is the cashflow note written for a vendor payment mirror.
func PaymentNotes(mode string) string {
	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = "Other"
	}
	return "Paid via " + mode
}
