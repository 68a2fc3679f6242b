package dto

import "github.com/shopspring/decimal"

// CreateVendorRequest defines the data for creating a vendor account.
type CreateVendorRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	Contact        string          `json:"contact" validate:"max=200"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateVendorRequest changes vendor details. Nil fields are left alone.
type UpdateVendorRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Contact         *string          `json:"contact,omitempty" validate:"omitempty,max=200"`
	OpeningBalance  *decimal.Decimal `json:"openingBalance,omitempty"`
	ExpectedVersion int64            `json:"expectedVersion,omitempty" validate:"gte=0"`
}

// ChequeDetails marks a purchase as paid by a post-dated cheque.
type ChequeDetails struct {
	BankName string `json:"bankName" validate:"required,max=200"`
	DueDate  string `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// RecordVendorTransactionRequest records a purchase, payment or return.
type RecordVendorTransactionRequest struct {
	VendorID int64 `json:"vendorID" validate:"required,gt=0"`
	VendorTransactionFields
}

// EditVendorTransactionRequest replaces every field of a vendor transaction.
type EditVendorTransactionRequest struct {
	VendorTransactionFields
}

// VendorTransactionFields are the user-editable fields of a vendor transaction.
type VendorTransactionFields struct {
	Type        string          `json:"type" validate:"required,oneof=purchase payment return"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Note        string          `json:"note" validate:"max=500"`
	DueDate     string          `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	InvoiceNo   string          `json:"invoiceNo" validate:"max=100"`
	PaymentMode string          `json:"paymentMode" validate:"max=50"`
	NetTerms    string          `json:"netTerms" validate:"max=20"`
	Cheque      *ChequeDetails  `json:"cheque,omitempty"`

	ExpectedVersion int64 `json:"expectedVersion,omitempty" validate:"gte=0"`
}

// DateRangeParams bounds ledger listings; empty values are open.
type DateRangeParams struct {
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}
