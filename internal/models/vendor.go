package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Vendor is a row of the vendors table.
type Vendor struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Contact        string          `db:"contact"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Version        int64           `db:"version"`
}

// VendorTransaction is a row of the vendor_transactions table.
type VendorTransaction struct {
	ID          int64           `db:"id"`
	VendorID    int64           `db:"vendor_id"`
	Date        Date            `db:"date"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Note        string          `db:"note"`
	DueDate     NullDate        `db:"due_date"`
	InvoiceNo   string          `db:"invoice_no"`
	PaymentMode string          `db:"payment_mode"`
	NetTerms    string          `db:"net_terms"`
}

// Cheque is a row of the cheques table. Column names follow the legacy
// desktop schema (cheque_date, company_name, is_paid).
type Cheque struct {
	ID                   int64           `db:"id"`
	ChequeDate           Date            `db:"cheque_date"`
	CompanyName          string          `db:"company_name"`
	BankName             string          `db:"bank_name"`
	DueDate              NullDate        `db:"due_date"`
	Amount               decimal.Decimal `db:"amount"`
	IsPaid               bool            `db:"is_paid"`
	PaidDate             NullDate        `db:"paid_date"`
	VendorTransactionID  sql.NullInt64   `db:"vendor_transaction_id"`
	PaymentTransactionID sql.NullInt64   `db:"payment_transaction_id"`
}
