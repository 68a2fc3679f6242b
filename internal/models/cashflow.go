package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Expense is a row of daily_expense joined with its category name.
type Expense struct {
	ID                   int64           `db:"id"`
	Date                 Date            `db:"date"`
	Amount               decimal.Decimal `db:"amount"`
	CategoryID           int64           `db:"category_id"`
	CategoryName         string          `db:"category_name"`
	Description          string          `db:"description"`
	Notes                string          `db:"notes"`
	VendorTransactionID  sql.NullInt64   `db:"vendor_transaction_id"`
	PayrollTransactionID sql.NullInt64   `db:"payroll_transaction_id"`
}

// Income is a row of daily_income joined with its category name.
type Income struct {
	ID           int64           `db:"id"`
	Date         Date            `db:"date"`
	Amount       decimal.Decimal `db:"amount"`
	CategoryID   int64           `db:"category_id"`
	CategoryName string          `db:"category_name"`
	Description  string          `db:"description"`
	Notes        string          `db:"notes"`
}

type Capital struct {
	ID          int64           `db:"id"`
	Date        Date            `db:"date"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Notes       string          `db:"notes"`
}
