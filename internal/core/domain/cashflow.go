package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Reserved category names.
const (
	CategoryVendors  = "Vendors"
	CategorySalary   = "Salary"
	CategorySales    = "Sales"
	CategoryServices = "Services"

	CapitalCategory = "Additional Capital"
)

// CategoryKind distinguishes the expense and income category tables.
type CategoryKind string

const (
	ExpenseCategory CategoryKind = "expense"
	IncomeCategory  CategoryKind = "income"
)

type Category struct {
	ID   int64        `json:"id"`
	Name string       `json:"name"`
	Kind CategoryKind `json:"kind"`
}

// ExpenseEntry is a row of the general cashflow expense ledger. Mirror rows
// carry the id of the record they were generated from.
type ExpenseEntry struct {
	ID                   int64           `json:"id"`
	Date                 time.Time       `json:"date"`
	Amount               decimal.Decimal `json:"amount"`
	CategoryID           int64           `json:"categoryID"`
	CategoryName         string          `json:"categoryName,omitempty"`
	Description          string          `json:"description"`
	Notes                string          `json:"notes"`
	VendorTransactionID  *int64          `json:"vendorTransactionID,omitempty"`
	PayrollTransactionID *int64          `json:"payrollTransactionID,omitempty"`
}

// IsMirror reports whether the entry was generated from another ledger.
func (e ExpenseEntry) IsMirror() bool {
	return e.VendorTransactionID != nil || e.PayrollTransactionID != nil
}

type IncomeEntry struct {
	ID           int64           `json:"id"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   int64           `json:"categoryID"`
	CategoryName string          `json:"categoryName,omitempty"`
	Description  string          `json:"description"`
	Notes        string          `json:"notes"`
}

type CapitalEntry struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
}

// IsReservedIncomeCategory reports whether at most one income row per day
// is allowed for the named category.
func IsReservedIncomeCategory(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sales", "services":
		return true
	}
	return false
}

// IsReservedCategory reports whether the engine writes to the named
// category on its own. Reserved categories cannot be renamed or deleted.
func IsReservedCategory(kind CategoryKind, name string) bool {
	name = strings.TrimSpace(name)
	switch kind {
	case ExpenseCategory:
		return strings.EqualFold(name, CategoryVendors) || strings.EqualFold(name, CategorySalary)
	case IncomeCategory:
		return IsReservedIncomeCategory(name)
	}
	return false
}

// CategoryUsage counts the entry rows filed under a category. Mirrors is
// the subset generated from vendor or payroll rows.
type CategoryUsage struct {
	Entries int64
	Mirrors int64
}
