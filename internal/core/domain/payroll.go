package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollTransactionType is the kind of row on an employee's payroll ledger.
type PayrollTransactionType string

const (
	PayrollSalary    PayrollTransactionType = "salary"
	PayrollAdvance   PayrollTransactionType = "advance"
	PayrollDeduction PayrollTransactionType = "deduction"
)

// Valid reports whether t is a known payroll transaction type.
func (t PayrollTransactionType) Valid() bool {
	switch t {
	case PayrollSalary, PayrollAdvance, PayrollDeduction:
		return true
	}
	return false
}

// MirrorsToExpense reports whether rows of this type leave the business as cash.
func (t PayrollTransactionType) MirrorsToExpense() bool {
	return t == PayrollSalary || t == PayrollAdvance
}

// MirrorNotes is the cashflow note written for a payroll mirror.
func (t PayrollTransactionType) MirrorNotes() string {
	switch t {
	case PayrollSalary:
		return "Payroll - Salary"
	case PayrollAdvance:
		return "Payroll - Advance"
	}
	return "Payroll - Deduction"
}

// Employee owns a payroll account. LoanBalance is a cache of the derived
// balance, rewritten whenever the employee's payroll rows change.
type Employee struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Designation string          `json:"designation"`
	Salary      decimal.Decimal `json:"salary"`
	JoiningDate *time.Time      `json:"joiningDate,omitempty"`
	LoanBalance decimal.Decimal `json:"loanBalance"`
	Version     int64           `json:"version"`
}

type PayrollTransaction struct {
	ID             int64                  `json:"id"`
	EmployeeID     int64                  `json:"employeeID"`
	Date           time.Time              `json:"date"`
	Type           PayrollTransactionType `json:"type"`
	Amount         decimal.Decimal        `json:"amount"`
	Debit          decimal.Decimal        `json:"debit"`
	Credit         decimal.Decimal        `json:"credit"`
	RunningBalance decimal.Decimal        `json:"runningBalance"`
	Notes          string                 `json:"notes"`
}
