package models

import "github.com/shopspring/decimal"

type Employee struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Designation string          `db:"designation"`
	Salary      decimal.Decimal `db:"salary"`
	JoiningDate NullDate        `db:"joining_date"`
	LoanBalance decimal.Decimal `db:"loan_balance"`
	Version     int64           `db:"version"`
}

// PayrollTransaction is a row of employee_payroll. Balance holds the
// running loan balance snapshot after the row.
type PayrollTransaction struct {
	ID         int64           `db:"id"`
	EmployeeID int64           `db:"employee_id"`
	Date       Date            `db:"date"`
	Type       string          `db:"type"`
	Amount     decimal.Decimal `db:"amount"`
	Debit      decimal.Decimal `db:"debit"`
	Credit     decimal.Decimal `db:"credit"`
	Balance    decimal.Decimal `db:"balance"`
	Notes      string          `db:"notes"`
}
