package dto

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Designation string          `json:"designation" validate:"max=200"`
	Salary      decimal.Decimal `json:"salary"`
	JoiningDate string          `json:"joiningDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// RecordPayrollTransactionRequest records a salary, advance or deduction.
// Deduction is only accepted with a salary and recovers that much of the
// outstanding loan on the same date.
type RecordPayrollTransactionRequest struct {
	EmployeeID int64 `json:"employeeID" validate:"required,gt=0"`
	PayrollTransactionFields
	Deduction decimal.Decimal `json:"deduction"`
}

type EditPayrollTransactionRequest struct {
	PayrollTransactionFields
}

type PayrollTransactionFields struct {
	Type   string          `json:"type" validate:"required,oneof=salary advance deduction"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
	Notes  string          `json:"notes" validate:"max=500"`

	ExpectedVersion int64 `json:"expectedVersion,omitempty" validate:"gte=0"`
}
