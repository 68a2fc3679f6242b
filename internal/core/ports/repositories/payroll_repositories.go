package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EmployeeRepository persists employees and their cached loan balance.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	FindEmployeeByID(ctx context.Context, employeeID int64) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	UpdateEmployeeLoanBalance(ctx context.Context, employeeID int64, balance decimal.Decimal) error

	// BumpEmployeeVersion behaves like VendorWriter.BumpVendorVersion.
	BumpEmployeeVersion(ctx context.Context, employeeID int64, expectedVersion int64) (int64, error)

	DeleteEmployee(ctx context.Context, employeeID int64) error
}

// PayrollRepository persists payroll ledger rows.
type PayrollRepository interface {
	CreatePayrollTransaction(ctx context.Context, txn domain.PayrollTransaction) (*domain.PayrollTransaction, error)
	FindPayrollTransactionByID(ctx context.Context, txnID int64) (*domain.PayrollTransaction, error)

	// ListPayrollTransactions returns the employee's rows ordered by (date, id).
	ListPayrollTransactions(ctx context.Context, employeeID int64) ([]domain.PayrollTransaction, error)

	UpdatePayrollTransaction(ctx context.Context, txn domain.PayrollTransaction) error
	UpdatePayrollRunningBalance(ctx context.Context, txnID int64, balance decimal.Decimal) error
	DeletePayrollTransaction(ctx context.Context, txnID int64) error
}
