package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// VendorCommandSvc defines the vendor-side commands.
type VendorCommandSvc interface {
	CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*domain.VendorResult, error)
	UpdateVendor(ctx context.Context, vendorID int64, req dto.UpdateVendorRequest) (*domain.VendorResult, error)

	// DeleteVendor removes the vendor together with every transaction and
	// every mirror of those transactions.
	DeleteVendor(ctx context.Context, vendorID int64, expectedVersion int64) (*domain.Outcome, error)

	RecordVendorTransaction(ctx context.Context, req dto.RecordVendorTransactionRequest) (*domain.VendorTransactionResult, error)
	EditVendorTransaction(ctx context.Context, txnID int64, req dto.EditVendorTransactionRequest) (*domain.VendorTransactionResult, error)
	DeleteVendorTransaction(ctx context.Context, txnID int64, expectedVersion int64) (*domain.VendorTransactionResult, error)
}

// VendorQuerySvc defines the vendor-side read queries.
type VendorQuerySvc interface {
	GetVendor(ctx context.Context, vendorID int64) (*domain.VendorSummary, error)
	ListVendors(ctx context.Context) ([]domain.VendorSummary, error)
	GetVendorBalance(ctx context.Context, vendorID int64) (decimal.Decimal, error)

	// ListVendorTransactions returns rows ascending by (date, id) with the
	// running balance after each row. Nil bounds are open.
	ListVendorTransactions(ctx context.Context, vendorID int64, from, to *time.Time) ([]domain.VendorLedgerRow, error)

	// TotalAccountsPayable sums the positive vendor balances.
	TotalAccountsPayable(ctx context.Context) (decimal.Decimal, error)
}

// ChequeSvc defines cheque issuance, settlement and listing.
type ChequeSvc interface {
	IssueCheque(ctx context.Context, req dto.IssueChequeRequest) (*domain.ChequeResult, error)

	// MarkChequePaid settles a cheque. Repeating it is a no-op that returns
	// the original settlement.
	MarkChequePaid(ctx context.Context, chequeID int64) (*domain.ChequePaymentResult, error)

	DeleteCheque(ctx context.Context, chequeID int64) (*domain.ChequeResult, error)
	GetCheque(ctx context.Context, chequeID int64) (*domain.Cheque, error)
	ListCheques(ctx context.Context, params dto.ListChequesParams) (*domain.ChequeListing, error)
}

// PayrollSvc defines employee and payroll ledger operations.
type PayrollSvc interface {
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*domain.EmployeeResult, error)
	GetEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID int64, expectedVersion int64) (*domain.Outcome, error)

	RecordPayrollTransaction(ctx context.Context, req dto.RecordPayrollTransactionRequest) (*domain.PayrollTransactionResult, error)
	EditPayrollTransaction(ctx context.Context, txnID int64, req dto.EditPayrollTransactionRequest) (*domain.PayrollTransactionResult, error)
	DeletePayrollTransaction(ctx context.Context, txnID int64, expectedVersion int64) (*domain.PayrollTransactionResult, error)

	GetPayrollBalance(ctx context.Context, employeeID int64) (decimal.Decimal, error)

	// ListPayrollTransactions returns rows ascending by (date, id) with
	// their running balance snapshots.
	ListPayrollTransactions(ctx context.Context, employeeID int64) ([]domain.PayrollTransaction, error)
}

// CashflowSvc defines the general income/expense/capital ledger.
type CashflowSvc interface {
	RecordIncome(ctx context.Context, req dto.IncomeRequest) (*domain.CashflowResult, error)
	EditIncome(ctx context.Context, incomeID int64, req dto.IncomeRequest) (*domain.CashflowResult, error)
	DeleteIncome(ctx context.Context, incomeID int64) (*domain.CashflowResult, error)
	ListIncome(ctx context.Context, from, to *time.Time) ([]domain.IncomeEntry, error)

	// RecordExpense, EditExpense and DeleteExpense only handle manual rows;
	// mirror rows belong to their source record.
	RecordExpense(ctx context.Context, req dto.ExpenseRequest) (*domain.CashflowResult, error)
	EditExpense(ctx context.Context, expenseID int64, req dto.ExpenseRequest) (*domain.CashflowResult, error)
	DeleteExpense(ctx context.Context, expenseID int64) (*domain.CashflowResult, error)
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*domain.ExpensePage, error)

	RecordCapital(ctx context.Context, req dto.CapitalRequest) (*domain.CashflowResult, error)
	ListCapital(ctx context.Context, from, to *time.Time) ([]domain.CapitalEntry, error)

	EnsureCategory(ctx context.Context, kind domain.CategoryKind, req dto.CreateCategoryRequest) (*domain.CategoryResult, error)
	ListCategories(ctx context.Context, kind domain.CategoryKind) ([]domain.Category, error)
	RenameCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64, req dto.RenameCategoryRequest) (*domain.CategoryResult, error)
	DeleteCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64) (*domain.CategoryResult, error)
}

// LedgerEngine is the whole command and query surface consumed by the API
// and CLI.
type LedgerEngine interface {
	VendorCommandSvc
	VendorQuerySvc
	ChequeSvc
	PayrollSvc
	CashflowSvc
}
