package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerEngine ---
type MockLedgerEngine struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.LedgerEngine = (*MockLedgerEngine)(nil)

func ptrOrNil[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func sliceOrNil[T any](args mock.Arguments) ([]T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func amountOf(args mock.Arguments) (decimal.Decimal, error) {
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerEngine) CreateVendor(ctx context.Context, req dto.CreateVendorRequest) (*domain.VendorResult, error) {
	return ptrOrNil[domain.VendorResult](m.Called(ctx, req))
}

func (m *MockLedgerEngine) UpdateVendor(ctx context.Context, vendorID int64, req dto.UpdateVendorRequest) (*domain.VendorResult, error) {
	return ptrOrNil[domain.VendorResult](m.Called(ctx, vendorID, req))
}

func (m *MockLedgerEngine) DeleteVendor(ctx context.Context, vendorID int64, expectedVersion int64) (*domain.Outcome, error) {
	return ptrOrNil[domain.Outcome](m.Called(ctx, vendorID, expectedVersion))
}

func (m *MockLedgerEngine) RecordVendorTransaction(ctx context.Context, req dto.RecordVendorTransactionRequest) (*domain.VendorTransactionResult, error) {
	return ptrOrNil[domain.VendorTransactionResult](m.Called(ctx, req))
}

func (m *MockLedgerEngine) EditVendorTransaction(ctx context.Context, txnID int64, req dto.EditVendorTransactionRequest) (*domain.VendorTransactionResult, error) {
	return ptrOrNil[domain.VendorTransactionResult](m.Called(ctx, txnID, req))
}

func (m *MockLedgerEngine) DeleteVendorTransaction(ctx context.Context, txnID int64, expectedVersion int64) (*domain.VendorTransactionResult, error) {
	return ptrOrNil[domain.VendorTransactionResult](m.Called(ctx, txnID, expectedVersion))
}

func (m *MockLedgerEngine) GetVendor(ctx context.Context, vendorID int64) (*domain.VendorSummary, error) {
	return ptrOrNil[domain.VendorSummary](m.Called(ctx, vendorID))
}

func (m *MockLedgerEngine) ListVendors(ctx context.Context) ([]domain.VendorSummary, error) {
	return sliceOrNil[domain.VendorSummary](m.Called(ctx))
}

func (m *MockLedgerEngine) GetVendorBalance(ctx context.Context, vendorID int64) (decimal.Decimal, error) {
	return amountOf(m.Called(ctx, vendorID))
}

func (m *MockLedgerEngine) ListVendorTransactions(ctx context.Context, vendorID int64, from, to *time.Time) ([]domain.VendorLedgerRow, error) {
	return sliceOrNil[domain.VendorLedgerRow](m.Called(ctx, vendorID, from, to))
}

func (m *MockLedgerEngine) TotalAccountsPayable(ctx context.Context) (decimal.Decimal, error) {
	return amountOf(m.Called(ctx))
}

func (m *MockLedgerEngine) IssueCheque(ctx context.Context, req dto.IssueChequeRequest) (*domain.ChequeResult, error) {
	return ptrOrNil[domain.ChequeResult](m.Called(ctx, req))
}

func (m *MockLedgerEngine) MarkChequePaid(ctx context.Context, chequeID int64) (*domain.ChequePaymentResult, error) {
	return ptrOrNil[domain.ChequePaymentResult](m.Called(ctx, chequeID))
}

func (m *MockLedgerEngine) DeleteCheque(ctx context.Context, chequeID int64) (*domain.ChequeResult, error) {
	return ptrOrNil[domain.ChequeResult](m.Called(ctx, chequeID))
}

func (m *MockLedgerEngine) GetCheque(ctx context.Context, chequeID int64) (*domain.Cheque, error) {
	return ptrOrNil[domain.Cheque](m.Called(ctx, chequeID))
}

func (m *MockLedgerEngine) ListCheques(ctx context.Context, params dto.ListChequesParams) (*domain.ChequeListing, error) {
	return ptrOrNil[domain.ChequeListing](m.Called(ctx, params))
}

func (m *MockLedgerEngine) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*domain.EmployeeResult, error) {
	return ptrOrNil[domain.EmployeeResult](m.Called(ctx, req))
}

func (m *MockLedgerEngine) GetEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	return ptrOrNil[domain.Employee](m.Called(ctx, employeeID))
}

func (m *MockLedgerEngine) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return sliceOrNil[domain.Employee](m.Called(ctx))
}

func (m *MockLedgerEngine) DeleteEmployee(ctx context.Context, employeeID int64, expectedVersion int64) (*domain.Outcome, error) {
	return ptrOrNil[domain.Outcome](m.Called(ctx, employeeID, expectedVersion))
}

func (m *MockLedgerEngine) RecordPayrollTransaction(ctx context.Context, req dto.RecordPayrollTransactionRequest) (*domain.PayrollTransactionResult, error) {
	return ptrOrNil[domain.PayrollTransactionResult](m.Called(ctx, req))
}

func (m *MockLedgerEngine) EditPayrollTransaction(ctx context.Context, txnID int64, req dto.EditPayrollTransactionRequest) (*domain.PayrollTransactionResult, error) {
	return ptrOrNil[domain.PayrollTransactionResult](m.Called(ctx, txnID, req))
}

func (m *MockLedgerEngine) DeletePayrollTransaction(ctx context.Context, txnID int64, expectedVersion int64) (*domain.PayrollTransactionResult, error) {
	return ptrOrNil[domain.PayrollTransactionResult](m.Called(ctx, txnID, expectedVersion))
}

func (m *MockLedgerEngine) GetPayrollBalance(ctx context.Context, employeeID int64) (decimal.Decimal, error) {
	return amountOf(m.Called(ctx, employeeID))
}

func (m *MockLedgerEngine) ListPayrollTransactions(ctx context.Context, employeeID int64) ([]domain.PayrollTransaction, error) {
	return sliceOrNil[domain.PayrollTransaction](m.Called(ctx, employeeID))
}

func (m *MockLedgerEngine) RecordIncome(ctx context.Context, req dto.IncomeRequest) (*domain.CashflowResult, error) {
	return ptrOrNil[domain.CashflowResult](m.Called(ctx, req))
}

func (m *MockLedgerEngine) EditIncome(ctx context.Context, incomeID int64, req dto.IncomeRequest) (*domain.CashflowResult, error) {
	return ptrOrNil[domain.CashflowResult](m.Called(ctx, incomeID, req))
}

func (m *MockLedgerEngine) DeleteIncome(ctx context.Context, incomeID int64) (*domain.CashflowResult, error) {
	return ptrOrNil[domain.CashflowResult](m.Called(ctx, incomeID))
}

func (m *MockLedgerEngine) ListIncome(ctx context.Context, from, to *time.Time) ([]domain.IncomeEntry, error) {
	return sliceOrNil[domain.IncomeEntry](m.Called(ctx, from, to))
}

func (m *MockLedgerEngine) RecordExpense(ctx context.Context, req dto.ExpenseRequest) (*domain.CashflowResult, error) {
	return ptrOrNil[domain.CashflowResult](m.Called(ctx, req))
}

func (m *MockLedgerEngine) EditExpense(ctx context.Context, expenseID int64, req dto.ExpenseRequest) (*domain.CashflowResult, error) {
	return ptrOrNil[domain.CashflowResult](m.Called(ctx, expenseID, req))
}

func (m *MockLedgerEngine) DeleteExpense(ctx context.Context, expenseID int64) (*domain.CashflowResult, error) {
	return ptrOrNil[domain.CashflowResult](m.Called(ctx, expenseID))
}

func (m *MockLedgerEngine) ListExpenses(ctx context.Context, params dto.ListExpensesParams) (*domain.ExpensePage, error) {
	return ptrOrNil[domain.ExpensePage](m.Called(ctx, params))
}

func (m *MockLedgerEngine) RecordCapital(ctx context.Context, req dto.CapitalRequest) (*domain.CashflowResult, error) {
	return ptrOrNil[domain.CashflowResult](m.Called(ctx, req))
}

func (m *MockLedgerEngine) ListCapital(ctx context.Context, from, to *time.Time) ([]domain.CapitalEntry, error) {
	return sliceOrNil[domain.CapitalEntry](m.Called(ctx, from, to))
}

func (m *MockLedgerEngine) EnsureCategory(ctx context.Context, kind domain.CategoryKind, req dto.CreateCategoryRequest) (*domain.CategoryResult, error) {
	return ptrOrNil[domain.CategoryResult](m.Called(ctx, kind, req))
}

func (m *MockLedgerEngine) ListCategories(ctx context.Context, kind domain.CategoryKind) ([]domain.Category, error) {
	return sliceOrNil[domain.Category](m.Called(ctx, kind))
}

func (m *MockLedgerEngine) RenameCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64, req dto.RenameCategoryRequest) (*domain.CategoryResult, error) {
	return ptrOrNil[domain.CategoryResult](m.Called(ctx, kind, categoryID, req))
}

func (m *MockLedgerEngine) DeleteCategory(ctx context.Context, kind domain.CategoryKind, categoryID int64) (*domain.CategoryResult, error) {
	return ptrOrNil[domain.CategoryResult](m.Called(ctx, kind, categoryID))
}
