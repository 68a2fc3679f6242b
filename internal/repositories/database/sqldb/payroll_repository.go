package sqldb

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const employeeColumns = "id, name, designation, salary, joining_date, loan_balance, version"

type employeeRepository struct {
	BaseRepository
}

func newEmployeeRepository(base BaseRepository) *employeeRepository {
	return &employeeRepository{BaseRepository: base}
}

var _ portsrepo.EmployeeRepository = (*employeeRepository)(nil)

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var m models.Employee
	err := row.Scan(&m.ID, &m.Name, &m.Designation, &m.Salary, &m.JoiningDate, &m.LoanBalance, &m.Version)
	if err != nil {
		return domain.Employee{}, err
	}
	return mapping.ToDomainEmployee(m), nil
}

func (r *employeeRepository) CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	row := r.queryRow(ctx,
		`INSERT INTO employees (name, designation, salary, joining_date, loan_balance)
		 VALUES (?, ?, ?, ?, ?) RETURNING id, version`,
		employee.Name, employee.Designation, employee.Salary, r.dialect.nullDateArg(employee.JoiningDate), employee.LoanBalance)
	if err := row.Scan(&employee.ID, &employee.Version); err != nil {
		return nil, r.storageErr("failed to create employee", err)
	}
	return &employee, nil
}

func (r *employeeRepository) FindEmployeeByID(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	e, err := scanEmployee(r.queryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = ?", employeeID))
	if err != nil {
		return nil, r.rowErr("failed to find employee", err, apperrors.NotFoundf("employee %d", employeeID))
	}
	return &e, nil
}

func (r *employeeRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY name, id")
	if err != nil {
		return nil, r.storageErr("failed to list employees", err)
	}
	employees, err := scanAll(rows, scanEmployee)
	if err != nil {
		return nil, r.storageErr("failed to scan employees", err)
	}
	return employees, nil
}

func (r *employeeRepository) UpdateEmployeeLoanBalance(ctx context.Context, employeeID int64, balance decimal.Decimal) error {
	return r.execOne(ctx, "failed to update loan balance", apperrors.NotFoundf("employee %d", employeeID),
		"UPDATE employees SET loan_balance = ? WHERE id = ?", balance, employeeID)
}

func (r *employeeRepository) BumpEmployeeVersion(ctx context.Context, employeeID int64, expectedVersion int64) (int64, error) {
	return bumpVersion(ctx, &r.BaseRepository, "employees", "employee", employeeID, expectedVersion)
}

func (r *employeeRepository) DeleteEmployee(ctx context.Context, employeeID int64) error {
	return r.execOne(ctx, "failed to delete employee", apperrors.NotFoundf("employee %d", employeeID),
		"DELETE FROM employees WHERE id = ?", employeeID)
}

const payrollColumns = "id, employee_id, date, type, amount, debit, credit, balance, notes"

type payrollRepository struct {
	BaseRepository
}

func newPayrollRepository(base BaseRepository) *payrollRepository {
	return &payrollRepository{BaseRepository: base}
}

var _ portsrepo.PayrollRepository = (*payrollRepository)(nil)

func scanPayrollTransaction(row rowScanner) (domain.PayrollTransaction, error) {
	var m models.PayrollTransaction
	err := row.Scan(&m.ID, &m.EmployeeID, &m.Date, &m.Type, &m.Amount, &m.Debit, &m.Credit, &m.Balance, &m.Notes)
	if err != nil {
		return domain.PayrollTransaction{}, err
	}
	return mapping.ToDomainPayrollTransaction(m), nil
}

func (r *payrollRepository) CreatePayrollTransaction(ctx context.Context, txn domain.PayrollTransaction) (*domain.PayrollTransaction, error) {
	id, err := r.insertID(ctx, "failed to create payroll transaction",
		`INSERT INTO employee_payroll (employee_id, date, type, amount, debit, credit, balance, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		txn.EmployeeID, r.dialect.dateArg(txn.Date), string(txn.Type), txn.Amount, txn.Debit, txn.Credit,
		txn.RunningBalance, txn.Notes)
	if err != nil {
		return nil, err
	}
	txn.ID = id
	return &txn, nil
}

func (r *payrollRepository) FindPayrollTransactionByID(ctx context.Context, txnID int64) (*domain.PayrollTransaction, error) {
	txn, err := scanPayrollTransaction(r.queryRow(ctx, "SELECT "+payrollColumns+" FROM employee_payroll WHERE id = ?", txnID))
	if err != nil {
		return nil, r.rowErr("failed to find payroll transaction", err, apperrors.NotFoundf("payroll transaction %d", txnID))
	}
	return &txn, nil
}

func (r *payrollRepository) ListPayrollTransactions(ctx context.Context, employeeID int64) ([]domain.PayrollTransaction, error) {
	rows, err := r.query(ctx,
		"SELECT "+payrollColumns+" FROM employee_payroll WHERE employee_id = ? ORDER BY date, id", employeeID)
	if err != nil {
		return nil, r.storageErr("failed to list payroll transactions", err)
	}
	txns, err := scanAll(rows, scanPayrollTransaction)
	if err != nil {
		return nil, r.storageErr("failed to scan payroll transactions", err)
	}
	return txns, nil
}

func (r *payrollRepository) UpdatePayrollTransaction(ctx context.Context, txn domain.PayrollTransaction) error {
	return r.execOne(ctx, "failed to update payroll transaction", apperrors.NotFoundf("payroll transaction %d", txn.ID),
		`UPDATE employee_payroll
		 SET date = ?, type = ?, amount = ?, debit = ?, credit = ?, balance = ?, notes = ?
		 WHERE id = ?`,
		r.dialect.dateArg(txn.Date), string(txn.Type), txn.Amount, txn.Debit, txn.Credit, txn.RunningBalance, txn.Notes, txn.ID)
}

func (r *payrollRepository) UpdatePayrollRunningBalance(ctx context.Context, txnID int64, balance decimal.Decimal) error {
	return r.execOne(ctx, "failed to update payroll running balance", apperrors.NotFoundf("payroll transaction %d", txnID),
		"UPDATE employee_payroll SET balance = ? WHERE id = ?", balance, txnID)
}

func (r *payrollRepository) DeletePayrollTransaction(ctx context.Context, txnID int64) error {
	return r.execOne(ctx, "failed to delete payroll transaction", apperrors.NotFoundf("payroll transaction %d", txnID),
		"DELETE FROM employee_payroll WHERE id = ?", txnID)
}
