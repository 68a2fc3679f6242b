package services

import (
	"context"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const salaryDeductionNote = "Loan deduction from salary"

// CreateEmployee opens a payroll account.
func (e *ReconciliationEngine) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest) (*domain.EmployeeResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}
	if req.Salary.IsNegative() {
		return nil, apperrors.Validationf("salary must not be negative")
	}
	joiningDate, err := parseOptionalDate("joiningDate", req.JoiningDate)
	if err != nil {
		return nil, err
	}

	result := &domain.EmployeeResult{}
	err = e.run(ctx, "CreateEmployee", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		employee, err := repos.Employees.CreateEmployee(ctx, domain.Employee{
			Name:        req.Name,
			Designation: strings.TrimSpace(req.Designation),
			Salary:      req.Salary,
			JoiningDate: joiningDate,
			LoanBalance: decimal.Zero,
		})
		if err != nil {
			return err
		}
		result.Employee = employee
		result.Record(domain.EventCreated, domain.EntityEmployee, employee.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteEmployee removes the employee with every payroll row and its mirror.
func (e *ReconciliationEngine) DeleteEmployee(ctx context.Context, employeeID int64, expectedVersion int64) (*domain.Outcome, error) {
	outcome := &domain.Outcome{}
	err := e.run(ctx, "DeleteEmployee", outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Employees.BumpEmployeeVersion(ctx, employeeID, expectedVersion); err != nil {
			return err
		}
		txns, err := repos.Payroll.ListPayrollTransactions(ctx, employeeID)
		if err != nil {
			return err
		}
		for i := range txns {
			if err := e.mirrors.removePayrollTransaction(ctx, repos, &txns[i], outcome); err != nil {
				return err
			}
		}
		if err := repos.Employees.DeleteEmployee(ctx, employeeID); err != nil {
			return err
		}
		outcome.Record(domain.EventDeleted, domain.EntityEmployee, employeeID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (e *ReconciliationEngine) parsePayrollTransaction(fields dto.PayrollTransactionFields) (*domain.PayrollTransaction, error) {
	if err := e.validateRequest(fields); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", fields.Amount); err != nil {
		return nil, err
	}
	date, err := parseDate("date", fields.Date)
	if err != nil {
		return nil, err
	}
	typ := domain.PayrollTransactionType(fields.Type)
	debit, credit, err := accounting.PayrollDebitCredit(typ, fields.Amount)
	if err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	return &domain.PayrollTransaction{
		Date:   date,
		Type:   typ,
		Amount: fields.Amount,
		Debit:  debit,
		Credit: credit,
		Notes:  strings.TrimSpace(fields.Notes),
	}, nil
}

// RecordPayrollTransaction writes a salary, advance or deduction. A salary
// may carry a loan deduction, written as its own deduction row.
func (e *ReconciliationEngine) RecordPayrollTransaction(ctx context.Context, req dto.RecordPayrollTransactionRequest) (*domain.PayrollTransactionResult, error) {
	if req.EmployeeID <= 0 {
		return nil, apperrors.Validationf("employeeID is required")
	}
	txn, err := e.parsePayrollTransaction(req.PayrollTransactionFields)
	if err != nil {
		return nil, err
	}
	if req.Deduction.IsNegative() {
		return nil, apperrors.Validationf("deduction must not be negative")
	}
	if req.Deduction.IsPositive() && txn.Type != domain.PayrollSalary {
		return nil, apperrors.Validationf("a deduction can only accompany a salary")
	}

	result := &domain.PayrollTransactionResult{}
	err = e.run(ctx, "RecordPayrollTransaction", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Employees.BumpEmployeeVersion(ctx, req.EmployeeID, req.ExpectedVersion); err != nil {
			return err
		}
		employee, err := repos.Employees.FindEmployeeByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		txn.EmployeeID = employee.ID
		created, err := repos.Payroll.CreatePayrollTransaction(ctx, *txn)
		if err != nil {
			return err
		}
		result.Record(domain.EventCreated, domain.EntityPayrollTransaction, created.ID)

		var deductionID int64
		if req.Deduction.IsPositive() {
			deduction, err := repos.Payroll.CreatePayrollTransaction(ctx, domain.PayrollTransaction{
				EmployeeID: employee.ID,
				Date:       created.Date,
				Type:       domain.PayrollDeduction,
				Amount:     req.Deduction,
				Credit:     req.Deduction,
				Notes:      salaryDeductionNote,
			})
			if err != nil {
				return err
			}
			deductionID = deduction.ID
			result.Record(domain.EventCreated, domain.EntityPayrollTransaction, deduction.ID)
		}

		expense, err := e.mirrors.syncPayrollExpense(ctx, repos, employee, created, false, &result.Outcome)
		if err != nil {
			return err
		}

		rows, balance, err := replayPayroll(ctx, repos, employee.ID)
		if err != nil {
			return err
		}
		result.Transaction = rows[created.ID]
		if deductionID != 0 {
			result.Deduction = rows[deductionID]
		}
		result.Expense = expense
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EditPayrollTransaction replaces a payroll row, re-threads the running
// balances and brings the Salary mirror in line.
func (e *ReconciliationEngine) EditPayrollTransaction(ctx context.Context, txnID int64, req dto.EditPayrollTransactionRequest) (*domain.PayrollTransactionResult, error) {
	txn, err := e.parsePayrollTransaction(req.PayrollTransactionFields)
	if err != nil {
		return nil, err
	}

	result := &domain.PayrollTransactionResult{}
	err = e.run(ctx, "EditPayrollTransaction", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		old, err := repos.Payroll.FindPayrollTransactionByID(ctx, txnID)
		if err != nil {
			return err
		}
		if _, err := repos.Employees.BumpEmployeeVersion(ctx, old.EmployeeID, req.ExpectedVersion); err != nil {
			return err
		}
		employee, err := repos.Employees.FindEmployeeByID(ctx, old.EmployeeID)
		if err != nil {
			return err
		}

		txn.ID = old.ID
		txn.EmployeeID = old.EmployeeID
		txn.RunningBalance = old.RunningBalance
		if err := repos.Payroll.UpdatePayrollTransaction(ctx, *txn); err != nil {
			return err
		}
		result.Record(domain.EventUpdated, domain.EntityPayrollTransaction, txn.ID)

		expense, err := e.mirrors.syncPayrollExpense(ctx, repos, employee, txn, old.Type.MirrorsToExpense(), &result.Outcome)
		if err != nil {
			return err
		}

		rows, balance, err := replayPayroll(ctx, repos, employee.ID)
		if err != nil {
			return err
		}
		result.Transaction = rows[txn.ID]
		result.Expense = expense
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeletePayrollTransaction removes a payroll row and its mirror.
func (e *ReconciliationEngine) DeletePayrollTransaction(ctx context.Context, txnID int64, expectedVersion int64) (*domain.PayrollTransactionResult, error) {
	result := &domain.PayrollTransactionResult{}
	err := e.run(ctx, "DeletePayrollTransaction", &result.Outcome, func(ctx context.Context, repos portsrepo.Repositories) error {
		txn, err := repos.Payroll.FindPayrollTransactionByID(ctx, txnID)
		if err != nil {
			return err
		}
		if _, err := repos.Employees.BumpEmployeeVersion(ctx, txn.EmployeeID, expectedVersion); err != nil {
			return err
		}
		if err := e.mirrors.removePayrollTransaction(ctx, repos, txn, &result.Outcome); err != nil {
			return err
		}
		_, balance, err := replayPayroll(ctx, repos, txn.EmployeeID)
		if err != nil {
			return err
		}
		result.Transaction = txn
		result.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// replayPayroll recomputes every running balance of the employee, rewrites
// the ones that changed and refreshes the cached loan balance.
func replayPayroll(ctx context.Context, repos portsrepo.Repositories, employeeID int64) (map[int64]*domain.PayrollTransaction, decimal.Decimal, error) {
	stored, err := repos.Payroll.ListPayrollTransactions(ctx, employeeID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	previous := make(map[int64]decimal.Decimal, len(stored))
	for _, txn := range stored {
		previous[txn.ID] = txn.RunningBalance
	}

	ledger, err := PayrollLedger(stored)
	if err != nil {
		return nil, decimal.Zero, err
	}
	rows := make(map[int64]*domain.PayrollTransaction, len(ledger))
	balance := decimal.Zero
	for i := range ledger {
		row := &ledger[i]
		if !previous[row.ID].Equal(row.RunningBalance) {
			if err := repos.Payroll.UpdatePayrollRunningBalance(ctx, row.ID, row.RunningBalance); err != nil {
				return nil, decimal.Zero, err
			}
		}
		rows[row.ID] = row
		balance = row.RunningBalance
	}

	if err := repos.Employees.UpdateEmployeeLoanBalance(ctx, employeeID, balance); err != nil {
		return nil, decimal.Zero, err
	}
	return rows, balance, nil
}

// GetEmployee returns an employee.
func (e *ReconciliationEngine) GetEmployee(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	return e.uow.Reader().Employees.FindEmployeeByID(ctx, employeeID)
}

// ListEmployees returns every employee.
func (e *ReconciliationEngine) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return e.uow.Reader().Employees.ListEmployees(ctx)
}

// GetPayrollBalance derives the employee's outstanding loan from the
// payroll rows rather than the cached column.
func (e *ReconciliationEngine) GetPayrollBalance(ctx context.Context, employeeID int64) (decimal.Decimal, error) {
	repos := e.uow.Reader()
	if _, err := repos.Employees.FindEmployeeByID(ctx, employeeID); err != nil {
		return decimal.Zero, err
	}
	txns, err := repos.Payroll.ListPayrollTransactions(ctx, employeeID)
	if err != nil {
		return decimal.Zero, err
	}
	return PayrollBalance(txns)
}

// ListPayrollTransactions returns the employee's payroll ledger.
func (e *ReconciliationEngine) ListPayrollTransactions(ctx context.Context, employeeID int64) ([]domain.PayrollTransaction, error) {
	repos := e.uow.Reader()
	if _, err := repos.Employees.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	txns, err := repos.Payroll.ListPayrollTransactions(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return PayrollLedger(txns)
}
