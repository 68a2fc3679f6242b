package mapping

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

// ToDomainEmployee converts an employees row to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		ID:          m.ID,
		Name:        m.Name,
		Designation: m.Designation,
		Salary:      m.Salary,
		JoiningDate: m.JoiningDate.Ptr(),
		LoanBalance: m.LoanBalance,
		Version:     m.Version,
	}
}

// ToDomainPayrollTransaction converts an employee_payroll row
func ToDomainPayrollTransaction(m models.PayrollTransaction) domain.PayrollTransaction {
	return domain.PayrollTransaction{
		ID:             m.ID,
		EmployeeID:     m.EmployeeID,
		Date:           m.Date.Time,
		Type:           domain.PayrollTransactionType(m.Type),
		Amount:         m.Amount,
		Debit:          m.Debit,
		Credit:         m.Credit,
		RunningBalance: m.Balance,
		Notes:          m.Notes,
	}
}
