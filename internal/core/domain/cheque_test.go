package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheque_DaysRemaining(t *testing.T) {
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	cheque := domain.Cheque{DueDate: &due}

	days, ok := cheque.DaysRemaining(time.Date(2024, 3, 10, 17, 45, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	days, ok = cheque.DaysRemaining(time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, -5, days)

	_, ok = domain.Cheque{}.DaysRemaining(due)
	assert.False(t, ok)
}

func TestIsReservedIncomeCategory(t *testing.T) {
	for _, name := range []string{"Sales", "sales", " SERVICES ", "Services"} {
		assert.True(t, domain.IsReservedIncomeCategory(name), name)
	}
	for _, name := range []string{"Rent", "Sales Tax", ""} {
		assert.False(t, domain.IsReservedIncomeCategory(name), name)
	}
}

func TestIsReservedCategory(t *testing.T) {
	assert.True(t, domain.IsReservedCategory(domain.ExpenseCategory, "vendors"))
	assert.True(t, domain.IsReservedCategory(domain.ExpenseCategory, "Salary"))
	assert.True(t, domain.IsReservedCategory(domain.IncomeCategory, "Sales"))
	assert.False(t, domain.IsReservedCategory(domain.IncomeCategory, "Salary"))
	assert.False(t, domain.IsReservedCategory(domain.ExpenseCategory, "Rent"))
}

func TestPayrollTransactionType_Mirrors(t *testing.T) {
	assert.True(t, domain.PayrollSalary.MirrorsToExpense())
	assert.True(t, domain.PayrollAdvance.MirrorsToExpense())
	assert.False(t, domain.PayrollDeduction.MirrorsToExpense())
	assert.Equal(t, "Payroll - Advance", domain.PayrollAdvance.MirrorNotes())
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-05-01")
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-01", domain.FormatDate(d))

	_, err = domain.ParseDate("01/05/2024")
	assert.Error(t, err)
}
