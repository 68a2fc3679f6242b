package mapping

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

func ToDomainCategory(m models.Category, kind domain.CategoryKind) domain.Category {
	return domain.Category{ID: m.ID, Name: m.Name, Kind: kind}
}

func ToDomainExpense(m models.Expense) domain.ExpenseEntry {
	return domain.ExpenseEntry{
		ID:                   m.ID,
		Date:                 m.Date.Time,
		Amount:               m.Amount,
		CategoryID:           m.CategoryID,
		CategoryName:         m.CategoryName,
		Description:          m.Description,
		Notes:                m.Notes,
		VendorTransactionID:  nullInt64Ptr(m.VendorTransactionID),
		PayrollTransactionID: nullInt64Ptr(m.PayrollTransactionID),
	}
}

func ToDomainIncome(m models.Income) domain.IncomeEntry {
	return domain.IncomeEntry{
		ID:           m.ID,
		Date:         m.Date.Time,
		Amount:       m.Amount,
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		Description:  m.Description,
		Notes:        m.Notes,
	}
}

func ToDomainCapital(m models.Capital) domain.CapitalEntry {
	return domain.CapitalEntry{
		ID:          m.ID,
		Date:        m.Date.Time,
		Amount:      m.Amount,
		Category:    m.Category,
		Description: m.Description,
		Notes:       m.Notes,
	}
}
