package dto

import "github.com/shopspring/decimal"

// IncomeRequest records or replaces an income row. The category may be
// given by id or by name; a name is created when missing.
type IncomeRequest struct {
	Date         string          `json:"date" validate:"required,datetime=2006-01-02"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   int64           `json:"categoryID,omitempty" validate:"required_without=CategoryName,gte=0"`
	CategoryName string          `json:"categoryName,omitempty" validate:"required_without=CategoryID,max=100"`
	Description  string          `json:"description" validate:"max=500"`
	Notes        string          `json:"notes" validate:"max=500"`
}

// ExpenseRequest records a manual expense row.
type ExpenseRequest struct {
	Date         string          `json:"date" validate:"required,datetime=2006-01-02"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   int64           `json:"categoryID,omitempty" validate:"required_without=CategoryName,gte=0"`
	CategoryName string          `json:"categoryName,omitempty" validate:"required_without=CategoryID,max=100"`
	Description  string          `json:"description" validate:"max=500"`
	Notes        string          `json:"notes" validate:"max=500"`
}

type CapitalRequest struct {
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=500"`
	Notes       string          `json:"notes" validate:"max=500"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ListExpensesParams pages through the expense ledger in (date, id) order.
type ListExpensesParams struct {
	From      string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit" validate:"gte=0,lte=500"`
	NextToken string `form:"nextToken"`
}
