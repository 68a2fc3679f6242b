package dto

import "github.com/shopspring/decimal"

// IssueChequeRequest issues a standalone cheque not tied to a purchase.
type IssueChequeRequest struct {
	IssueDate string          `json:"issueDate" validate:"required,datetime=2006-01-02"`
	PayeeName string          `json:"payeeName" validate:"required,max=200"`
	BankName  string          `json:"bankName" validate:"max=200"`
	DueDate   string          `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Amount    decimal.Decimal `json:"amount"`
}

// ListChequesParams filters the cheque register by status.
type ListChequesParams struct {
	Status string `form:"status" validate:"omitempty,oneof=issued paid"`
}
