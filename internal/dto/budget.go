package dto

import "github.com/shopspring/decimal"

// Budget Request DTOs

// CreateBudgetRequest contains the fields for creating a monthly budget
type CreateBudgetRequest struct {
	Category string          `json:"category" validate:"required,tx_category"`
	Amount   decimal.Decimal `json:"amount" validate:"required,tx_amount"`
	Month    string          `json:"month" validate:"required,budget_month"`
}

// UpdateBudgetRequest carries a full replacement of a budget's mutable
// fields. Changing category or month moves the budget to a new key.
type UpdateBudgetRequest struct {
	Category string          `json:"category" validate:"required,tx_category"`
	Amount   decimal.Decimal `json:"amount" validate:"required,tx_amount"`
	Month    string          `json:"month" validate:"required,budget_month"`
}
