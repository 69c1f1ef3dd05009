package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction Request DTOs

// CreateTransactionRequest contains the fields for recording a transaction.
// Date is optional and defaults to the current time.
type CreateTransactionRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required,tx_amount"`
	Type     string          `json:"type" validate:"required,tx_type"`
	Category string          `json:"category" validate:"required,tx_category"`
	Note     string          `json:"note" validate:"max=500"`
	Date     *time.Time      `json:"date"`
}

// UpdateTransactionRequest carries a full replacement of a transaction's
// mutable fields, mirroring the create shape.
type UpdateTransactionRequest struct {
	Amount   decimal.Decimal `json:"amount" validate:"required,tx_amount"`
	Type     string          `json:"type" validate:"required,tx_type"`
	Category string          `json:"category" validate:"required,tx_category"`
	Note     string          `json:"note" validate:"max=500"`
	Date     *time.Time      `json:"date"`
}

// ListTransactionsQuery contains filtering and pagination options for
// transaction listings
type ListTransactionsQuery struct {
	Type     string `query:"type"`
	Category string `query:"category"`
	DateFrom string `query:"dateFrom"`
	DateTo   string `query:"dateTo"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

// Transaction Response DTOs

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// TransactionStatsResponse summarizes a user's transactions over a range
type TransactionStatsResponse struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int64           `json:"transactionCount"`
}
