package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilters defines the filters for transaction list queries.
// Date bounds are inclusive on both ends.
type TransactionFilters struct {
	UserID   uuid.UUID
	Type     string
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
	Offset   int
	Limit    int
}

// TypeTotal is one row of a sum-by-type aggregation
type TypeTotal struct {
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// CategoryTotal is one row of a sum-by-category aggregation
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlyTotal is one row of a month/type trend aggregation
type MonthlyTotal struct {
	Month  string          `json:"month"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}
