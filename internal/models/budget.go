package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidMonthFormat = errors.New("month must be in YYYY-MM format")

	monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// Budget is a spending limit for one category in one calendar month.
// At most one budget exists per (user, category, month); the unique index is
// the authority, the service-level duplicate check is only a fast path.
//
// Spent is a denormalized cache of the expense transaction total for the same
// key. It is maintained incrementally by the reconciler and recomputed from
// transactions whenever budgets are read.
type Budget struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_month" json:"user_id"`
	Category  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_budgets_user_category_month" json:"category"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Month     string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_budgets_user_category_month" json:"month"`
	Spent     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"spent"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	// Spent delta updates go through UpdateColumn and bypass this hook; a
	// map-based Updates call carries no model state worth validating.
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	b.UpdatedAt = time.Now()
	return b.Validate()
}

// Validate validates the budget fields
func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidCategory(b.Category) {
		return ErrInvalidCategory
	}

	if b.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if !IsValidMonth(b.Month) {
		return ErrInvalidMonthFormat
	}

	return nil
}

// Remaining returns the budget limit minus the spent amount
func (b *Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// IsOverBudget returns true when spending exceeds the limit
func (b *Budget) IsOverBudget() bool {
	return b.Spent.GreaterThan(b.Amount)
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}

// IsValidMonth checks that a month string matches YYYY-MM
func IsValidMonth(month string) bool {
	return monthRegex.MatchString(month)
}
