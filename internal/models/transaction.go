package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCategory        = errors.New("invalid category")
	ErrNegativeAmount         = errors.New("amount must not be negative")
)

// Transaction represents a single income or expense entry belonging to one user.
// Expense transactions feed the spent cache of the budget keyed by
// (user, category, month of date).
type Transaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type      string          `gorm:"type:varchar(10);not null" json:"type"`
	Category  string          `gorm:"type:varchar(50);not null;index" json:"category"`
	Note      string          `gorm:"type:text" json:"note,omitempty"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()

	if t.Date.IsZero() {
		t.Date = now
	}

	// Set timestamps if not already set (for tests)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if !IsValidCategory(t.Category) {
		return ErrInvalidCategory
	}

	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	return nil
}

// IsExpense returns true if the transaction is an expense
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsIncome returns true if the transaction is income
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}
