package repositories

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")

	// ErrDuplicateBudgetKey is returned when the store's unique index on
	// (user_id, category, month) rejects a write. The store is the authority
	// for this invariant; service-level pre-checks only make the common case
	// fail earlier.
	ErrDuplicateBudgetKey = errors.New("budget already exists for this category and month")
)

const pqUniqueViolation = "23505"

// isUniqueViolation recognizes a unique-constraint rejection from either
// backend (Postgres in production, sqlite in tests).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return true
	}

	return strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
