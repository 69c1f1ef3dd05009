package repositories

import (
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user data access
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// TransactionRepositoryInterface defines the contract for transaction data access.
// Every lookup is scoped by user ID; a record owned by another user is
// indistinguishable from a missing one.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByIDAndUser(id, userID uuid.UUID) (*models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id, userID uuid.UUID) error
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)

	// Aggregations. Date ranges are inclusive on both ends.
	SumByType(userID uuid.UUID, from, to *time.Time) ([]models.TypeTotal, error)
	SumByCategory(userID uuid.UUID, transactionType string, from, to time.Time) ([]models.CategoryTotal, error)
	GetByDateRange(userID uuid.UUID, from, to time.Time) ([]models.Transaction, error)
	SumAmount(userID uuid.UUID, transactionType, category string, from, to time.Time) (decimal.Decimal, error)
}

// BudgetRepositoryInterface defines the contract for budget data access
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByIDAndUser(id, userID uuid.UUID) (*models.Budget, error)
	GetByKey(userID uuid.UUID, category, month string) (*models.Budget, error)
	GetByUser(userID uuid.UUID) ([]models.Budget, error)
	GetByUserAndMonth(userID uuid.UUID, month string) ([]models.Budget, error)
	Update(budget *models.Budget) error
	UpdateSpent(id uuid.UUID, spent decimal.Decimal) error
	ApplySpentDelta(userID uuid.UUID, category, month string, delta decimal.Decimal) (bool, error)
	Delete(id, userID uuid.UUID) error
}
