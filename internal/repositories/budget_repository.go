package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// budgetRepository implements BudgetRepositoryInterface
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget. A unique-index rejection on
// (user_id, category, month) surfaces as ErrDuplicateBudgetKey.
func (r *budgetRepository) Create(budget *models.Budget) error {
	if err := r.db.Create(budget).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBudgetKey
		}
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// GetByIDAndUser retrieves a budget by ID, scoped to its owner
func (r *budgetRepository) GetByIDAndUser(id, userID uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// GetByKey retrieves the budget for one (user, category, month) key
func (r *budgetRepository) GetByKey(userID uuid.UUID, category, month string) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("user_id = ? AND category = ? AND month = ?", userID, category, month).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget by key: %w", err)
	}
	return &budget, nil
}

// GetByUser retrieves all budgets for a user, newest month first
func (r *budgetRepository) GetByUser(userID uuid.UUID) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Where("user_id = ?", userID).
		Order("month DESC, category ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	return budgets, nil
}

// GetByUserAndMonth retrieves all budgets for a user in one month
func (r *budgetRepository) GetByUserAndMonth(userID uuid.UUID, month string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Where("user_id = ? AND month = ?", userID, month).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets for month: %w", err)
	}
	return budgets, nil
}

// Update persists all fields of an existing budget. Moving a budget onto an
// occupied (user_id, category, month) key surfaces as ErrDuplicateBudgetKey.
func (r *budgetRepository) Update(budget *models.Budget) error {
	if err := r.db.Save(budget).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBudgetKey
		}
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

// UpdateSpent writes a freshly recomputed spent value for one budget
func (r *budgetRepository) UpdateSpent(id uuid.UUID, spent decimal.Decimal) error {
	result := r.db.Model(&models.Budget{}).
		Where("id = ?", id).
		UpdateColumn("spent", spent)

	if result.Error != nil {
		return fmt.Errorf("failed to update budget spent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

// ApplySpentDelta atomically adds delta to the spent cache of the budget at
// (user, category, month). The increment is a single UPDATE statement, so
// concurrent deltas on the same key commute without a read-modify-write
// window. Returns false (and no error) when no budget exists for the key.
func (r *budgetRepository) ApplySpentDelta(userID uuid.UUID, category, month string, delta decimal.Decimal) (bool, error) {
	result := r.db.Model(&models.Budget{}).
		Where("user_id = ? AND category = ? AND month = ?", userID, category, month).
		UpdateColumn("spent", gorm.Expr("spent + ?", delta))

	if result.Error != nil {
		return false, fmt.Errorf("failed to apply spent delta: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// Delete removes a budget, scoped to its owner. Transactions are untouched.
func (r *budgetRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
