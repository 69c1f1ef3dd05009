package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByIDAndUser retrieves a transaction by ID, scoped to its owner
func (r *transactionRepository) GetByIDAndUser(id, userID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// Update persists all fields of an existing transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// Delete removes a transaction, scoped to its owner
func (r *transactionRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GetWithFilters retrieves a page of transactions sorted by date descending,
// along with the total count matching the filters
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{}).
		Where("user_id = ?", filters.UserID)

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered transactions: %w", err)
	}

	if err := query.Offset(filters.Offset).Limit(filters.Limit).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, total, nil
}

// SumByType sums transaction amounts grouped by type. A nil bound leaves
// that side of the range open; present bounds are inclusive.
func (r *transactionRepository) SumByType(userID uuid.UUID, from, to *time.Time) ([]models.TypeTotal, error) {
	var totals []models.TypeTotal

	query := r.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("user_id = ?", userID)

	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	if err := query.Group("type").Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to sum transactions by type: %w", err)
	}

	return totals, nil
}

// SumByCategory sums transaction amounts of one type grouped by category,
// ordered by total descending. Categories without transactions in range do
// not appear.
func (r *transactionRepository) SumByCategory(userID uuid.UUID, transactionType string, from, to time.Time) ([]models.CategoryTotal, error) {
	var totals []models.CategoryTotal

	if err := r.db.Model(&models.Transaction{}).
		Select("category, SUM(amount) as amount").
		Where("user_id = ? AND type = ? AND date BETWEEN ? AND ?", userID, transactionType, from, to).
		Group("category").
		Order("amount DESC").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}

	return totals, nil
}

// GetByDateRange retrieves all transactions within an inclusive date range
func (r *transactionRepository) GetByDateRange(userID uuid.UUID, from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

// SumAmount returns the summed amount for one user/type/category over an
// inclusive date range. Zero when nothing matches.
func (r *transactionRepository) SumAmount(userID uuid.UUID, transactionType, category string, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND type = ? AND category = ? AND date BETWEEN ? AND ?",
			userID, transactionType, category, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transaction amounts: %w", err)
	}

	return result.Total, nil
}
