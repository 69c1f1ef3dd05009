package services

import (
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TransactionService orchestrates transaction writes and keeps the budget
// reconciler informed of every change.
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	reconciler      BudgetReconcilerInterface
	aggregator      PeriodAggregatorInterface
	location        *time.Location
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	reconciler BudgetReconcilerInterface,
	aggregator PeriodAggregatorInterface,
	location *time.Location,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		reconciler:      reconciler,
		aggregator:      aggregator,
		location:        location,
		metrics:         metrics,
		logger:          logger,
	}
}

// Create validates and persists a transaction, then applies its budget
// delta. The transaction write is not rolled back if the delta fails; the
// spent cache self-heals on the next recompute.
func (s *TransactionService) Create(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	transaction := &models.Transaction{
		UserID:   userID,
		Amount:   req.Amount,
		Type:     req.Type,
		Category: req.Category,
		Note:     req.Note,
		Date:     s.resolveDate(req.Date),
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, err
	}
	s.metrics.RecordTransactionWrite("create", transaction.Type)

	if err := s.reconciler.OnTransactionCreated(transaction); err != nil {
		s.logger.Error("budget reconciliation failed after create",
			"transaction_id", transaction.ID, "error", err)
		return nil, err
	}

	return transaction, nil
}

// GetByID retrieves a transaction scoped to its owner
func (s *TransactionService) GetByID(id, userID uuid.UUID) (*models.Transaction, error) {
	return s.transactionRepo.GetByIDAndUser(id, userID)
}

// Update replaces a transaction's fields and moves its budget delta from
// the old key to the new one.
func (s *TransactionService) Update(id, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}

	before := *transaction

	transaction.Amount = req.Amount
	transaction.Type = req.Type
	transaction.Category = req.Category
	transaction.Note = req.Note
	if req.Date != nil {
		transaction.Date = *req.Date
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(transaction); err != nil {
		return nil, err
	}
	s.metrics.RecordTransactionWrite("update", transaction.Type)

	if err := s.reconciler.OnTransactionUpdated(&before, transaction); err != nil {
		s.logger.Error("budget reconciliation failed after update",
			"transaction_id", transaction.ID, "error", err)
		return nil, err
	}

	return transaction, nil
}

// Delete removes a transaction and withdraws its budget delta
func (s *TransactionService) Delete(id, userID uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.Delete(id, userID); err != nil {
		return err
	}
	s.metrics.RecordTransactionWrite("delete", transaction.Type)

	if err := s.reconciler.OnTransactionDeleted(transaction); err != nil {
		s.logger.Error("budget reconciliation failed after delete",
			"transaction_id", transaction.ID, "error", err)
		return err
	}

	return nil
}

// List returns a page of transactions sorted by date descending. Page
// numbers start at 1; pages is the total page count for the filter.
func (s *TransactionService) List(filters models.TransactionFilters, page, limit int) ([]models.Transaction, dto.PaginationInfo, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	filters.Offset = (page - 1) * limit
	filters.Limit = limit

	transactions, total, err := s.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return transactions, dto.PaginationInfo{
		Total: total,
		Page:  page,
		Pages: pages,
		Limit: limit,
	}, nil
}

// Stats summarizes a user's transactions over an optional inclusive range
func (s *TransactionService) Stats(userID uuid.UUID, from, to *time.Time) (*dto.TransactionStatsResponse, error) {
	totals, err := s.aggregator.Totals(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute transaction stats: %w", err)
	}

	return &dto.TransactionStatsResponse{
		TotalIncome:      totals.Income,
		TotalExpenses:    totals.Expenses,
		Balance:          totals.Income.Sub(totals.Expenses),
		TransactionCount: totals.Count,
	}, nil
}

func (s *TransactionService) resolveDate(date *time.Time) time.Time {
	if date != nil {
		return *date
	}
	return time.Now().In(s.location)
}
