package services

import (
	"errors"
	"log/slog"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService manages monthly per-category budgets. The store's unique
// index on (user_id, category, month) is the authority for key uniqueness;
// the pre-checks here only fail the common case before hitting it.
type BudgetService struct {
	budgetRepo repositories.BudgetRepositoryInterface
	aggregator PeriodAggregatorInterface
	metrics    MetricsRecorderInterface
	logger     *slog.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	aggregator PeriodAggregatorInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		budgetRepo: budgetRepo,
		aggregator: aggregator,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create creates a budget with a zero spent cache. Expenses recorded before
// the budget existed are picked up by the next spent refresh.
func (s *BudgetService) Create(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	_, err := s.budgetRepo.GetByKey(userID, req.Category, req.Month)
	if err == nil {
		return nil, repositories.ErrDuplicateBudgetKey
	}
	if !errors.Is(err, repositories.ErrBudgetNotFound) {
		return nil, err
	}

	budget := &models.Budget{
		UserID:   userID,
		Category: req.Category,
		Amount:   req.Amount,
		Month:    req.Month,
		Spent:    decimal.Zero,
	}

	if err := s.budgetRepo.Create(budget); err != nil {
		return nil, err
	}

	s.logger.Info("budget created",
		"user_id", userID, "category", budget.Category, "month", budget.Month)

	return budget, nil
}

// Update replaces a budget's category, amount and month. Moving onto an
// occupied key is rejected. The spent cache is left alone and refreshed on
// the next listing.
func (s *BudgetService) Update(id, userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Category != budget.Category || req.Month != budget.Month {
		existing, err := s.budgetRepo.GetByKey(userID, req.Category, req.Month)
		if err == nil && existing.ID != id {
			return nil, repositories.ErrDuplicateBudgetKey
		}
		if err != nil && !errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, err
		}
	}

	budget.Category = req.Category
	budget.Amount = req.Amount
	budget.Month = req.Month

	if err := budget.Validate(); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Update(budget); err != nil {
		return nil, err
	}

	return budget, nil
}

// List returns a user's budgets, every month unless one is given, with each
// spent cache refreshed from the transaction store. Refreshed values are
// written back best-effort; a failed write-back never fails the listing.
func (s *BudgetService) List(userID uuid.UUID, month string) ([]models.Budget, error) {
	var budgets []models.Budget
	var err error

	if month != "" {
		budgets, err = s.budgetRepo.GetByUserAndMonth(userID, month)
	} else {
		budgets, err = s.budgetRepo.GetByUser(userID)
	}
	if err != nil {
		return nil, err
	}

	for i := range budgets {
		spent, err := s.aggregator.RecomputeSpent(userID, budgets[i].Category, budgets[i].Month)
		if err != nil {
			s.metrics.RecordSpentRecompute("error")
			return nil, err
		}

		if budgets[i].Spent.Equal(spent) {
			s.metrics.RecordSpentRecompute("clean")
			continue
		}

		if err := s.budgetRepo.UpdateSpent(budgets[i].ID, spent); err != nil {
			s.metrics.RecordSpentRecompute("persist_failed")
			s.logger.Warn("failed to persist refreshed spent",
				"budget_id", budgets[i].ID, "error", err)
		} else {
			s.metrics.RecordSpentRecompute("refreshed")
		}
		budgets[i].Spent = spent
	}

	return budgets, nil
}

// Delete removes a budget. The transactions that fed its spent cache are
// untouched.
func (s *BudgetService) Delete(id, userID uuid.UUID) error {
	return s.budgetRepo.Delete(id, userID)
}
