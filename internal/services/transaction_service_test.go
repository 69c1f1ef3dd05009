package services

import (
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	db              *database.DB
	transactionRepo repositories.TransactionRepositoryInterface
	budgetRepo      repositories.BudgetRepositoryInterface
	budgetService   BudgetServiceInterface
	service         TransactionServiceInterface
	user            *models.User
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.transactionRepo = repositories.NewTransactionRepository(s.db.DB)
	s.budgetRepo = repositories.NewBudgetRepository(s.db.DB)

	logger := testLogger()
	metrics := NewNoopMetrics()
	reconciler := NewBudgetReconciler(s.budgetRepo, time.UTC, metrics, logger)
	aggregator := NewPeriodAggregator(s.transactionRepo, time.UTC)
	s.service = NewTransactionService(s.transactionRepo, reconciler, aggregator, time.UTC, metrics, logger)
	s.budgetService = NewBudgetService(s.budgetRepo, aggregator, metrics, logger)
	s.user = database.CreateTestUser(s.T(), s.db, "txservice@example.com")
}

func (s *TransactionServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionServiceTestSuite) create(txType, category string, amount float64, date time.Time) *models.Transaction {
	transaction, err := s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Amount:   decimal.NewFromFloat(amount),
		Type:     txType,
		Category: category,
		Date:     &date,
	})
	s.Require().NoError(err)
	return transaction
}

func (s *TransactionServiceTestSuite) TestCreate_DefaultsDateToNow() {
	before := time.Now().Add(-time.Second)

	transaction, err := s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Amount:   decimal.NewFromInt(10),
		Type:     models.TransactionTypeExpense,
		Category: models.CategoryFood,
	})
	s.Require().NoError(err)
	s.False(transaction.Date.Before(before))
}

func (s *TransactionServiceTestSuite) TestCreate_RejectsInvalidInput() {
	_, err := s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Amount:   decimal.NewFromInt(10),
		Type:     "transfer",
		Category: models.CategoryFood,
	})
	s.ErrorIs(err, models.ErrInvalidTransactionType)

	_, err = s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Amount:   decimal.NewFromInt(10),
		Type:     models.TransactionTypeExpense,
		Category: "Groceries",
	})
	s.ErrorIs(err, models.ErrInvalidCategory)

	_, err = s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Amount:   decimal.NewFromInt(-5),
		Type:     models.TransactionTypeExpense,
		Category: models.CategoryFood,
	})
	s.ErrorIs(err, models.ErrNegativeAmount)
}

func (s *TransactionServiceTestSuite) TestList_PaginationPages() {
	date := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		s.create(models.TransactionTypeExpense, models.CategoryFood, float64(i+1), date.AddDate(0, 0, i))
	}

	transactions, pagination, err := s.service.List(models.TransactionFilters{UserID: s.user.ID}, 1, 3)
	s.Require().NoError(err)
	s.Len(transactions, 3)
	s.Equal(int64(7), pagination.Total)
	s.Equal(1, pagination.Page)
	s.Equal(3, pagination.Pages)

	transactions, pagination, err = s.service.List(models.TransactionFilters{UserID: s.user.ID}, 3, 3)
	s.Require().NoError(err)
	s.Len(transactions, 1)
	s.Equal(3, pagination.Page)
}

func (s *TransactionServiceTestSuite) TestList_EmptyResult() {
	transactions, pagination, err := s.service.List(models.TransactionFilters{UserID: s.user.ID}, 1, 10)
	s.Require().NoError(err)
	s.Empty(transactions)
	s.Equal(int64(0), pagination.Total)
	s.Equal(0, pagination.Pages)
}

func (s *TransactionServiceTestSuite) TestList_NormalizesPageAndLimit() {
	_, pagination, err := s.service.List(models.TransactionFilters{UserID: s.user.ID}, 0, 0)
	s.Require().NoError(err)
	s.Equal(1, pagination.Page)
	s.Equal(DefaultPageSize, pagination.Limit)

	_, pagination, err = s.service.List(models.TransactionFilters{UserID: s.user.ID}, 1, 5000)
	s.Require().NoError(err)
	s.Equal(MaxPageSize, pagination.Limit)
}

func (s *TransactionServiceTestSuite) TestStats() {
	date := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.create(models.TransactionTypeIncome, models.CategoryOther, 1000, date)
	s.create(models.TransactionTypeExpense, models.CategoryFood, 300, date)

	stats, err := s.service.Stats(s.user.ID, nil, nil)
	s.Require().NoError(err)
	s.True(stats.TotalIncome.Equal(decimal.NewFromInt(1000)))
	s.True(stats.TotalExpenses.Equal(decimal.NewFromInt(300)))
	s.True(stats.Balance.Equal(decimal.NewFromInt(700)))
	s.Equal(int64(2), stats.TransactionCount)
}

// Full lifecycle: budget, spend against it, update, delete, with the served
// spent value and over-budget flag tracking every step.
func (s *TransactionServiceTestSuite) TestBudgetLifecycleEndToEnd() {
	_, err := s.budgetService.Create(s.user.ID, &dto.CreateBudgetRequest{
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(5000),
		Month:    "2026-03",
	})
	s.Require().NoError(err)

	first := s.create(models.TransactionTypeExpense, models.CategoryFood, 1200,
		time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))

	budgets, err := s.budgetService.List(s.user.ID, "2026-03")
	s.Require().NoError(err)
	s.Require().Len(budgets, 1)
	s.True(budgets[0].Spent.Equal(decimal.NewFromInt(1200)))
	s.False(budgets[0].IsOverBudget())

	s.create(models.TransactionTypeExpense, models.CategoryFood, 4000,
		time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC))

	budgets, err = s.budgetService.List(s.user.ID, "2026-03")
	s.Require().NoError(err)
	s.True(budgets[0].Spent.Equal(decimal.NewFromInt(5200)))
	s.True(budgets[0].IsOverBudget())

	s.Require().NoError(s.service.Delete(first.ID, s.user.ID))

	budgets, err = s.budgetService.List(s.user.ID, "2026-03")
	s.Require().NoError(err)
	s.True(budgets[0].Spent.Equal(decimal.NewFromInt(4000)))
	s.False(budgets[0].IsOverBudget())
}

// The incrementally-maintained cache and the authoritative recompute must
// agree after any sequence of writes.
func (s *TransactionServiceTestSuite) TestCacheAgreesWithRecomputeAfterUpdates() {
	_, err := s.budgetService.Create(s.user.ID, &dto.CreateBudgetRequest{
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(500),
		Month:    "2026-03",
	})
	s.Require().NoError(err)

	date := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	transaction := s.create(models.TransactionTypeExpense, models.CategoryFood, 80, date)

	// Same-key amount change
	updated, err := s.service.Update(transaction.ID, s.user.ID, &dto.UpdateTransactionRequest{
		Amount:   decimal.NewFromInt(120),
		Type:     models.TransactionTypeExpense,
		Category: models.CategoryFood,
		Date:     &date,
	})
	s.Require().NoError(err)

	budget, err := s.budgetRepo.GetByKey(s.user.ID, models.CategoryFood, "2026-03")
	s.Require().NoError(err)
	s.True(budget.Spent.Equal(decimal.NewFromInt(120)))

	// Category move away from the budgeted key
	_, err = s.service.Update(updated.ID, s.user.ID, &dto.UpdateTransactionRequest{
		Amount:   decimal.NewFromInt(120),
		Type:     models.TransactionTypeExpense,
		Category: models.CategoryTravel,
		Date:     &date,
	})
	s.Require().NoError(err)

	budget, err = s.budgetRepo.GetByKey(s.user.ID, models.CategoryFood, "2026-03")
	s.Require().NoError(err)
	s.True(budget.Spent.IsZero())
}

func (s *TransactionServiceTestSuite) TestUpdateAndDelete_NotFoundForOtherUser() {
	other := database.CreateTestUser(s.T(), s.db, "someone-else@example.com")
	transaction := s.create(models.TransactionTypeExpense, models.CategoryFood, 10,
		time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))

	date := transaction.Date
	_, err := NewTransactionService(s.transactionRepo,
		NewBudgetReconciler(s.budgetRepo, time.UTC, NewNoopMetrics(), testLogger()),
		NewPeriodAggregator(s.transactionRepo, time.UTC),
		time.UTC, NewNoopMetrics(), testLogger()).
		Update(transaction.ID, other.ID, &dto.UpdateTransactionRequest{
			Amount:   decimal.NewFromInt(10),
			Type:     models.TransactionTypeExpense,
			Category: models.CategoryFood,
			Date:     &date,
		})
	s.ErrorIs(err, repositories.ErrTransactionNotFound)

	s.ErrorIs(s.service.Delete(transaction.ID, other.ID), repositories.ErrTransactionNotFound)
}
