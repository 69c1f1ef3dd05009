package repositories

import (
	"testing"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetRepositoryTestSuite struct {
	suite.Suite
	db    *database.DB
	repo  BudgetRepositoryInterface
	user  *models.User
	other *models.User
}

func TestBudgetRepositorySuite(t *testing.T) {
	suite.Run(t, new(BudgetRepositoryTestSuite))
}

func (s *BudgetRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBudgetRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.other = database.CreateTestUser(s.T(), s.db, "other@example.com")
}

func (s *BudgetRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *BudgetRepositoryTestSuite) createBudget(userID uuid.UUID, category, month string, amount float64) *models.Budget {
	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   decimal.NewFromFloat(amount),
		Month:    month,
	}
	s.Require().NoError(s.repo.Create(budget))
	return budget
}

func (s *BudgetRepositoryTestSuite) TestCreate_DuplicateKeyRejectedByStore() {
	s.createBudget(s.user.ID, models.CategoryFood, "2026-03", 500)

	err := s.repo.Create(&models.Budget{
		UserID:   s.user.ID,
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(300),
		Month:    "2026-03",
	})
	s.ErrorIs(err, ErrDuplicateBudgetKey)
}

func (s *BudgetRepositoryTestSuite) TestCreate_SameKeyDifferentUserAllowed() {
	s.createBudget(s.user.ID, models.CategoryFood, "2026-03", 500)
	s.createBudget(s.other.ID, models.CategoryFood, "2026-03", 500)
}

func (s *BudgetRepositoryTestSuite) TestUpdate_MoveOntoOccupiedKeyRejected() {
	s.createBudget(s.user.ID, models.CategoryFood, "2026-03", 500)
	moving := s.createBudget(s.user.ID, models.CategoryTravel, "2026-03", 200)

	moving.Category = models.CategoryFood
	s.ErrorIs(s.repo.Update(moving), ErrDuplicateBudgetKey)
}

func (s *BudgetRepositoryTestSuite) TestGetByKey() {
	created := s.createBudget(s.user.ID, models.CategoryFood, "2026-03", 500)

	got, err := s.repo.GetByKey(s.user.ID, models.CategoryFood, "2026-03")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)

	_, err = s.repo.GetByKey(s.user.ID, models.CategoryFood, "2026-04")
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetRepositoryTestSuite) TestGetByUser_SortedByMonthDescCategoryAsc() {
	s.createBudget(s.user.ID, models.CategoryTravel, "2026-02", 100)
	s.createBudget(s.user.ID, models.CategoryFood, "2026-03", 500)
	s.createBudget(s.user.ID, models.CategoryBills, "2026-03", 200)

	budgets, err := s.repo.GetByUser(s.user.ID)
	s.Require().NoError(err)
	s.Require().Len(budgets, 3)
	s.Equal("2026-03", budgets[0].Month)
	s.Equal(models.CategoryBills, budgets[0].Category)
	s.Equal(models.CategoryFood, budgets[1].Category)
	s.Equal("2026-02", budgets[2].Month)
}

func (s *BudgetRepositoryTestSuite) TestApplySpentDelta_IncrementAndDecrement() {
	budget := s.createBudget(s.user.ID, models.CategoryFood, "2026-03", 500)

	applied, err := s.repo.ApplySpentDelta(s.user.ID, models.CategoryFood, "2026-03", decimal.NewFromInt(80))
	s.Require().NoError(err)
	s.True(applied)

	applied, err = s.repo.ApplySpentDelta(s.user.ID, models.CategoryFood, "2026-03", decimal.NewFromInt(-30))
	s.Require().NoError(err)
	s.True(applied)

	got, err := s.repo.GetByIDAndUser(budget.ID, s.user.ID)
	s.Require().NoError(err)
	s.True(got.Spent.Equal(decimal.NewFromInt(50)), "spent should be 50, got %s", got.Spent)
}

func (s *BudgetRepositoryTestSuite) TestApplySpentDelta_MissingBudgetIsNoOp() {
	applied, err := s.repo.ApplySpentDelta(s.user.ID, models.CategoryTravel, "2026-03", decimal.NewFromInt(80))
	s.Require().NoError(err)
	s.False(applied)

	// No budget was fabricated
	_, err = s.repo.GetByKey(s.user.ID, models.CategoryTravel, "2026-03")
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetRepositoryTestSuite) TestUpdateSpent() {
	budget := s.createBudget(s.user.ID, models.CategoryFood, "2026-03", 500)

	s.Require().NoError(s.repo.UpdateSpent(budget.ID, decimal.NewFromFloat(123.45)))

	got, err := s.repo.GetByIDAndUser(budget.ID, s.user.ID)
	s.Require().NoError(err)
	s.True(got.Spent.Equal(decimal.NewFromFloat(123.45)))

	s.ErrorIs(s.repo.UpdateSpent(uuid.New(), decimal.Zero), ErrBudgetNotFound)
}

func (s *BudgetRepositoryTestSuite) TestDelete_ScopedToOwner() {
	budget := s.createBudget(s.user.ID, models.CategoryFood, "2026-03", 500)

	s.ErrorIs(s.repo.Delete(budget.ID, s.other.ID), ErrBudgetNotFound)
	s.NoError(s.repo.Delete(budget.ID, s.user.ID))
	s.ErrorIs(s.repo.Delete(budget.ID, s.user.ID), ErrBudgetNotFound)
}
