package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetHandlerTestSuite struct {
	suite.Suite
	echo            *echo.Echo
	db              *database.DB
	handler         *BudgetHandler
	transactionRepo repositories.TransactionRepositoryInterface
	user            *models.User
}

func TestBudgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}

func (s *BudgetHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.db = database.SetupTestDB(s.T())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	budgetRepo := repositories.NewBudgetRepository(s.db.DB)
	s.transactionRepo = repositories.NewTransactionRepository(s.db.DB)
	aggregator := services.NewPeriodAggregator(s.transactionRepo, time.UTC)
	budgetService := services.NewBudgetService(budgetRepo, aggregator, services.NewNoopMetrics(), logger)

	s.handler = NewBudgetHandler(budgetService)
	s.user = database.CreateTestUser(s.T(), s.db, "budgethandler@example.com")
}

func (s *BudgetHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *BudgetHandlerTestSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.user.ID)
	return c, rec
}

func (s *BudgetHandlerTestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Error.Code
}

func (s *BudgetHandlerTestSuite) createBudget(category, month string, amount float64) *models.Budget {
	body := fmt.Sprintf(`{"category": %q, "amount": "%.2f", "month": %q}`, category, amount, month)
	c, rec := s.newContext(http.MethodPost, "/api/v1/budgets", body)

	s.Require().NoError(s.handler.Create(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var response struct {
		Budget models.Budget `json:"budget"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return &response.Budget
}

func (s *BudgetHandlerTestSuite) TestCreate_Success() {
	budget := s.createBudget(models.CategoryFood, "2026-03", 500)
	s.Equal(models.CategoryFood, budget.Category)
	s.True(budget.Spent.IsZero())
}

func (s *BudgetHandlerTestSuite) TestCreate_DuplicateKey() {
	s.createBudget(models.CategoryFood, "2026-03", 500)

	c, rec := s.newContext(http.MethodPost, "/api/v1/budgets",
		`{"category": "Food", "amount": "300", "month": "2026-03"}`)
	s.Require().NoError(s.handler.Create(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("BUDGET_002", s.errorCode(rec))
}

func (s *BudgetHandlerTestSuite) TestCreate_ValidationFailures() {
	testCases := []struct {
		name string
		body string
	}{
		{"bad month format", `{"category": "Food", "amount": "300", "month": "March 2026"}`},
		{"month 13", `{"category": "Food", "amount": "300", "month": "2026-13"}`},
		{"unknown category", `{"category": "Groceries", "amount": "300", "month": "2026-03"}`},
		{"negative amount", `{"category": "Food", "amount": "-300", "month": "2026-03"}`},
		{"missing month", `{"category": "Food", "amount": "300"}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, rec := s.newContext(http.MethodPost, "/api/v1/budgets", tc.body)
			s.Require().NoError(s.handler.Create(c))
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal("VALIDATION_001", s.errorCode(rec))
		})
	}
}

func (s *BudgetHandlerTestSuite) TestList_MonthFilterAndRefreshedSpent() {
	s.createBudget(models.CategoryFood, "2026-03", 500)
	s.createBudget(models.CategoryFood, "2026-04", 500)

	s.Require().NoError(s.transactionRepo.Create(&models.Transaction{
		UserID:   s.user.ID,
		Amount:   decimal.NewFromInt(125),
		Type:     models.TransactionTypeExpense,
		Category: models.CategoryFood,
		Date:     time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}))

	c, rec := s.newContext(http.MethodGet, "/api/v1/budgets?month=2026-03", "")
	s.Require().NoError(s.handler.List(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var response struct {
		Budgets []models.Budget `json:"budgets"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().Len(response.Budgets, 1)
	s.Equal("2026-03", response.Budgets[0].Month)
	s.True(response.Budgets[0].Spent.Equal(decimal.NewFromInt(125)))
}

func (s *BudgetHandlerTestSuite) TestUpdate_Success() {
	budget := s.createBudget(models.CategoryFood, "2026-03", 500)

	body := `{"category": "Food", "amount": "750", "month": "2026-03"}`
	c, rec := s.newContext(http.MethodPut, "/api/v1/budgets/"+budget.ID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID.String())

	s.Require().NoError(s.handler.Update(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var response struct {
		Budget models.Budget `json:"budget"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Budget.Amount.Equal(decimal.NewFromInt(750)))
}

func (s *BudgetHandlerTestSuite) TestUpdate_MoveOntoOccupiedKey() {
	s.createBudget(models.CategoryFood, "2026-03", 500)
	moving := s.createBudget(models.CategoryTravel, "2026-03", 200)

	body := `{"category": "Food", "amount": "200", "month": "2026-03"}`
	c, rec := s.newContext(http.MethodPut, "/api/v1/budgets/"+moving.ID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(moving.ID.String())

	s.Require().NoError(s.handler.Update(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("BUDGET_002", s.errorCode(rec))
}

func (s *BudgetHandlerTestSuite) TestUpdate_NotOwned() {
	budget := s.createBudget(models.CategoryFood, "2026-03", 500)
	other := database.CreateTestUser(s.T(), s.db, "someone@example.com")

	body := `{"category": "Food", "amount": "100", "month": "2026-03"}`
	c, rec := s.newContext(http.MethodPut, "/api/v1/budgets/"+budget.ID.String(), body)
	c.Set("user_id", other.ID)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID.String())

	s.Require().NoError(s.handler.Update(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("BUDGET_001", s.errorCode(rec))
}

func (s *BudgetHandlerTestSuite) TestDelete_Success() {
	budget := s.createBudget(models.CategoryFood, "2026-03", 500)

	c, rec := s.newContext(http.MethodDelete, "/api/v1/budgets/"+budget.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(budget.ID.String())

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *BudgetHandlerTestSuite) TestDelete_NotFound() {
	id := uuid.NewString()
	c, rec := s.newContext(http.MethodDelete, "/api/v1/budgets/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("BUDGET_001", s.errorCode(rec))
}
