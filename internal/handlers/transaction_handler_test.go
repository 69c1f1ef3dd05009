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
	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo       *echo.Echo
	db         *database.DB
	handler    *TransactionHandler
	budgetRepo repositories.BudgetRepositoryInterface
	user       *models.User
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.db = database.SetupTestDB(s.T())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := services.NewNoopMetrics()
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	s.budgetRepo = repositories.NewBudgetRepository(s.db.DB)
	reconciler := services.NewBudgetReconciler(s.budgetRepo, time.UTC, metrics, logger)
	aggregator := services.NewPeriodAggregator(transactionRepo, time.UTC)
	transactionService := services.NewTransactionService(transactionRepo, reconciler, aggregator, time.UTC, metrics, logger)

	s.handler = NewTransactionHandler(transactionService)
	s.user = database.CreateTestUser(s.T(), s.db, "txhandler@example.com")
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionHandlerTestSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
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

func (s *TransactionHandlerTestSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Error.Code
}

func (s *TransactionHandlerTestSuite) createTransaction(txType, category string, amount float64, date string) uuid.UUID {
	body := fmt.Sprintf(`{"amount": "%.2f", "type": %q, "category": %q, "date": "%sT12:00:00Z"}`,
		amount, txType, category, date)
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body)

	s.Require().NoError(s.handler.Create(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var response struct {
		Transaction models.Transaction `json:"transaction"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Transaction.ID
}

func (s *TransactionHandlerTestSuite) TestCreate_Success() {
	id := s.createTransaction(models.TransactionTypeExpense, models.CategoryFood, 42.50, "2026-03-10")
	s.NotEqual(uuid.Nil, id)
}

func (s *TransactionHandlerTestSuite) TestCreate_ValidationFailures() {
	testCases := []struct {
		name string
		body string
	}{
		{"missing type", `{"amount": "5", "category": "Food"}`},
		{"negative amount", `{"amount": "-5", "type": "expense", "category": "Food"}`},
		{"sub-cent precision", `{"amount": "1.999", "type": "expense", "category": "Food"}`},
		{"bad type", `{"amount": "5", "type": "transfer", "category": "Food"}`},
		{"bad category", `{"amount": "5", "type": "expense", "category": "Groceries"}`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", tc.body)
			s.Require().NoError(s.handler.Create(c))
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal("VALIDATION_001", s.errorCode(rec))
		})
	}
}

func (s *TransactionHandlerTestSuite) TestCreate_MissingUserID() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions",
		strings.NewReader(`{"amount": "5", "type": "expense", "category": "Food"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.Create(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestList_FiltersAndPagination() {
	for i := 0; i < 5; i++ {
		s.createTransaction(models.TransactionTypeExpense, models.CategoryFood, 10, fmt.Sprintf("2026-03-%02d", i+1))
	}
	s.createTransaction(models.TransactionTypeIncome, models.CategoryOther, 1000, "2026-03-15")

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?type=expense&page=1&limit=2", "")
	s.Require().NoError(s.handler.List(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var response struct {
		Transactions []models.Transaction `json:"transactions"`
		Pagination   dto.PaginationInfo   `json:"pagination"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Transactions, 2)
	s.Equal(int64(5), response.Pagination.Total)
	s.Equal(3, response.Pagination.Pages)
}

func (s *TransactionHandlerTestSuite) TestList_InvalidTypeFilter() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?type=transfer", "")
	s.Require().NoError(s.handler.List(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestList_InvalidDateFilter() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?dateFrom=March+1st", "")
	s.Require().NoError(s.handler.List(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestUpdate_Success() {
	id := s.createTransaction(models.TransactionTypeExpense, models.CategoryFood, 42.50, "2026-03-10")

	body := `{"amount": "60", "type": "expense", "category": "Travel", "date": "2026-03-10T12:00:00Z"}`
	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions/"+id.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.Require().NoError(s.handler.Update(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var response struct {
		Transaction models.Transaction `json:"transaction"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(models.CategoryTravel, response.Transaction.Category)
	s.True(response.Transaction.Amount.Equal(decimal.NewFromInt(60)))
}

func (s *TransactionHandlerTestSuite) TestUpdate_NotFound() {
	body := `{"amount": "60", "type": "expense", "category": "Food"}`
	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions/"+uuid.NewString(), body)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	s.Require().NoError(s.handler.Update(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("TRANSACTION_001", s.errorCode(rec))
}

func (s *TransactionHandlerTestSuite) TestUpdate_MalformedID() {
	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions/not-a-uuid", `{"amount": "1", "type": "expense", "category": "Food"}`)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	s.Require().NoError(s.handler.Update(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestDelete_Success() {
	id := s.createTransaction(models.TransactionTypeExpense, models.CategoryFood, 10, "2026-03-10")

	c, rec := s.newContext(http.MethodDelete, "/api/v1/transactions/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusOK, rec.Code)

	// Deleting again reports not found
	c, rec = s.newContext(http.MethodDelete, "/api/v1/transactions/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestDelete_NotOwned() {
	id := s.createTransaction(models.TransactionTypeExpense, models.CategoryFood, 10, "2026-03-10")
	other := database.CreateTestUser(s.T(), s.db, "intruder@example.com")

	c, rec := s.newContext(http.MethodDelete, "/api/v1/transactions/"+id.String(), "")
	c.Set("user_id", other.ID)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	s.Require().NoError(s.handler.Delete(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestStats() {
	s.createTransaction(models.TransactionTypeIncome, models.CategoryOther, 1000, "2026-03-01")
	s.createTransaction(models.TransactionTypeExpense, models.CategoryFood, 300, "2026-03-02")

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions/stats", "")
	s.Require().NoError(s.handler.Stats(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var stats dto.TransactionStatsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &stats))
	s.True(stats.TotalIncome.Equal(decimal.NewFromInt(1000)))
	s.True(stats.TotalExpenses.Equal(decimal.NewFromInt(300)))
	s.True(stats.Balance.Equal(decimal.NewFromInt(700)))
	s.Equal(int64(2), stats.TransactionCount)
}

// A transaction POSTed through the handler must show up in the budget's
// spent cache without any recompute in between.
func (s *TransactionHandlerTestSuite) TestCreate_ReconcilesBudget() {
	budget := &models.Budget{
		UserID:   s.user.ID,
		Category: models.CategoryFood,
		Amount:   decimal.NewFromInt(500),
		Month:    "2026-03",
	}
	s.Require().NoError(s.budgetRepo.Create(budget))

	s.createTransaction(models.TransactionTypeExpense, models.CategoryFood, 75, "2026-03-10")

	stored, err := s.budgetRepo.GetByIDAndUser(budget.ID, s.user.ID)
	s.Require().NoError(err)
	s.True(stored.Spent.Equal(decimal.NewFromInt(75)))
}
