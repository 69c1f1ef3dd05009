package services

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TokenServiceInterface defines the contract for JWT token operations
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines the contract for password operations
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// AuthServiceInterface defines authentication business operations
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
}

// BudgetReconcilerInterface keeps budget spent caches in step with expense
// transaction writes. Implementations must treat a missing budget as a
// no-op, never creating one.
type BudgetReconcilerInterface interface {
	OnTransactionCreated(transaction *models.Transaction) error
	OnTransactionUpdated(before, after *models.Transaction) error
	OnTransactionDeleted(transaction *models.Transaction) error
}

// PeriodTotals holds summed income and expenses over one period
type PeriodTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Count    int64
}

// PeriodAggregatorInterface computes totals from the transaction store.
// Recomputed values are authoritative over any cached spent figure.
type PeriodAggregatorInterface interface {
	Totals(userID uuid.UUID, from, to *time.Time) (PeriodTotals, error)
	CategoryBreakdown(userID uuid.UUID, window period.Window) ([]models.CategoryTotal, error)
	MonthlyTrend(userID uuid.UUID, monthsBack int) ([]dto.MonthlyTrendPoint, error)
	RecomputeSpent(userID uuid.UUID, category, month string) (decimal.Decimal, error)
}

// TransactionServiceInterface defines transaction business operations
type TransactionServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	GetByID(id, userID uuid.UUID) (*models.Transaction, error)
	Update(id, userID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(id, userID uuid.UUID) error
	List(filters models.TransactionFilters, page, limit int) ([]models.Transaction, dto.PaginationInfo, error)
	Stats(userID uuid.UUID, from, to *time.Time) (*dto.TransactionStatsResponse, error)
}

// BudgetServiceInterface defines budget business operations
type BudgetServiceInterface interface {
	Create(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error)
	Update(id, userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error)
	List(userID uuid.UUID, month string) ([]models.Budget, error)
	Delete(id, userID uuid.UUID) error
}

// DashboardServiceInterface assembles the dashboard aggregations
type DashboardServiceInterface interface {
	GetStats(userID uuid.UUID) (*dto.DashboardStatsResponse, error)
	GetCharts(userID uuid.UUID) (*dto.DashboardChartsResponse, error)
}

// MetricsRecorderInterface defines the contract for recording metrics
type MetricsRecorderInterface interface {
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
	RecordTransactionWrite(operation, transactionType string)
	RecordReconciliation(operation, outcome string)
	RecordSpentRecompute(outcome string)
	RecordAuthEvent(event, outcome string)
}

// SampleDataSummary reports what a sample data run produced
type SampleDataSummary struct {
	Transactions int `json:"transactions"`
	Budgets      int `json:"budgets"`
	Months       int `json:"months"`
}

// SampleDataGeneratorInterface seeds realistic data for development
type SampleDataGeneratorInterface interface {
	Generate(userID uuid.UUID, months int) (*SampleDataSummary, error)
}
