package services

import (
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// categoryProfile controls how sample expenses are drawn for one category
type categoryProfile struct {
	category     string
	minAmount    float64
	maxAmount    float64
	perMonthMin  int
	perMonthMax  int
	budgetAmount float64
}

var sampleProfiles = []categoryProfile{
	{models.CategoryFood, 8, 120, 8, 16, 600},
	{models.CategoryTransportation, 3, 80, 4, 10, 250},
	{models.CategoryEntertainment, 10, 90, 2, 6, 200},
	{models.CategoryShopping, 15, 300, 2, 5, 400},
	{models.CategoryBills, 40, 250, 3, 5, 500},
	{models.CategoryHealthcare, 20, 180, 0, 2, 150},
	{models.CategoryTravel, 80, 600, 0, 1, 300},
}

// SampleDataGenerator seeds a user with plausible transactions and budgets
// for local development. Writes go through the transaction service so spent
// caches are reconciled exactly as they would be for real traffic.
type SampleDataGenerator struct {
	transactionService TransactionServiceInterface
	budgetRepo         repositories.BudgetRepositoryInterface
	location           *time.Location
	logger             *slog.Logger
}

// NewSampleDataGenerator creates a new sample data generator
func NewSampleDataGenerator(
	transactionService TransactionServiceInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	location *time.Location,
	logger *slog.Logger,
) SampleDataGeneratorInterface {
	return &SampleDataGenerator{
		transactionService: transactionService,
		budgetRepo:         budgetRepo,
		location:           location,
		logger:             logger,
	}
}

// Generate seeds the given number of trailing months, current month
// included. Budgets are created first so the generated expenses reconcile
// into their spent caches.
func (g *SampleDataGenerator) Generate(userID uuid.UUID, months int) (*SampleDataSummary, error) {
	if months < 1 {
		months = 3
	}

	summary := &SampleDataSummary{Months: months}
	now := time.Now().In(g.location)

	for back := months - 1; back >= 0; back-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, g.location).
			AddDate(0, -back, 0)
		month := period.MonthOf(monthStart, g.location)

		created, err := g.seedBudgets(userID, month)
		if err != nil {
			return nil, err
		}
		summary.Budgets += created

		count, err := g.seedMonth(userID, monthStart, now)
		if err != nil {
			return nil, err
		}
		summary.Transactions += count
	}

	g.logger.Info("sample data generated",
		"user_id", userID,
		"transactions", summary.Transactions,
		"budgets", summary.Budgets,
		"months", summary.Months,
	)

	return summary, nil
}

func (g *SampleDataGenerator) seedBudgets(userID uuid.UUID, month string) (int, error) {
	created := 0
	for _, profile := range sampleProfiles {
		budget := &models.Budget{
			UserID:   userID,
			Category: profile.category,
			Amount:   decimal.NewFromFloat(profile.budgetAmount),
			Month:    month,
			Spent:    decimal.Zero,
		}
		if err := g.budgetRepo.Create(budget); err != nil {
			if err == repositories.ErrDuplicateBudgetKey {
				continue
			}
			return created, fmt.Errorf("failed to seed budget %s/%s: %w", profile.category, month, err)
		}
		created++
	}
	return created, nil
}

func (g *SampleDataGenerator) seedMonth(userID uuid.UUID, monthStart, now time.Time) (int, error) {
	count := 0

	salaryDate := monthStart.Add(9 * time.Hour)
	if !salaryDate.After(now) {
		if err := g.createTransaction(userID, models.Transaction{
			Amount:   decimal.NewFromFloat(gofakeit.Float64Range(3500, 6500)).Round(2),
			Type:     models.TransactionTypeIncome,
			Category: models.CategoryOther,
			Note:     fmt.Sprintf("Salary - %s", gofakeit.Company()),
			Date:     salaryDate,
		}); err != nil {
			return count, err
		}
		count++
	}

	daysInMonth := monthStart.AddDate(0, 1, -1).Day()

	for _, profile := range sampleProfiles {
		n := gofakeit.Number(profile.perMonthMin, profile.perMonthMax)
		for i := 0; i < n; i++ {
			date := monthStart.AddDate(0, 0, gofakeit.Number(0, daysInMonth-1)).
				Add(time.Duration(gofakeit.Number(8, 21)) * time.Hour)
			if date.After(now) {
				continue
			}

			if err := g.createTransaction(userID, models.Transaction{
				Amount:   decimal.NewFromFloat(gofakeit.Float64Range(profile.minAmount, profile.maxAmount)).Round(2),
				Type:     models.TransactionTypeExpense,
				Category: profile.category,
				Note:     gofakeit.ProductName(),
				Date:     date,
			}); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}

func (g *SampleDataGenerator) createTransaction(userID uuid.UUID, template models.Transaction) error {
	date := template.Date
	_, err := g.transactionService.Create(userID, &dto.CreateTransactionRequest{
		Amount:   template.Amount,
		Type:     template.Type,
		Category: template.Category,
		Note:     template.Note,
		Date:     &date,
	})
	if err != nil {
		return fmt.Errorf("failed to seed transaction: %w", err)
	}
	return nil
}
