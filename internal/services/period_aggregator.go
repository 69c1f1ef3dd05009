package services

import (
	"fmt"
	"sort"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/period"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodAggregator computes income/expense totals over calendar windows.
// All month attribution goes through the period package with the single
// configured location, so a transaction lands in the same month here as it
// does in the reconciler. Recomputed results are authoritative; the spent
// column on budgets is only a cache of what RecomputeSpent would return.
type PeriodAggregator struct {
	transactionRepo repositories.TransactionRepositoryInterface
	location        *time.Location
}

// NewPeriodAggregator creates an aggregator for the given location
func NewPeriodAggregator(
	transactionRepo repositories.TransactionRepositoryInterface,
	location *time.Location,
) PeriodAggregatorInterface {
	return &PeriodAggregator{
		transactionRepo: transactionRepo,
		location:        location,
	}
}

// Totals sums income and expenses for a user over an inclusive range. Nil
// bounds leave that side open; types with no transactions report zero.
func (a *PeriodAggregator) Totals(userID uuid.UUID, from, to *time.Time) (PeriodTotals, error) {
	rows, err := a.transactionRepo.SumByType(userID, from, to)
	if err != nil {
		return PeriodTotals{}, err
	}

	totals := PeriodTotals{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			totals.Income = row.Total
		case models.TransactionTypeExpense:
			totals.Expenses = row.Total
		}
		totals.Count += row.Count
	}

	return totals, nil
}

// CategoryBreakdown sums expenses per category inside a window, largest
// first. Categories without expenses in the window are omitted.
func (a *PeriodAggregator) CategoryBreakdown(userID uuid.UUID, window period.Window) ([]models.CategoryTotal, error) {
	return a.transactionRepo.SumByCategory(userID, models.TransactionTypeExpense, window.Start, window.End)
}

// MonthlyTrend sums amounts per (month, type) pair over the last monthsBack
// calendar months including the current one, oldest month first. Pairs with
// no transactions are omitted rather than zero-filled.
func (a *PeriodAggregator) MonthlyTrend(userID uuid.UUID, monthsBack int) ([]dto.MonthlyTrendPoint, error) {
	window := period.TrailingWindow(monthsBack, a.location)

	transactions, err := a.transactionRepo.GetByDateRange(userID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	type trendKey struct {
		month string
		kind  string
	}
	totals := make(map[trendKey]decimal.Decimal)
	for _, transaction := range transactions {
		key := trendKey{period.MonthOf(transaction.Date, a.location), transaction.Type}
		totals[key] = totals[key].Add(transaction.Amount)
	}

	points := make([]dto.MonthlyTrendPoint, 0, len(totals))
	for key, amount := range totals {
		points = append(points, dto.MonthlyTrendPoint{
			Month:  key.month,
			Type:   key.kind,
			Amount: amount,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Month != points[j].Month {
			return points[i].Month < points[j].Month
		}
		return points[i].Type < points[j].Type
	})

	return points, nil
}

// RecomputeSpent sums a user's expenses for one category over one month's
// window. This is the ground truth the spent cache approximates.
func (a *PeriodAggregator) RecomputeSpent(userID uuid.UUID, category, month string) (decimal.Decimal, error) {
	window, err := period.MonthWindow(month, a.location)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid budget month %q: %w", month, err)
	}

	return a.transactionRepo.SumAmount(userID, models.TransactionTypeExpense, category, window.Start, window.End)
}
