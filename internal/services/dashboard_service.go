package services

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/period"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const trendMonths = 6

const (
	BudgetStatusOnTrack    = "on-track"
	BudgetStatusOverBudget = "over-budget"
)

// DashboardService assembles the overview numbers and chart series. Budget
// spent figures are recomputed from the transaction store rather than read
// from the cache, so the dashboard never shows a stale position.
type DashboardService struct {
	budgetRepo repositories.BudgetRepositoryInterface
	aggregator PeriodAggregatorInterface
	location   *time.Location
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	budgetRepo repositories.BudgetRepositoryInterface,
	aggregator PeriodAggregatorInterface,
	location *time.Location,
) DashboardServiceInterface {
	return &DashboardService{
		budgetRepo: budgetRepo,
		aggregator: aggregator,
		location:   location,
	}
}

// GetStats returns all-time and current-month totals plus the current
// month's budget position
func (s *DashboardService) GetStats(userID uuid.UUID) (*dto.DashboardStatsResponse, error) {
	allTime, err := s.aggregator.Totals(userID, nil, nil)
	if err != nil {
		return nil, err
	}

	window := period.CurrentMonthWindow(s.location)
	monthly, err := s.aggregator.Totals(userID, &window.Start, &window.End)
	if err != nil {
		return nil, err
	}

	month := period.CurrentMonth(s.location)
	budgets, err := s.budgetRepo.GetByUserAndMonth(userID, month)
	if err != nil {
		return nil, err
	}

	totalBudget := decimal.Zero
	totalSpent := decimal.Zero
	for _, budget := range budgets {
		spent, err := s.aggregator.RecomputeSpent(userID, budget.Category, budget.Month)
		if err != nil {
			return nil, err
		}
		totalBudget = totalBudget.Add(budget.Amount)
		totalSpent = totalSpent.Add(spent)
	}

	status := BudgetStatusOnTrack
	if totalSpent.GreaterThan(totalBudget) {
		status = BudgetStatusOverBudget
	}

	return &dto.DashboardStatsResponse{
		TotalIncome:     allTime.Income,
		TotalExpenses:   allTime.Expenses,
		Balance:         allTime.Income.Sub(allTime.Expenses),
		MonthlyIncome:   monthly.Income,
		MonthlyExpenses: monthly.Expenses,
		TotalBudget:     totalBudget,
		TotalSpent:      totalSpent,
		BudgetRemaining: totalBudget.Sub(totalSpent),
		BudgetStatus:    status,
	}, nil
}

// GetCharts returns the current month's expense breakdown and the trailing
// six months of income/expense totals
func (s *DashboardService) GetCharts(userID uuid.UUID) (*dto.DashboardChartsResponse, error) {
	window := period.CurrentMonthWindow(s.location)
	breakdown, err := s.aggregator.CategoryBreakdown(userID, window)
	if err != nil {
		return nil, err
	}

	slices := make([]dto.CategorySlice, 0, len(breakdown))
	for _, row := range breakdown {
		slices = append(slices, dto.CategorySlice{
			Category: row.Category,
			Amount:   row.Amount,
		})
	}

	trends, err := s.aggregator.MonthlyTrend(userID, trendMonths)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardChartsResponse{
		CategoryBreakdown: slices,
		MonthlyTrends:     trends,
	}, nil
}
