package dto

import "github.com/shopspring/decimal"

// Dashboard Response DTOs

// DashboardStatsResponse aggregates all-time and current-month totals with
// the current month's budget position
type DashboardStatsResponse struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	Balance         decimal.Decimal `json:"balance"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
	TotalBudget     decimal.Decimal `json:"totalBudget"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	BudgetRemaining decimal.Decimal `json:"budgetRemaining"`
	BudgetStatus    string          `json:"budgetStatus"`
}

// CategorySlice is one category's share of the current month's expenses
type CategorySlice struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlyTrendPoint is one (month, type) pair's summed amount. Pairs with
// no transactions are absent from the series; clients read absence as zero.
type MonthlyTrendPoint struct {
	Month  string          `json:"month"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardChartsResponse contains the chart series for the dashboard
type DashboardChartsResponse struct {
	CategoryBreakdown []CategorySlice     `json:"categoryBreakdown"`
	MonthlyTrends     []MonthlyTrendPoint `json:"monthlyTrends"`
}
