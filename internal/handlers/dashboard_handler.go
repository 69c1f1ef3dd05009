package handlers

import (
	"net/http"

	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles dashboard aggregation endpoints
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats returns all-time and current-month totals plus the budget position
//
// Method: GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	stats, err := h.dashboardService.GetStats(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// Charts returns the category breakdown and monthly trend series
//
// Method: GET /api/v1/dashboard/charts
func (h *DashboardHandler) Charts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	charts, err := h.dashboardService.GetCharts(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, charts)
}
