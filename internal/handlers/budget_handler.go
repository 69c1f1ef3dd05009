package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// List retrieves the user's budgets with refreshed spent values
//
// Method: GET /api/v1/budgets
// Query parameters: month (optional, YYYY-MM)
func (h *BudgetHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgets, err := h.budgetService.List(userID, c.QueryParam("month"))
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"budgets": budgets,
	})
}

// Create creates a budget for one category and month
//
// Method: POST /api/v1/budgets
func (h *BudgetHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	budget, err := h.budgetService.Create(userID, &req)
	if err != nil {
		if err == repositories.ErrDuplicateBudgetKey {
			return SendError(c, errors.BudgetDuplicateKey)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"budget": budget,
	})
}

// Update replaces a budget's category, amount and month
//
// Method: PUT /api/v1/budgets/:id
func (h *BudgetHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	budget, err := h.budgetService.Update(id, userID, &req)
	if err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		if err == repositories.ErrDuplicateBudgetKey {
			return SendError(c, errors.BudgetDuplicateKey)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"budget": budget,
	})
}

// Delete removes a budget, leaving its transactions in place
//
// Method: DELETE /api/v1/budgets/:id
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	if err := h.budgetService.Delete(id, userID); err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Budget deleted successfully",
	})
}
