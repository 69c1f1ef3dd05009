package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// List retrieves a filtered, paginated transaction history
//
// Method: GET /api/v1/transactions
// Query parameters: type, category, dateFrom, dateTo, page, limit
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.ListTransactionsQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	if query.Type != "" && !models.IsValidTransactionType(query.Type) {
		return SendError(c, errors.ValidationInvalidEnum, errors.WithDetails("Invalid transaction type"))
	}
	if query.Category != "" && !models.IsValidCategory(query.Category) {
		return SendError(c, errors.ValidationInvalidEnum, errors.WithDetails("Invalid category"))
	}

	dateFrom, err := parseDateParam(query.DateFrom)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid dateFrom"))
	}
	dateTo, err := parseDateParam(query.DateTo)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid dateTo"))
	}

	filters := models.TransactionFilters{
		UserID:   userID,
		Type:     query.Type,
		Category: query.Category,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}

	transactions, pagination, err := h.transactionService.List(filters, query.Page, query.Limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"pagination":   pagination,
	})
}

// Create records a new transaction
//
// Method: POST /api/v1/transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	transaction, err := h.transactionService.Create(userID, &req)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"transaction": transaction,
	})
}

// Update replaces a transaction's fields
//
// Method: PUT /api/v1/transactions/:id
func (h *TransactionHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	transaction, err := h.transactionService.Update(id, userID, &req)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"transaction": transaction,
	})
}

// Delete removes a transaction
//
// Method: DELETE /api/v1/transactions/:id
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	if err := h.transactionService.Delete(id, userID); err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Transaction deleted successfully",
	})
}

// Stats summarizes the user's transactions
//
// Method: GET /api/v1/transactions/stats
// Query parameters: dateFrom, dateTo (both optional)
func (h *TransactionHandler) Stats(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	dateFrom, err := parseDateParam(c.QueryParam("dateFrom"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid dateFrom"))
	}
	dateTo, err := parseDateParam(c.QueryParam("dateTo"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid dateTo"))
	}

	stats, err := h.transactionService.Stats(userID, dateFrom, dateTo)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}
