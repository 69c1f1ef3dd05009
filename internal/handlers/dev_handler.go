package handlers

import (
	"net/http"
	"strconv"

	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	defaultSampleMonths = 3
	maxSampleMonths     = 24
)

// DevHandler handles development-only endpoints. Routes using it must not
// be registered outside development environments.
type DevHandler struct {
	generator services.SampleDataGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(generator services.SampleDataGeneratorInterface) *DevHandler {
	return &DevHandler{
		generator: generator,
	}
}

// GenerateSampleData seeds the authenticated user with realistic
// transactions and budgets
//
// Method: POST /api/v1/dev/generate-sample-data
// Query parameters:
//   - months: Number of trailing months to seed (default: 3, max: 24)
func (h *DevHandler) GenerateSampleData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	months := defaultSampleMonths
	if raw := c.QueryParam("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil || months < 1 || months > maxSampleMonths {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("months must be between 1 and 24"))
		}
	}

	summary, err := h.generator.Generate(userID, months)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    summary,
		Message: "Sample data generated successfully",
	})
}
