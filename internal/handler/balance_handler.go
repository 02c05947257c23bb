package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/service"
)

// BalanceHandler serves the ledger balance
type BalanceHandler struct {
	balanceService *service.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// GetBalance godoc
// @Summary Get the balance
// @Description Income, outcome and total over all transactions
// @Tags balance
// @Produce json
// @Success 200 {object} BalanceResponse
// @Failure 500 {object} ProblemDetails
// @Router /balance [get]
func (h *BalanceHandler) GetBalance(c echo.Context) error {
	balance, err := h.balanceService.ComputeBalance(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to compute balance")
	}
	return c.JSON(http.StatusOK, toBalanceResponse(balance))
}
