package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes sets up all API routes. Mutating transaction routes are rate limited per client.
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, healthHandler *HealthHandler, transactionHandler *TransactionHandler, categoryHandler *CategoryHandler, balanceHandler *BalanceHandler, webSocketHandler *WebSocketHandler) {
	limited := middleware.RateLimitMiddleware(rateLimiter)

	// Health check endpoint
	e.GET("/health", healthHandler.Health)

	// Live ledger events
	e.GET("/ws", webSocketHandler.HandleWS)

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API version 1
	api := e.Group("/api/v1")
	api.GET("/openapi.json", ServeOpenAPI3Spec)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction, limited)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.POST("/import", transactionHandler.ImportTransactions, limited)

	// Category routes
	api.GET("/categories", categoryHandler.GetCategories)

	// Balance routes
	api.GET("/balance", balanceHandler.GetBalance)
}
