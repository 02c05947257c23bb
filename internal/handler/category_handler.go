package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} CategoryResponse
// @Failure 500 {object} ProblemDetails
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to list categories")
	}
	return c.JSON(http.StatusOK, toCategoryResponses(categories))
}
