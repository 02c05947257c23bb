package handler

import (
	"time"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
)

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Value      string            `json:"value"`
	Type       string            `json:"type"`
	CategoryID string            `json:"categoryId"`
	Category   *CategoryResponse `json:"category,omitempty"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
}

// BalanceResponse represents the ledger balance in API responses
type BalanceResponse struct {
	Income  string `json:"income"`
	Outcome string `json:"outcome"`
	Total   string `json:"total"`
}

// LedgerResponse is the transaction list together with its balance
type LedgerResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Balance      BalanceResponse       `json:"balance"`
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Title:     c.Title,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func toCategoryResponses(categories []*domain.Category) []CategoryResponse {
	result := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = toCategoryResponse(c)
	}
	return result
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:         t.ID.String(),
		Title:      t.Title,
		Value:      t.Value.StringFixed(2),
		Type:       string(t.Type),
		CategoryID: t.CategoryID.String(),
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Category != nil {
		category := toCategoryResponse(t.Category)
		resp.Category = &category
	}
	return resp
}

func toTransactionResponses(transactions []*domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = toTransactionResponse(t)
	}
	return result
}

func toBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		Income:  b.Income.StringFixed(2),
		Outcome: b.Outcome.StringFixed(2),
		Total:   b.Total.StringFixed(2),
	}
}
