package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/repository/storage"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	importService      *service.ImportService
	uploads            storage.UploadStore
	maxUploadBytes     int64
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, importService *service.ImportService, uploads storage.UploadStore, maxUploadBytes int64) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		importService:      importService,
		uploads:            uploads,
		maxUploadBytes:     maxUploadBytes,
	}
}

// CreateTransactionRequest represents the create transaction request body.
// Fields are kept raw so a value of the wrong JSON type can be told apart from a missing one.
type CreateTransactionRequest struct {
	Title    json.RawMessage `json:"title" swaggertype:"string" example:"Salary"`
	Value    json.RawMessage `json:"value" swaggertype:"number" example:"5000"`
	Type     json.RawMessage `json:"type" swaggertype:"string" enums:"income,outcome"`
	Category json.RawMessage `json:"category" swaggertype:"string" example:"Job"`
}

func (r CreateTransactionRequest) toInput() service.CreateTransactionInput {
	return service.CreateTransactionInput{
		Title:         rawString(r.Title),
		Type:          domain.TransactionType(deref(rawString(r.Type))),
		Value:         rawNumber(r.Value),
		CategoryTitle: rawString(r.Category),
	}
}

// rawString returns nil unless raw is a JSON string
func rawString(raw json.RawMessage) *string {
	var s string
	if len(raw) == 0 || raw[0] != '"' || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return &s
}

// rawNumber returns nil unless raw is a JSON number
func rawNumber(raw json.RawMessage) *decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return nil
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return nil
	}
	return &d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Create an income or outcome transaction. The category is found by title or created.
// @Description Outcomes larger than the current balance total are rejected.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), req.toInput())
	if err != nil {
		return respondServiceError(c, err, "Failed to create transaction")
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions godoc
// @Summary List transactions
// @Description List every transaction in creation order together with the balance
// @Tags transactions
// @Produce json
// @Success 200 {object} LedgerResponse
// @Failure 500 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	ledger, err := h.transactionService.ListTransactions(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, "Failed to list transactions")
	}

	return c.JSON(http.StatusOK, LedgerResponse{
		Transactions: toTransactionResponses(ledger.Transactions),
		Balance:      toBalanceResponse(ledger.Balance),
	})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID" format(uuid)
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err, "Failed to delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

// ImportTransactions godoc
// @Summary Import transactions from CSV
// @Description Upload a CSV file with a header row followed by title,type,value,category rows.
// @Description Malformed rows are skipped. Missing categories are created. No balance check is applied.
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 201 {array} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /transactions/import [post]
func (h *TransactionHandler) ImportTransactions(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: fmt.Sprintf("File too large. Maximum size is %d bytes", h.maxUploadBytes)},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	ctx := c.Request().Context()
	key, err := h.uploads.Save(ctx, file.Filename, src)
	if err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("Failed to stage uploaded file")
		return NewInternalError(c, "Failed to store file")
	}

	transactions, err := h.importService.ImportTransactions(ctx, key)
	if err != nil {
		return respondServiceError(c, err, "Failed to import transactions")
	}

	return c.JSON(http.StatusCreated, toTransactionResponses(transactions))
}
