package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction_Success(t *testing.T) {
	env := newTestEnv()

	c, rec := env.jsonRequest(http.MethodPost, "/api/v1/transactions", `{"title": "Salary", "value": 5000, "type": "income", "category": "Job"}`)
	require.NoError(t, env.transactionHandler.CreateTransaction(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response TransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Salary", response.Title)
	assert.Equal(t, "5000.00", response.Value)
	assert.Equal(t, "income", response.Type)
	require.NotNil(t, response.Category)
	assert.Equal(t, "Job", response.Category.Title)
	assert.Equal(t, response.Category.ID, response.CategoryID)
	_, err := uuid.Parse(response.ID)
	assert.NoError(t, err)
}

func TestCreateTransaction_DecimalValue(t *testing.T) {
	env := newTestEnv()

	c, rec := env.jsonRequest(http.MethodPost, "/api/v1/transactions", `{"title": "Refund", "value": 12.5, "type": "income", "category": "Misc"}`)
	require.NoError(t, env.transactionHandler.CreateTransaction(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var response TransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "12.50", response.Value)
}

func TestCreateTransaction_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"value as string", `{"title": "Salary", "value": "5000", "type": "income", "category": "Job"}`, "value", "value must be a number"},
		{"value missing", `{"title": "Salary", "type": "income", "category": "Job"}`, "value", "value must be a number"},
		{"value null", `{"title": "Salary", "value": null, "type": "income", "category": "Job"}`, "value", "value must be a number"},
		{"negative value", `{"title": "Salary", "value": -1, "type": "income", "category": "Job"}`, "value", "value must not be negative"},
		{"title as number", `{"title": 42, "value": 10, "type": "income", "category": "Job"}`, "title", "title must be a string"},
		{"title empty", `{"title": "", "value": 10, "type": "income", "category": "Job"}`, "title", "title must be a string"},
		{"unknown type", `{"title": "Salary", "value": 10, "type": "expense", "category": "Job"}`, "type", "type must be income or outcome"},
		{"type as number", `{"title": "Salary", "value": 10, "type": 1, "category": "Job"}`, "type", "type must be income or outcome"},
		{"category missing", `{"title": "Salary", "value": 10, "type": "income"}`, "category", "category must be a string"},
		{"category as number", `{"title": "Salary", "value": 10, "type": "income", "category": 7}`, "category", "category must be a string"},
		{"category blank", `{"title": "Salary", "value": 10, "type": "income", "category": "  "}`, "category", "category must not be empty"},
		{"value beyond column range", `{"title": "Salary", "value": 1e13, "type": "income", "category": "Job"}`, "value", "value must not exceed 999999999999.99"},
		{"value with sub-cent digits", `{"title": "Salary", "value": 0.005, "type": "income", "category": "Job"}`, "value", "value must have at most 2 decimal places"},
		{"negative value after missing title", `{"value": -1, "type": "income", "category": "Job"}`, "title", "title must be a string"},
		{"value reported first", `{"title": 1, "value": "x", "type": "bogus"}`, "value", "value must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			c, rec := env.jsonRequest(http.MethodPost, "/api/v1/transactions", tt.body)
			require.NoError(t, env.transactionHandler.CreateTransaction(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			problem := decodeProblem(t, rec)
			assert.Equal(t, ErrorTypeValidation, problem.Type)
			require.Len(t, problem.Errors, 1)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
			assert.Equal(t, tt.message, problem.Errors[0].Message)
			assert.Equal(t, 0, env.transactions.Count())
		})
	}
}

func TestCreateTransaction_MalformedJSON(t *testing.T) {
	env := newTestEnv()

	c, rec := env.jsonRequest(http.MethodPost, "/api/v1/transactions", `{"title": `)
	require.NoError(t, env.transactionHandler.CreateTransaction(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeProblem(t, rec).Detail)
}

func TestCreateTransaction_InsufficientBalance(t *testing.T) {
	env := newTestEnv()
	env.transactions.AddTransaction("Salary", domain.TransactionTypeIncome, decimal.NewFromInt(100), nil)

	c, rec := env.jsonRequest(http.MethodPost, "/api/v1/transactions", `{"title": "TV", "value": 500, "type": "outcome", "category": "Electronics"}`)
	require.NoError(t, env.transactionHandler.CreateTransaction(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, ErrorTypeInsufficientBalance, problem.Type)
	assert.Equal(t, "insufficient balance", problem.Detail)
	assert.Equal(t, "/api/v1/transactions", problem.Instance)
	assert.Equal(t, 0, env.categories.Count())
}

func TestCreateTransaction_StorageFailureIsOpaque(t *testing.T) {
	env := newTestEnv()
	env.transactions.CreateFn = func(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
		return nil, errors.New("pq: relation does not exist")
	}

	c, rec := env.jsonRequest(http.MethodPost, "/api/v1/transactions", `{"title": "Salary", "value": 1, "type": "income", "category": "Job"}`)
	require.NoError(t, env.transactionHandler.CreateTransaction(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, ErrorTypeInternal, problem.Type)
	assert.NotContains(t, problem.Detail, "relation")
}

func TestGetTransactions_Success(t *testing.T) {
	env := newTestEnv()
	job := env.categories.AddCategory("Job")
	env.transactions.AddTransaction("Salary", domain.TransactionTypeIncome, decimal.NewFromInt(5000), job)
	env.transactions.AddTransaction("Rent", domain.TransactionTypeOutcome, decimal.NewFromInt(1200), job)

	c, rec := env.jsonRequest(http.MethodGet, "/api/v1/transactions", "")
	require.NoError(t, env.transactionHandler.GetTransactions(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response LedgerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Transactions, 2)
	assert.Equal(t, "Salary", response.Transactions[0].Title)
	assert.Equal(t, "Rent", response.Transactions[1].Title)
	assert.Equal(t, BalanceResponse{Income: "5000.00", Outcome: "1200.00", Total: "3800.00"}, response.Balance)
}

func TestGetTransactions_EmptyListIsArray(t *testing.T) {
	env := newTestEnv()

	c, rec := env.jsonRequest(http.MethodGet, "/api/v1/transactions", "")
	require.NoError(t, env.transactionHandler.GetTransactions(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transactions":[]`)
	assert.Contains(t, rec.Body.String(), `"total":"0.00"`)
}

func TestDeleteTransaction_Success(t *testing.T) {
	env := newTestEnv()
	tx := env.transactions.AddTransaction("Salary", domain.TransactionTypeIncome, decimal.NewFromInt(1), nil)

	c, rec := env.jsonRequest(http.MethodDelete, "/api/v1/transactions/"+tx.ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(tx.ID.String())
	require.NoError(t, env.transactionHandler.DeleteTransaction(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, env.transactions.Count())
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	env := newTestEnv()
	id := uuid.New().String()

	c, rec := env.jsonRequest(http.MethodDelete, "/api/v1/transactions/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, env.transactionHandler.DeleteTransaction(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrorTypeNotFound, decodeProblem(t, rec).Type)
}

func TestDeleteTransaction_InvalidID(t *testing.T) {
	env := newTestEnv()

	c, rec := env.jsonRequest(http.MethodDelete, "/api/v1/transactions/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, env.transactionHandler.DeleteTransaction(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "id", decodeProblem(t, rec).Errors[0].Field)
}

func TestImportTransactions_Success(t *testing.T) {
	env := newTestEnv()
	content := "title,type,value,category\nSalary,income,5000,Job\nRent,outcome,1200,Housing\nBad,nope,10,X\n"

	c, rec := env.multipartRequest(t, "/api/v1/transactions/import", "file", "march.csv", content)
	require.NoError(t, env.transactionHandler.ImportTransactions(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var response []TransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "Salary", response[0].Title)
	assert.Equal(t, "Rent", response[1].Title)
	assert.Equal(t, "Housing", response[1].Category.Title)

	// The staged upload is gone
	assert.Empty(t, env.uploads.Files)
	assert.Len(t, env.uploads.Deleted, 1)
}

func TestImportTransactions_MissingFile(t *testing.T) {
	env := newTestEnv()

	c, rec := env.multipartRequest(t, "/api/v1/transactions/import", "document", "march.csv", "title,type,value,category\n")
	require.NoError(t, env.transactionHandler.ImportTransactions(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file", decodeProblem(t, rec).Errors[0].Field)
}

func TestImportTransactions_FileTooLarge(t *testing.T) {
	env := newTestEnv()
	content := make([]byte, 2048)
	for i := range content {
		content[i] = 'a'
	}

	c, rec := env.multipartRequest(t, "/api/v1/transactions/import", "file", "big.csv", string(content))
	require.NoError(t, env.transactionHandler.ImportTransactions(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.uploads.Files)
}

func TestImportTransactions_StagingFailure(t *testing.T) {
	env := newTestEnv()
	env.uploads.SaveErr = errors.New("bucket missing")

	c, rec := env.multipartRequest(t, "/api/v1/transactions/import", "file", "march.csv", "title,type,value,category\n")
	require.NoError(t, env.transactionHandler.ImportTransactions(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestImportTransactions_UnreadableCSV(t *testing.T) {
	env := newTestEnv()

	c, rec := env.multipartRequest(t, "/api/v1/transactions/import", "file", "bad.csv", "title,type,value,category\n\"Sal\"ary,income,1,Job\n")
	require.NoError(t, env.transactionHandler.ImportTransactions(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, env.uploads.Files)
}
