package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/service"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires real services over in-memory repositories
type testEnv struct {
	e            *echo.Echo
	transactions *testutil.MockTransactionRepository
	categories   *testutil.MockCategoryRepository
	uploads      *testutil.MockUploadStore
	publisher    *testutil.RecordingPublisher

	transactionHandler *TransactionHandler
	categoryHandler    *CategoryHandler
	balanceHandler     *BalanceHandler
}

func newTestEnv() *testEnv {
	env := &testEnv{
		e:            echo.New(),
		transactions: testutil.NewMockTransactionRepository(),
		categories:   testutil.NewMockCategoryRepository(),
		uploads:      testutil.NewMockUploadStore(),
		publisher:    &testutil.RecordingPublisher{},
	}
	transactor := testutil.NewMockTransactor(env.transactions, env.categories)

	transactionService := service.NewTransactionService(env.transactions, env.categories, transactor)
	transactionService.SetEventPublisher(env.publisher)
	importService := service.NewImportService(env.uploads, env.categories, env.transactions, transactor)
	importService.SetEventPublisher(env.publisher)

	env.transactionHandler = NewTransactionHandler(transactionService, importService, env.uploads, 1024)
	env.categoryHandler = NewCategoryHandler(service.NewCategoryService(env.categories))
	env.balanceHandler = NewBalanceHandler(service.NewBalanceService(env.transactions))
	return env
}

func (env *testEnv) jsonRequest(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func (env *testEnv) multipartRequest(t *testing.T, path, field, filename, content string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}
