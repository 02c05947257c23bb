package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leandrochavesf/gofinances/ledger-backend/db/sqlc"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	value, err := decimalToPgNumeric(transaction.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}

	created, err := queriesFor(ctx, r.queries).CreateTransaction(ctx, sqlc.CreateTransactionParams{
		Title:      transaction.Title,
		Value:      value,
		Type:       string(transaction.Type),
		CategoryID: transaction.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	return sqlcTransactionToDomain(created), nil
}

// CreateBatch inserts all transactions in a single pgx batch
func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []*domain.Transaction) ([]*domain.Transaction, error) {
	if len(transactions) == 0 {
		return []*domain.Transaction{}, nil
	}

	params := make([]sqlc.CreateTransactionsParams, len(transactions))
	for i, t := range transactions {
		value, err := decimalToPgNumeric(t.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid value at row %d: %w", i, err)
		}
		params[i] = sqlc.CreateTransactionsParams{
			Title:      t.Title,
			Value:      value,
			Type:       string(t.Type),
			CategoryID: t.CategoryID,
		}
	}

	result := make([]*domain.Transaction, len(transactions))
	var batchErr error
	queriesFor(ctx, r.queries).CreateTransactions(ctx, params).QueryRow(func(i int, created sqlc.Transaction, err error) {
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("insert row %d: %w", i, err)
			}
			return
		}
		result[i] = sqlcTransactionToDomain(created)
	})
	if batchErr != nil {
		return nil, batchErr
	}
	return result, nil
}

// GetAll retrieves every transaction together with its category
func (r *TransactionRepository) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	rows, err := queriesFor(ctx, r.queries).ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Transaction, len(rows))
	for i, row := range rows {
		result[i] = &domain.Transaction{
			ID:         row.ID,
			Title:      row.Title,
			Value:      pgNumericToDecimal(row.Value),
			Type:       domain.TransactionType(row.Type),
			CategoryID: row.CategoryID,
			Category: &domain.Category{
				ID:        row.CategoryID,
				Title:     row.CategoryTitle,
				CreatedAt: row.CategoryCreatedAt.Time,
				UpdatedAt: row.CategoryUpdatedAt.Time,
			},
			CreatedAt: row.CreatedAt.Time,
			UpdatedAt: row.UpdatedAt.Time,
		}
	}
	return result, nil
}

// Delete removes a transaction by ID
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := queriesFor(ctx, r.queries).DeleteTransaction(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Helper functions

func sqlcTransactionToDomain(t sqlc.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:         t.ID,
		Title:      t.Title,
		Value:      pgNumericToDecimal(t.Value),
		Type:       domain.TransactionType(t.Type),
		CategoryID: t.CategoryID,
		CreatedAt:  t.CreatedAt.Time,
		UpdatedAt:  t.UpdatedAt.Time,
	}
}
