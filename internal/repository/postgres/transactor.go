package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leandrochavesf/gofinances/ledger-backend/db/sqlc"
	"github.com/rs/zerolog/log"
)

type txKey struct{}

// Transactor implements domain.Transactor on a pgx pool.
// The open pgx.Tx travels in the context so every repository joins it.
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor creates a new Transactor
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

// WithinTransaction runs fn in a database transaction, committing only when fn succeeds.
// Nested calls reuse the outer transaction.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit is a no-op
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Warn().Err(rbErr).Msg("Failed to roll back transaction")
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// queriesFor binds queries to the transaction carried by ctx, if any
func queriesFor(ctx context.Context, queries *sqlc.Queries) *sqlc.Queries {
	if tx, ok := txFromContext(ctx); ok {
		return queries.WithTx(tx)
	}
	return queries
}
