package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/config"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/repository/postgres"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/repository/storage"
)

// runtime holds the connections a command needs
type runtime struct {
	cfg  *config.Config
	pool *pgxpool.Pool

	categoryRepo    *postgres.CategoryRepository
	transactionRepo *postgres.TransactionRepository
	transactor      *postgres.Transactor
}

func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &runtime{
		cfg:             cfg,
		pool:            pool,
		categoryRepo:    postgres.NewCategoryRepository(pool),
		transactionRepo: postgres.NewTransactionRepository(pool),
		transactor:      postgres.NewTransactor(pool),
	}, nil
}

func (r *runtime) uploadStore(ctx context.Context) (storage.UploadStore, error) {
	return storage.NewUploadStore(ctx, *r.cfg)
}

func (r *runtime) Close() {
	r.pool.Close()
}
