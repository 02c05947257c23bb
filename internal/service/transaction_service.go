package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	transactor      domain.Transactor
	balance         *BalanceService
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, transactor domain.Transactor) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		transactor:      transactor,
		balance:         NewBalanceService(transactionRepo),
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateTransactionInput holds the input for creating a transaction.
// A nil pointer means the caller did not send a value of the right kind.
type CreateTransactionInput struct {
	Title         *string
	Type          domain.TransactionType
	Value         *decimal.Decimal
	CategoryTitle *string
}

// validate checks the input in a fixed order and returns the first failure.
// Value, title and type come first; value bounds and the category follow.
func (in CreateTransactionInput) validate() (title, category string, err error) {
	if in.Value == nil {
		return "", "", domain.ErrValueNotNumber
	}

	if in.Title == nil {
		return "", "", domain.ErrTitleNotString
	}
	title = strings.TrimSpace(*in.Title)
	if title == "" {
		return "", "", domain.ErrTitleNotString
	}

	if !in.Type.IsValid() {
		return "", "", domain.ErrInvalidType
	}

	if err := domain.CheckValue(*in.Value); err != nil {
		return "", "", err
	}

	if in.CategoryTitle == nil {
		return "", "", domain.ErrCategoryNotString
	}
	category = strings.TrimSpace(*in.CategoryTitle)
	if category == "" {
		return "", "", domain.ErrCategoryRequired
	}

	return title, category, nil
}

// CreateTransaction validates the input, resolves the category by title and
// stores the transaction. Outcomes larger than the current total are rejected.
// All writes happen in one storage transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	title, categoryTitle, err := input.validate()
	if err != nil {
		return nil, err
	}
	value := *input.Value

	var created *domain.Transaction
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		category, err := s.categoryRepo.FindOrCreate(ctx, categoryTitle)
		if err != nil {
			return fmt.Errorf("failed to resolve category: %w", err)
		}

		if input.Type == domain.TransactionTypeOutcome {
			balance, err := s.balance.ComputeBalance(ctx)
			if err != nil {
				return err
			}
			if !balance.Covers(value) {
				return domain.ErrInsufficientBalance
			}
		}

		created, err = s.transactionRepo.Create(ctx, &domain.Transaction{
			Title:      title,
			Value:      value,
			Type:       input.Type,
			CategoryID: category.ID,
			Category:   category,
		})
		if err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		created.Category = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", created.ID.String()).
		Str("type", string(created.Type)).
		Str("value", created.Value.String()).
		Str("category", categoryTitle).
		Msg("Transaction created")

	s.publishEvent(websocket.TransactionCreated(created))
	return created, nil
}

// ListTransactions returns every transaction with the balance of that same set
func (s *TransactionService) ListTransactions(ctx context.Context) (*domain.Ledger, error) {
	transactions, err := s.transactionRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return &domain.Ledger{
		Transactions: transactions,
		Balance:      domain.CalculateBalance(transactions),
	}, nil
}

// DeleteTransaction removes a transaction by ID
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("transaction_id", id.String()).Msg("Transaction deleted")

	s.publishEvent(websocket.TransactionDeleted(map[string]interface{}{
		"id": id.String(),
	}))
	return nil
}
