package service

import (
	"context"
	"fmt"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
)

// BalanceService derives the ledger balance from stored transactions
type BalanceService struct {
	transactionRepo domain.TransactionRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(transactionRepo domain.TransactionRepository) *BalanceService {
	return &BalanceService{
		transactionRepo: transactionRepo,
	}
}

// ComputeBalance sums every stored transaction by type. It never writes.
func (s *BalanceService) ComputeBalance(ctx context.Context) (domain.Balance, error) {
	transactions, err := s.transactionRepo.GetAll(ctx)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return domain.CalculateBalance(transactions), nil
}
