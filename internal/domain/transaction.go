package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeOutcome TransactionType = "outcome"
)

// IsValid reports whether t is one of the known transaction types
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeOutcome
}

// ValueScale is the number of fractional digits a stored value keeps
const ValueScale = 2

// MaxValue is the largest value the ledger can store: twelve integer digits at ValueScale
var MaxValue = decimal.New(1, 12).Sub(decimal.New(1, -ValueScale))

// CheckValue reports why v cannot be stored as a transaction value, or nil
func CheckValue(v decimal.Decimal) error {
	switch {
	case v.IsNegative():
		return ErrValueNegative
	case v.GreaterThan(MaxValue):
		return ErrValueTooLarge
	case !v.Equal(v.Truncate(ValueScale)):
		return ErrValuePrecision
	}
	return nil
}

type Transaction struct {
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Value      decimal.Decimal `json:"value"`
	Type       TransactionType `json:"type"`
	CategoryID uuid.UUID       `json:"categoryId"`
	Category   *Category       `json:"category,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Ledger is the full transaction list together with the balance derived from it
type Ledger struct {
	Transactions []*Transaction `json:"transactions"`
	Balance      Balance        `json:"balance"`
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	// CreateBatch inserts all transactions in one round trip. The result keeps the input order.
	CreateBatch(ctx context.Context, transactions []*Transaction) ([]*Transaction, error)
	// GetAll returns every transaction with its category resolved, oldest first.
	GetAll(ctx context.Context) ([]*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Transactor runs fn inside a single storage transaction. Repositories called with
// the context handed to fn take part in that transaction. Returning an error from
// fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
