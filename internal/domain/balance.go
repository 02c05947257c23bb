package domain

import "github.com/shopspring/decimal"

// Balance is the income/outcome summary of the ledger. It is never stored.
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Outcome decimal.Decimal `json:"outcome"`
	Total   decimal.Decimal `json:"total"`
}

// CalculateBalance folds all transactions into a Balance.
// Transactions with an unknown type are ignored.
func CalculateBalance(transactions []*Transaction) Balance {
	income := decimal.Zero
	outcome := decimal.Zero

	for _, t := range transactions {
		switch t.Type {
		case TransactionTypeIncome:
			income = income.Add(t.Value)
		case TransactionTypeOutcome:
			outcome = outcome.Add(t.Value)
		}
	}

	return Balance{
		Income:  income,
		Outcome: outcome,
		Total:   income.Sub(outcome),
	}
}

// Covers reports whether the balance total can pay for value
func (b Balance) Covers(value decimal.Decimal) bool {
	return value.LessThanOrEqual(b.Total)
}
