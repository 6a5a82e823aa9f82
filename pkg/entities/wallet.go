package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of wallet transaction
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeBet      TransactionType = "BET"
	TransactionTypeWin      TransactionType = "WIN"
	TransactionTypeRefund   TransactionType = "REFUND"
)

// Transaction represents a single wallet transaction
type Transaction struct {
	ID           string          `json:"id"`            // Unique identifier
	Type         TransactionType `json:"type"`          // Type of transaction
	Amount       decimal.Decimal `json:"amount"`        // Positive for additions, negative for subtractions
	BalanceAfter decimal.Decimal `json:"balance_after"` // Balance after this transaction
	Description  string          `json:"description"`   // Human-readable description
	Timestamp    time.Time       `json:"timestamp"`     // When the transaction occurred
}
