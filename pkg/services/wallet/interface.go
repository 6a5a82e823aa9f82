package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/pkg/entities"
)

// Wallet is the slice of the ledger a game table needs
type Wallet interface {
	Balance() decimal.Decimal
	PlaceBet(amount decimal.Decimal, description string) (*entities.Transaction, error)
	WinPayout(amount decimal.Decimal, description string) (*entities.Transaction, error)
	Refund(amount decimal.Decimal, description string) (*entities.Transaction, error)
}
