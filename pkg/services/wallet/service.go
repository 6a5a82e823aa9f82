package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/services/statistics"
)

// Ledger holds a player's balance and the append-only transaction log.
// It is owned by one session and is not safe for concurrent use.
type Ledger struct {
	balance      decimal.Decimal
	transactions []*entities.Transaction
	logger       *logging.Logger
	now          func() time.Time
}

// Option configures a Ledger
type Option func(*Ledger)

// WithLogger sets the ledger's logger
func WithLogger(logger *logging.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// NewLedger creates a ledger holding the initial balance
func NewLedger(initial decimal.Decimal, opts ...Option) (*Ledger, error) {
	if initial.IsNegative() {
		return nil, types.NewGameError(types.ErrCodeInvalidAmount, "initial balance cannot be negative")
	}

	l := &Ledger{
		balance: initial.Round(2),
		logger:  logging.Default.Named("wallet"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Balance returns the current balance
func (l *Ledger) Balance() decimal.Decimal {
	return l.balance
}

// Transactions returns a copy of the log in insertion order
func (l *Ledger) Transactions() []*entities.Transaction {
	out := make([]*entities.Transaction, len(l.transactions))
	for i, tx := range l.transactions {
		clone := *tx
		out[i] = &clone
	}
	return out
}

// Deposit adds funds to the balance
func (l *Ledger) Deposit(amount decimal.Decimal, description string) (*entities.Transaction, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, types.NewGameError(types.ErrCodeInvalidAmount, "deposit amount must be positive")
	}
	return l.apply(entities.TransactionTypeDeposit, amount, description), nil
}

// Withdraw removes funds from the balance if sufficient funds exist
func (l *Ledger) Withdraw(amount decimal.Decimal, description string) (*entities.Transaction, error) {
	amount = amount.Round(2)
	if err := l.checkDebit(amount, "withdrawal"); err != nil {
		return nil, err
	}
	return l.apply(entities.TransactionTypeWithdraw, amount.Neg(), description), nil
}

// PlaceBet takes the stake for a round
func (l *Ledger) PlaceBet(amount decimal.Decimal, description string) (*entities.Transaction, error) {
	amount = amount.Round(2)
	if err := l.checkDebit(amount, "bet"); err != nil {
		return nil, err
	}
	return l.apply(entities.TransactionTypeBet, amount.Neg(), description), nil
}

// WinPayout credits what a round paid back. Zero is legal and still logged
// so every resolved round has exactly one BET and one WIN.
func (l *Ledger) WinPayout(amount decimal.Decimal, description string) (*entities.Transaction, error) {
	amount = amount.Round(2)
	if amount.IsNegative() {
		return nil, types.NewGameError(types.ErrCodeInvalidAmount, "payout cannot be negative")
	}
	return l.apply(entities.TransactionTypeWin, amount, description), nil
}

// Refund returns a stake taken by PlaceBet when the round could not be resolved
func (l *Ledger) Refund(amount decimal.Decimal, description string) (*entities.Transaction, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, types.NewGameError(types.ErrCodeInvalidAmount, "refund amount must be positive")
	}
	return l.apply(entities.TransactionTypeRefund, amount, description), nil
}

func (l *Ledger) checkDebit(amount decimal.Decimal, what string) error {
	if !amount.IsPositive() {
		return types.NewGameError(types.ErrCodeInvalidAmount, what+" amount must be positive")
	}
	if amount.GreaterThan(l.balance) {
		return types.NewInsufficientFunds(amount, l.balance)
	}
	return nil
}

// apply mutates the balance and appends the transaction; callers have already validated
func (l *Ledger) apply(kind entities.TransactionType, signed decimal.Decimal, description string) *entities.Transaction {
	l.balance = l.balance.Add(signed)

	tx := &entities.Transaction{
		ID:           uuid.New().String(),
		Type:         kind,
		Amount:       signed,
		BalanceAfter: l.balance,
		Description:  description,
		Timestamp:    l.now(),
	}
	l.transactions = append(l.transactions, tx)

	l.logger.Debug("%s %s -> balance %s (%s)", kind, signed.StringFixed(2), l.balance.StringFixed(2), description)

	clone := *tx
	return &clone
}

// Statistics summarizes the transaction log
func (l *Ledger) Statistics() *entities.WalletStatistics {
	stats := &entities.WalletStatistics{
		TotalTransactions: len(l.transactions),
		TotalDeposited:    decimal.Zero,
		TotalWithdrawn:    decimal.Zero,
		TotalWon:          decimal.Zero,
		TotalBet:          decimal.Zero,
		TotalRefunded:     decimal.Zero,
	}

	var bets []decimal.Decimal
	for _, tx := range l.transactions {
		abs := tx.Amount.Abs()
		switch tx.Type {
		case entities.TransactionTypeDeposit:
			stats.TotalDeposited = stats.TotalDeposited.Add(abs)
		case entities.TransactionTypeWithdraw:
			stats.TotalWithdrawn = stats.TotalWithdrawn.Add(abs)
		case entities.TransactionTypeWin:
			stats.TotalWon = stats.TotalWon.Add(abs)
		case entities.TransactionTypeBet:
			stats.TotalBet = stats.TotalBet.Add(abs)
			bets = append(bets, abs)
		case entities.TransactionTypeRefund:
			stats.TotalRefunded = stats.TotalRefunded.Add(abs)
		}
	}
	stats.NetProfit = stats.TotalWon.Add(stats.TotalRefunded).Sub(stats.TotalBet)

	if len(bets) == 0 {
		return stats
	}

	maxBet, minBet := bets[0], bets[0]
	for _, b := range bets[1:] {
		if b.GreaterThan(maxBet) {
			maxBet = b
		}
		if b.LessThan(minBet) {
			minBet = b
		}
	}
	avg := stats.TotalBet.Div(decimal.NewFromInt(int64(len(bets))))
	std := statistics.PopulationStdDev(bets)
	avg = avg.Round(2)

	stats.AverageBet = &avg
	stats.MaxBet = &maxBet
	stats.MinBet = &minBet
	stats.BetStdDev = &std
	return stats
}
