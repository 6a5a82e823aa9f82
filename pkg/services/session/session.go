package session

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/games"
	"github.com/fadedpez/tong777/pkg/services/statistics"
	"github.com/fadedpez/tong777/pkg/services/wallet"
)

// Session is one logged-in player. It is not safe for concurrent use.
type Session struct {
	username string
	digest   string
	loginAt  time.Time
	ledger   *wallet.Ledger
	recorder *statistics.Recorder
	table    *games.Table
	service  *Service
}

// Username returns the logged-in player's name
func (s *Session) Username() string {
	return s.username
}

// LoginAt is when the session started
func (s *Session) LoginAt() time.Time {
	return s.loginAt
}

// Balance returns the current balance
func (s *Session) Balance() decimal.Decimal {
	return s.ledger.Balance()
}

// Ledger exposes the wallet, e.g. for transaction statistics
func (s *Session) Ledger() *wallet.Ledger {
	return s.ledger
}

// Recorder exposes the game history
func (s *Session) Recorder() *statistics.Recorder {
	return s.recorder
}

// Deposit adds funds and persists the new balance. A save failure is
// returned alongside the applied transaction.
func (s *Session) Deposit(ctx context.Context, amount decimal.Decimal) (*entities.Transaction, error) {
	tx, err := s.ledger.Deposit(amount, "Deposit")
	if err != nil {
		return nil, err
	}
	return tx, s.service.Save(ctx, s)
}

// Withdraw removes funds and persists the new balance
func (s *Session) Withdraw(ctx context.Context, amount decimal.Decimal) (*entities.Transaction, error) {
	tx, err := s.ledger.Withdraw(amount, "Withdrawal")
	if err != nil {
		return nil, err
	}
	return tx, s.service.Save(ctx, s)
}

// Play runs kind until the presenter cancels; every resolved round is recorded and saved
func (s *Session) Play(ctx context.Context, kind entities.GameKind, presenter games.Presenter) (*games.Summary, error) {
	if !kind.Valid() {
		return nil, types.NewGameError(types.ErrCodeGameNotFound, fmt.Sprintf("Game %s not found", kind))
	}
	return s.table.PlaySession(ctx, kind, presenter)
}

// Record snapshots the session as a storable player record
func (s *Session) Record() *entities.PlayerRecord {
	return &entities.PlayerRecord{
		Username:       s.username,
		PasswordDigest: s.digest,
		Balance:        s.ledger.Balance(),
		History:        s.recorder.History(),
	}
}
