package games

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/rng"
	"github.com/fadedpez/tong777/pkg/services/betting"
	"github.com/fadedpez/tong777/pkg/services/wallet"
)

// PostRoundHook runs after every resolved round, e.g. to record and persist it
type PostRoundHook func(ctx context.Context, outcome *entities.Outcome) error

// Summary totals a session of rounds at one game
type Summary struct {
	Game   entities.GameKind
	Rounds int
	Net    decimal.Decimal
}

// Table runs rounds against a wallet
type Table struct {
	wallet  wallet.Wallet
	engines *Engines
	rng     rng.Provider
	hooks   []PostRoundHook
	logger  *logging.Logger
}

// TableOption configures a Table
type TableOption func(*Table)

// WithTableLogger sets the table's logger
func WithTableLogger(logger *logging.Logger) TableOption {
	return func(t *Table) {
		t.logger = logger
	}
}

// NewTable creates a table paying into w
func NewTable(w wallet.Wallet, engines *Engines, p rng.Provider, opts ...TableOption) *Table {
	if w == nil {
		panic("wallet cannot be nil")
	}
	if engines == nil {
		engines = NewEngines(DefaultConfig())
	}

	t := &Table{
		wallet:  w,
		engines: engines,
		rng:     p,
		logger:  logging.Default.Named("table"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnRoundResolved registers a hook run after every resolved round
func (t *Table) OnRoundResolved(hook PostRoundHook) {
	t.hooks = append(t.hooks, hook)
}

// PlayRound takes the stake, resolves the round and pays out. If resolution
// fails the stake is refunded and an ILLEGAL_STATE error is returned.
func (t *Table) PlayRound(kind entities.GameKind, bet betting.Bet, choices entities.ChoiceStream) (*entities.Outcome, error) {
	if bet.IsCancel() {
		return entities.NewCancelledOutcome(kind), nil
	}

	resolve, err := t.engines.Lookup(kind)
	if err != nil {
		return nil, err
	}

	if _, err := t.wallet.PlaceBet(bet.Amount, fmt.Sprintf("%s bet", kind)); err != nil {
		return nil, err
	}

	outcome, err := t.resolveSafely(resolve, bet.Amount, choices)
	if err == nil && outcome.Payout().IsNegative() {
		err = fmt.Errorf("%s lost more than the stake: net %s on %s", kind, outcome.Net.StringFixed(2), bet)
	}
	if err != nil {
		if _, refundErr := t.wallet.Refund(bet.Amount, fmt.Sprintf("%s refund", kind)); refundErr != nil {
			t.logger.Error("Failed to refund %s stake of %s: %v", kind, bet, refundErr)
		}
		t.logger.Warn("%s round aborted, stake %s refunded: %v", kind, bet, err)
		return nil, types.WrapError(types.ErrCodeIllegalState, "round aborted, stake refunded", err)
	}

	if _, err := t.wallet.WinPayout(outcome.Payout(), fmt.Sprintf("%s payout", kind)); err != nil {
		return nil, types.WrapError(types.ErrCodeIllegalState, "payout failed", err)
	}
	outcome.BalanceAfter = t.wallet.Balance()

	t.logger.Debug("%s: bet %s, %s, net %s, balance %s",
		kind, bet, outcome.Result, outcome.Net.StringFixed(2), outcome.BalanceAfter.StringFixed(2))

	return outcome, nil
}

// resolveSafely turns an engine panic into an error so the stake can be refunded
func (t *Table) resolveSafely(resolve Resolver, bet decimal.Decimal, choices entities.ChoiceStream) (outcome *entities.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = fmt.Errorf("engine panic: %v", r)
		}
	}()

	outcome, err = resolve(bet, t.rng, choices)
	if err == nil && outcome == nil {
		err = errors.New("engine returned no outcome")
	}
	return outcome, err
}

// PlaySession keeps asking for bets until the player cancels. Single-round
// games stop after one resolved round; blackjack deals hands until cancel.
func (t *Table) PlaySession(ctx context.Context, kind entities.GameKind, presenter Presenter) (*Summary, error) {
	summary := &Summary{Game: kind, Net: decimal.Zero}
	choices := &checkedChoices{presenter: presenter}

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		raw, err := presenter.RawBet(t.wallet.Balance())
		if err != nil {
			return summary, err
		}

		bet, err := betting.Validate(raw, t.wallet.Balance())
		if err != nil {
			presenter.Rejected(err)
			continue
		}
		if bet.IsCancel() {
			return summary, nil
		}

		outcome, err := t.PlayRound(kind, bet, choices)
		if err != nil {
			if types.IsGameError(err, types.ErrCodeInsufficientFunds) {
				presenter.Rejected(err)
				continue
			}
			return summary, err
		}

		summary.Rounds++
		summary.Net = summary.Net.Add(outcome.Net)
		presenter.Resolved(outcome)

		for _, hook := range t.hooks {
			if err := hook(ctx, outcome); err != nil {
				t.logger.LogError(err)
				presenter.Rejected(err)
			}
		}

		if !kind.MultiHand() {
			return summary, nil
		}
	}
}

// checkedChoices re-asks until the presenter returns one of the prompt's options
type checkedChoices struct {
	presenter Presenter
}

func (c *checkedChoices) Choose(prompt entities.Prompt) (entities.Choice, error) {
	for {
		choice, err := c.presenter.Choose(prompt)
		if err != nil {
			return "", err
		}
		if prompt.Allows(choice) {
			return choice, nil
		}
		c.presenter.Rejected(types.NewGameError(types.ErrCodeInvalidArgument,
			fmt.Sprintf("%q is not one of %v", choice, prompt.Options)))
	}
}
