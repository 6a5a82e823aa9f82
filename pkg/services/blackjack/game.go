package blackjack

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/rng"
)

// Config holds the table rules
type Config struct {
	// NaturalPayout is the net multiple of the bet paid for a two-card 21
	NaturalPayout decimal.Decimal
	// DealerStandsOn is the lowest total the dealer stops drawing at
	DealerStandsOn int
}

// DefaultConfig pays 3:2 on naturals and has the dealer stand on 17
func DefaultConfig() Config {
	return Config{
		NaturalPayout:  DefaultNaturalPayout,
		DealerStandsOn: DefaultDealerStandsOn,
	}
}

// Engine resolves single hands of blackjack against the dealer
type Engine struct {
	cfg       Config
	newSource func(rng.Provider) CardSource
}

// Option configures an Engine
type Option func(*Engine)

// WithCardSource replaces the shuffled shoe, e.g. with a Stack
func WithCardSource(fn func(rng.Provider) CardSource) Option {
	return func(e *Engine) {
		e.newSource = fn
	}
}

// NewEngine creates a blackjack engine
func NewEngine(cfg Config, opts ...Option) *Engine {
	if cfg.NaturalPayout.IsZero() {
		cfg.NaturalPayout = DefaultNaturalPayout
	}
	if cfg.DealerStandsOn == 0 {
		cfg.DealerStandsOn = DefaultDealerStandsOn
	}

	e := &Engine{
		cfg: cfg,
		newSource: func(p rng.Provider) CardSource {
			return NewShoe(p)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// round is the state of one hand in progress
type round struct {
	source CardSource
	player *Hand
	dealer *Hand
}

func (r *round) deal(h *Hand) error {
	card := r.source.Draw()
	if card == nil {
		return types.NewGameError(types.ErrCodeIllegalState, "card source is exhausted")
	}
	return h.AddCard(card)
}

// Resolve plays one hand. Cards come off the source in the order
// player, dealer, player, dealer (hidden), then player hits, then dealer hits.
func (e *Engine) Resolve(bet decimal.Decimal, p rng.Provider, choices entities.ChoiceStream) (*entities.Outcome, error) {
	r := &round{
		source: e.newSource(p),
		player: NewHand(),
		dealer: NewHand(),
	}

	for _, h := range []*Hand{r.player, r.dealer, r.player, r.dealer} {
		if err := r.deal(h); err != nil {
			return nil, err
		}
	}

	if r.player.IsNatural() {
		net := bet.Mul(e.cfg.NaturalPayout).Round(2)
		return e.outcome(r, bet, net, entities.ResultBlackjack, "Blackjack!"), nil
	}

	if err := e.playerTurn(r, choices); err != nil {
		return nil, err
	}

	if r.player.Status == StatusBust {
		return e.outcome(r, bet, bet.Neg(), entities.ResultLose, "Bust"), nil
	}

	for r.dealer.Value() < e.cfg.DealerStandsOn {
		if err := r.deal(r.dealer); err != nil {
			return nil, err
		}
	}

	switch CompareHands(r.player.Cards, r.dealer.Cards) {
	case 1:
		if IsBust(r.dealer.Cards) {
			return e.outcome(r, bet, bet, entities.ResultWin, "Dealer busts"), nil
		}
		return e.outcome(r, bet, bet, entities.ResultWin, "You win"), nil
	case 0:
		return e.outcome(r, bet, decimal.Zero, entities.ResultPush, "Push"), nil
	default:
		return e.outcome(r, bet, bet.Neg(), entities.ResultLose, "Dealer wins"), nil
	}
}

// playerTurn prompts until the player stands, busts or reaches 21
func (e *Engine) playerTurn(r *round, choices entities.ChoiceStream) error {
	for r.player.Status == StatusPlaying {
		if r.player.Value() == Target {
			return r.player.Stand()
		}

		prompt := entities.Prompt{
			Game:     entities.GameBlackjack,
			Question: "Hit or stand?",
			Options:  []entities.Choice{entities.ChoiceHit, entities.ChoiceStand},
			State: fmt.Sprintf("Dealer shows %s 🂠 | You: %s (%d)",
				r.dealer.Cards[0], entities.FormatCards(r.player.Cards), r.player.Value()),
		}

		choice, err := choices.Choose(prompt)
		if err != nil {
			return err
		}

		switch choice {
		case entities.ChoiceHit:
			if err := r.deal(r.player); err != nil {
				return err
			}
		case entities.ChoiceStand:
			return r.player.Stand()
		default:
			return types.NewGameError(types.ErrCodeIllegalState, fmt.Sprintf("unexpected blackjack choice %q", choice))
		}
	}
	return nil
}

func (e *Engine) outcome(r *round, bet, net decimal.Decimal, result entities.Result, descriptor string) *entities.Outcome {
	return &entities.Outcome{
		Game:       entities.GameBlackjack,
		Bet:        bet,
		Net:        net,
		Result:     result,
		Descriptor: descriptor,
		Details: &entities.BlackjackDetails{
			PlayerCards: r.player.Cards,
			DealerCards: r.dealer.Cards,
			PlayerTotal: r.player.Value(),
			DealerTotal: r.dealer.Value(),
		},
	}
}
