// Package games dispatches rounds to the per-game engines and runs them
// against a wallet.
package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/rng"
	"github.com/fadedpez/tong777/pkg/services/blackjack"
	"github.com/fadedpez/tong777/pkg/services/coinflip"
	"github.com/fadedpez/tong777/pkg/services/highlow"
	"github.com/fadedpez/tong777/pkg/services/slots"
)

// Resolver settles one round given the stake, the randomness and the player's decisions
type Resolver func(bet decimal.Decimal, p rng.Provider, choices entities.ChoiceStream) (*entities.Outcome, error)

// Config carries the rules of the configurable games
type Config struct {
	Blackjack        blackjack.Config
	BlackjackOptions []blackjack.Option
	Slots            slots.Config
}

// DefaultConfig uses each game's default rules
func DefaultConfig() Config {
	return Config{
		Blackjack: blackjack.DefaultConfig(),
		Slots:     slots.DefaultConfig(),
	}
}

// Engines holds one engine per game kind
type Engines struct {
	blackjack *blackjack.Engine
	slots     *slots.Machine
}

// NewEngines builds the engines for cfg
func NewEngines(cfg Config) *Engines {
	return &Engines{
		blackjack: blackjack.NewEngine(cfg.Blackjack, cfg.BlackjackOptions...),
		slots:     slots.NewMachine(cfg.Slots),
	}
}

// Lookup returns the resolver for kind
func (e *Engines) Lookup(kind entities.GameKind) (Resolver, error) {
	switch kind {
	case entities.GameHighLow:
		return highlow.Resolve, nil
	case entities.GameCoinFlip:
		return coinflip.Resolve, nil
	case entities.GameBlackjack:
		return e.blackjack.Resolve, nil
	case entities.GameSlots:
		return e.slots.Resolve, nil
	default:
		return nil, types.NewGameError(types.ErrCodeGameNotFound, fmt.Sprintf("Game %s not found", kind))
	}
}

// ListGames returns the playable games in menu order
func (e *Engines) ListGames() []entities.GameKind {
	games := make([]entities.GameKind, len(entities.GameKinds))
	copy(games, entities.GameKinds)
	return games
}

// SlotsMachine exposes the configured machine, e.g. to show the paytable
func (e *Engines) SlotsMachine() *slots.Machine {
	return e.slots
}
