// Package slots resolves spins of a three-reel slot machine whose payouts
// depend on how many special symbols land.
package slots

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/rng"
)

// Special is the rare symbol that drives the big tiers
const Special entities.Symbol = "ʕっ•ᴥ•ʔっ"

// Commons are the regular reel faces
var Commons = []entities.Symbol{"(⇀‸↼‶)", "(・3・)", "(︶︹︶)", "( º﹃º )"}

// Config holds the reel table and the paytable
type Config struct {
	// Weighted draws the special at SpecialWeight percent and splits the rest
	// evenly across Commons; otherwise every symbol is equally likely
	Weighted          bool
	SpecialWeight     float64
	JackpotMultiplier int64
	LargeMultiplier   int64
	SmallMultiplier   int64
	MatchMultiplier   int64
}

// DefaultConfig is the weighted 5% table paying 100/25/5/2
func DefaultConfig() Config {
	return Config{
		Weighted:          true,
		SpecialWeight:     5,
		JackpotMultiplier: 100,
		LargeMultiplier:   25,
		SmallMultiplier:   5,
		MatchMultiplier:   2,
	}
}

// Machine spins reels
type Machine struct {
	cfg     Config
	symbols []entities.Symbol
	weights []float64
}

// NewMachine builds the reel table from cfg
func NewMachine(cfg Config) *Machine {
	symbols := append([]entities.Symbol{Special}, Commons...)
	weights := make([]float64, len(symbols))
	weights[0] = cfg.SpecialWeight
	common := (100 - cfg.SpecialWeight) / float64(len(Commons))
	for i := 1; i < len(weights); i++ {
		weights[i] = common
	}

	return &Machine{cfg: cfg, symbols: symbols, weights: weights}
}

// Weights returns the reel table as symbol -> percent
func (m *Machine) Weights() map[entities.Symbol]float64 {
	out := make(map[entities.Symbol]float64, len(m.symbols))
	for i, s := range m.symbols {
		if m.cfg.Weighted {
			out[s] = m.weights[i]
		} else {
			out[s] = 100 / float64(len(m.symbols))
		}
	}
	return out
}

func (m *Machine) spinReel(p rng.Provider) (entities.Symbol, error) {
	if m.cfg.Weighted {
		return rng.WeightedChoice(p, m.symbols, m.weights)
	}
	return rng.Pick(p, m.symbols)
}

// Spin draws three independent reels
func (m *Machine) Spin(p rng.Provider) ([3]entities.Symbol, error) {
	var reels [3]entities.Symbol
	for i := range reels {
		s, err := m.spinReel(p)
		if err != nil {
			return reels, types.WrapError(types.ErrCodeIllegalState, "reel draw failed", err)
		}
		reels[i] = s
	}
	return reels, nil
}

// Resolve spins and pays. Slots never prompts, so choices is unused.
func (m *Machine) Resolve(bet decimal.Decimal, p rng.Provider, _ entities.ChoiceStream) (*entities.Outcome, error) {
	reels, err := m.Spin(p)
	if err != nil {
		return nil, err
	}
	return m.Settle(bet, reels), nil
}

// Settle applies the paytable to a set of reels
func (m *Machine) Settle(bet decimal.Decimal, reels [3]entities.Symbol) *entities.Outcome {
	specials := 0
	for _, s := range reels {
		if s == Special {
			specials++
		}
	}

	var (
		multiplier int64
		result     = entities.ResultWin
		descriptor string
	)
	switch {
	case specials == 3:
		multiplier, result, descriptor = m.cfg.JackpotMultiplier, entities.ResultJackpot, "JACKPOT"
	case specials == 2:
		multiplier, descriptor = m.cfg.LargeMultiplier, "Pair of specials"
	case specials == 1:
		multiplier, descriptor = m.cfg.SmallMultiplier, "Special"
	case reels[0] == reels[1] && reels[1] == reels[2]:
		multiplier, descriptor = m.cfg.MatchMultiplier, "Three of a kind"
	}

	outcome := &entities.Outcome{
		Game: entities.GameSlots,
		Bet:  bet,
		Details: &entities.SlotsDetails{
			Reels:      reels,
			Specials:   specials,
			Multiplier: multiplier,
		},
	}
	if descriptor == "" {
		outcome.Net = bet.Neg()
		outcome.Result = entities.ResultLose
		outcome.Descriptor = "No match"
		return outcome
	}

	outcome.Net = bet.Mul(decimal.NewFromInt(multiplier)).Round(2)
	outcome.Result = result
	outcome.Descriptor = fmt.Sprintf("%s x%d", descriptor, multiplier)
	return outcome
}
