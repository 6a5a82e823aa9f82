// Package highlow resolves rounds of High-Low: guess whether a second number
// will beat the first.
package highlow

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/rng"
)

const (
	MinNumber = 1
	MaxNumber = 100
)

// Resolve draws the first number, asks for a guess, then draws the second.
// A tie always loses.
func Resolve(bet decimal.Decimal, p rng.Provider, choices entities.ChoiceStream) (*entities.Outcome, error) {
	first := p.UniformInt(MinNumber, MaxNumber)

	guess, err := choices.Choose(entities.Prompt{
		Game:     entities.GameHighLow,
		Question: "Will the next number be higher or lower?",
		Options:  []entities.Choice{entities.ChoiceHigher, entities.ChoiceLower},
		State:    fmt.Sprintf("The number is %d", first),
	})
	if err != nil {
		return nil, err
	}
	if guess != entities.ChoiceHigher && guess != entities.ChoiceLower {
		return nil, types.NewGameError(types.ErrCodeIllegalState, fmt.Sprintf("unexpected high-low choice %q", guess))
	}

	second := p.UniformInt(MinNumber, MaxNumber)

	won := (guess == entities.ChoiceHigher && second > first) ||
		(guess == entities.ChoiceLower && second < first)

	outcome := &entities.Outcome{
		Game:    entities.GameHighLow,
		Bet:     bet,
		Details: &entities.HighLowDetails{First: first, Second: second, Guess: guess},
	}
	switch {
	case won:
		outcome.Net = bet
		outcome.Result = entities.ResultWin
		outcome.Descriptor = "Correct"
	case second == first:
		outcome.Net = bet.Neg()
		outcome.Result = entities.ResultLose
		outcome.Descriptor = "Same number, house wins"
	default:
		outcome.Net = bet.Neg()
		outcome.Result = entities.ResultLose
		outcome.Descriptor = "Wrong guess"
	}
	return outcome, nil
}
