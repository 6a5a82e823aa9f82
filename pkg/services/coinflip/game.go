// Package coinflip resolves rounds of Coin Flip.
package coinflip

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/rng"
)

// Faces in draw order
var Faces = []entities.Choice{entities.ChoiceHeads, entities.ChoiceTails}

// Resolve asks for a call and flips the coin
func Resolve(bet decimal.Decimal, p rng.Provider, choices entities.ChoiceStream) (*entities.Outcome, error) {
	guess, err := choices.Choose(entities.Prompt{
		Game:     entities.GameCoinFlip,
		Question: "Heads or tails?",
		Options:  Faces,
	})
	if err != nil {
		return nil, err
	}
	if guess != entities.ChoiceHeads && guess != entities.ChoiceTails {
		return nil, types.NewGameError(types.ErrCodeIllegalState, fmt.Sprintf("unexpected coin flip choice %q", guess))
	}

	face, err := rng.Pick(p, Faces)
	if err != nil {
		return nil, types.WrapError(types.ErrCodeIllegalState, "coin flip draw failed", err)
	}

	outcome := &entities.Outcome{
		Game:       entities.GameCoinFlip,
		Bet:        bet,
		Net:        bet.Neg(),
		Result:     entities.ResultLose,
		Descriptor: fmt.Sprintf("It's %s", face),
		Details:    &entities.CoinFlipDetails{Guess: guess, Face: face},
	}
	if face == guess {
		outcome.Net = bet
		outcome.Result = entities.ResultWin
	}
	return outcome, nil
}
