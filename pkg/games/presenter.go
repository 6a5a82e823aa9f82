package games

import (
	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/pkg/entities"
)

// Presenter is the user-facing side of a game session
type Presenter interface {
	entities.ChoiceStream

	// RawBet asks for a stake; the returned string is validated by the table
	RawBet(available decimal.Decimal) (string, error)

	// Rejected reports an input or round error the player should see
	Rejected(err error)

	// Resolved shows a finished round
	Resolved(outcome *entities.Outcome)
}
