package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// GameKind identifies one of the casino games
type GameKind string

const (
	GameHighLow   GameKind = "highlow"
	GameCoinFlip  GameKind = "coinflip"
	GameBlackjack GameKind = "blackjack"
	GameSlots     GameKind = "slots"
)

// GameKinds lists the games in menu order
var GameKinds = []GameKind{GameHighLow, GameCoinFlip, GameBlackjack, GameSlots}

var gameNames = map[GameKind]string{
	GameHighLow:   "High-Low",
	GameCoinFlip:  "Coin Flip",
	GameBlackjack: "Blackjack",
	GameSlots:     "Slots",
}

// ParseGameKind accepts either the identifier or the display name
func ParseGameKind(s string) (GameKind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, kind := range GameKinds {
		if needle == string(kind) || needle == strings.ToLower(gameNames[kind]) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown game: %q", s)
}

// String returns the display name
func (k GameKind) String() string {
	if name, ok := gameNames[k]; ok {
		return name
	}
	return string(k)
}

// Valid reports whether k is a known game
func (k GameKind) Valid() bool {
	_, ok := gameNames[k]
	return ok
}

// MultiHand is true for games that keep dealing until the player cancels
func (k GameKind) MultiHand() bool {
	return k == GameBlackjack
}

// Choice is a discrete player decision
type Choice string

const (
	ChoiceHigher Choice = "higher"
	ChoiceLower  Choice = "lower"
	ChoiceHeads  Choice = "heads"
	ChoiceTails  Choice = "tails"
	ChoiceHit    Choice = "hit"
	ChoiceStand  Choice = "stand"
)

// Prompt asks the player for a decision
type Prompt struct {
	Game     GameKind
	Question string
	Options  []Choice
	// State is what the player can see when deciding, e.g. the first number or both hands
	State string
}

// Allows reports whether c is one of the prompt's options
func (p Prompt) Allows(c Choice) bool {
	for _, o := range p.Options {
		if o == c {
			return true
		}
	}
	return false
}

// ChoiceStream supplies player decisions to an engine
type ChoiceStream interface {
	Choose(prompt Prompt) (Choice, error)
}

// ChoiceFunc adapts a function to ChoiceStream
type ChoiceFunc func(prompt Prompt) (Choice, error)

// Choose calls f
func (f ChoiceFunc) Choose(prompt Prompt) (Choice, error) {
	return f(prompt)
}

// Result represents the outcome class of a round
type Result string

// Common result constants
const (
	ResultWin       Result = "WIN"
	ResultLose      Result = "LOSE"
	ResultPush      Result = "PUSH"
	ResultBlackjack Result = "BLACKJACK"
	ResultJackpot   Result = "JACKPOT"
	ResultCancelled Result = "CANCELLED"
)

// String returns the string representation of the result
func (r Result) String() string {
	return string(r)
}

// IsWin returns true if this result represents a win
func (r Result) IsWin() bool {
	return r == ResultWin || r == ResultBlackjack || r == ResultJackpot
}

// GameDetails is the game-specific record of how a round played out
type GameDetails interface {
	// GameType returns the game the details belong to
	GameType() GameKind
	// Describe renders the details for a terminal
	Describe() string
}

// Outcome is the resolved result of one round
type Outcome struct {
	Game       GameKind        `json:"game"`
	Bet        decimal.Decimal `json:"bet"`
	Net        decimal.Decimal `json:"net"`
	Result     Result          `json:"result"`
	Descriptor string          `json:"descriptor"`
	Details    GameDetails     `json:"details,omitempty"`
	// BalanceAfter is stamped by the table once the payout is applied
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// Payout is the amount credited back after the stake was taken; never negative
func (o *Outcome) Payout() decimal.Decimal {
	return o.Bet.Add(o.Net)
}

// Cancelled reports whether the round was abandoned before a bet was placed
func (o *Outcome) Cancelled() bool {
	return o.Result == ResultCancelled
}

// NewCancelledOutcome is returned for the zero-bet sentinel
func NewCancelledOutcome(game GameKind) *Outcome {
	return &Outcome{
		Game:       game,
		Bet:        decimal.Zero,
		Net:        decimal.Zero,
		Result:     ResultCancelled,
		Descriptor: "Cancelled",
	}
}
