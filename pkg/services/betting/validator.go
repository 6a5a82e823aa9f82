package betting

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/types"
)

// MaxFractionDigits is the precision of every bet
const MaxFractionDigits = 2

// Bet is a validated stake. The zero Bet is the cancel sentinel.
type Bet struct {
	Amount decimal.Decimal
}

// Cancel is returned when the player enters zero
var Cancel = Bet{}

// IsCancel reports whether the player backed out of the round
func (b Bet) IsCancel() bool {
	return b.Amount.IsZero()
}

// String renders the bet with two decimals
func (b Bet) String() string {
	return b.Amount.StringFixed(MaxFractionDigits)
}

// NewBet wraps an amount already known to be valid
func NewBet(amount decimal.Decimal) Bet {
	return Bet{Amount: amount.Round(MaxFractionDigits)}
}

// Validate parses a raw bet string against the available balance.
// It never mutates anything, so the same input always yields the same result.
func Validate(raw string, available decimal.Decimal) (Bet, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "." {
		return Bet{}, types.NewGameError(types.ErrCodeInvalidFormat, "enter an amount, or 0 to cancel")
	}
	if strings.Count(s, ".") > 1 {
		return Bet{}, types.NewGameError(types.ErrCodeInvalidFormat, "an amount has at most one decimal point")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if !isDigits(whole) || !isDigits(frac) {
		return Bet{}, types.NewGameError(types.ErrCodeInvalidFormat, "an amount may only contain digits and one decimal point")
	}
	if len(frac) > MaxFractionDigits {
		return Bet{}, types.NewGameError(types.ErrCodeInvalidFormat, "an amount has at most 2 decimal places")
	}

	// "5." and ".5" are fine; give the parser a digit on each side
	if whole == "" {
		whole = "0"
	}
	if frac == "" {
		frac = "0"
	}
	amount, err := decimal.NewFromString(whole + "." + frac)
	if err != nil {
		return Bet{}, types.WrapError(types.ErrCodeInvalidFormat, "not a number", err)
	}

	if amount.IsZero() {
		return Cancel, nil
	}
	if amount.GreaterThan(available) {
		return Bet{}, types.NewInsufficientFunds(amount.Round(MaxFractionDigits), available)
	}

	return NewBet(amount), nil
}

// isDigits reports whether s is made only of ASCII digits; empty counts
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
