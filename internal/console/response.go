package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fadedpez/tong777/internal/types"
	"github.com/fadedpez/tong777/pkg/entities"
)

// ErrorEmoji maps error codes to the emoji shown in front of the message
var ErrorEmoji = map[types.ErrorCode]string{
	types.ErrCodeInvalidFormat:      "❗",
	types.ErrCodeInsufficientFunds:  "💸",
	types.ErrCodeInvalidAmount:      "❗",
	types.ErrCodeIllegalState:       "⚠️",
	types.ErrCodeGameNotFound:       "🔍",
	types.ErrCodePlayerNotFound:     "👤",
	types.ErrCodeUsernameTaken:      "✋",
	types.ErrCodeInvalidCredentials: "🚫",
	types.ErrCodeInvalidArgument:    "❗",
	types.ErrCodeStorageFailure:     "💾",
	types.ErrCodeInternalError:      "💥",
}

// ResultEmoji decorates a resolved round
var ResultEmoji = map[entities.Result]string{
	entities.ResultWin:       "🎉",
	entities.ResultBlackjack: "🃏",
	entities.ResultJackpot:   "💰",
	entities.ResultPush:      "🤝",
	entities.ResultLose:      "😞",
	entities.ResultCancelled: "↩️",
}

// FormatError renders err for the player
func FormatError(err error) string {
	var insufficient *types.InsufficientFundsError
	if errors.As(err, &insufficient) {
		return fmt.Sprintf("%s Insufficient funds: need %s, have %s",
			ErrorEmoji[types.ErrCodeInsufficientFunds],
			insufficient.Required.StringFixed(2),
			insufficient.Available.StringFixed(2))
	}

	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		emoji := ErrorEmoji[gameErr.Code]
		if emoji == "" {
			emoji = "❌"
		}
		return fmt.Sprintf("%s %s", emoji, gameErr.Message)
	}
	return fmt.Sprintf("❌ An error occurred: %v", err)
}

// FormatOutcome renders a resolved round as a few lines of text
func FormatOutcome(outcome *entities.Outcome) string {
	var b strings.Builder
	if outcome.Details != nil {
		b.WriteString(outcome.Details.Describe())
		b.WriteString("\n")
	}

	sign := ""
	if outcome.Net.IsPositive() {
		sign = "+"
	}
	fmt.Fprintf(&b, "%s %s: %s (%s%s)", ResultEmoji[outcome.Result], outcome.Result, outcome.Descriptor, sign, outcome.Net.StringFixed(2))
	if !outcome.Cancelled() {
		fmt.Fprintf(&b, "\nBalance: %s", outcome.BalanceAfter.StringFixed(2))
	}
	return b.String()
}
