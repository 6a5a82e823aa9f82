package blackjack

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/pkg/entities"
)

const (
	Target                = 21
	DefaultDealerStandsOn = 17
)

// DefaultNaturalPayout is the net multiplier for a two-card 21 (3:2)
var DefaultNaturalPayout = decimal.RequireFromString("1.5")

func GetCardValue(card *entities.Card) int {
	switch card.Rank {
	case entities.Ace:
		return 11
	case entities.Jack, entities.Queen, entities.King:
		return 10
	default:
		val, _ := strconv.Atoi(string(card.Rank))
		return val
	}
}

func IsAce(card *entities.Card) bool {
	return card.Rank == entities.Ace
}

// GetBestScore counts every ace as 11, then drops one ace at a time to 1
// while the total is over 21
func GetBestScore(cards []*entities.Card) int {
	score := 0
	aces := 0

	for _, card := range cards {
		if IsAce(card) {
			aces++
		}
		score += GetCardValue(card)
	}

	for score > Target && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

func IsBlackjack(cards []*entities.Card) bool {
	return len(cards) == 2 && GetBestScore(cards) == Target
}

// IsBust checks if a hand exceeds 21
func IsBust(cards []*entities.Card) bool {
	return GetBestScore(cards) > Target
}

// CompareHands compares a finished player hand with the dealer's and returns:
// 1 if the player wins
// -1 if the dealer wins
// 0 if push (tie)
// Naturals are settled before this point, so only busts and totals count.
func CompareHands(player, dealer []*entities.Card) int {
	if IsBust(player) {
		return -1
	}
	if IsBust(dealer) {
		return 1
	}

	playerScore := GetBestScore(player)
	dealerScore := GetBestScore(dealer)
	if playerScore > dealerScore {
		return 1
	} else if playerScore < dealerScore {
		return -1
	}
	return 0
}
