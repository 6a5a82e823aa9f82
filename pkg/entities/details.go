package entities

import (
	"fmt"
	"strings"
)

// HighLowDetails records the two draws and the guess
type HighLowDetails struct {
	First  int    `json:"first"`
	Second int    `json:"second"`
	Guess  Choice `json:"guess"`
}

func (d *HighLowDetails) GameType() GameKind { return GameHighLow }

func (d *HighLowDetails) Describe() string {
	return fmt.Sprintf("first %d, second %d, guessed %s", d.First, d.Second, d.Guess)
}

// CoinFlipDetails records the call and the landed face
type CoinFlipDetails struct {
	Guess Choice `json:"guess"`
	Face  Choice `json:"face"`
}

func (d *CoinFlipDetails) GameType() GameKind { return GameCoinFlip }

func (d *CoinFlipDetails) Describe() string {
	return fmt.Sprintf("called %s, landed %s", d.Guess, d.Face)
}

// BlackjackDetails records both final hands
type BlackjackDetails struct {
	PlayerCards []*Card `json:"player_cards"`
	DealerCards []*Card `json:"dealer_cards"`
	PlayerTotal int     `json:"player_total"`
	DealerTotal int     `json:"dealer_total"`
}

func (d *BlackjackDetails) GameType() GameKind { return GameBlackjack }

func (d *BlackjackDetails) Describe() string {
	return fmt.Sprintf("player %s (%d), dealer %s (%d)",
		FormatCards(d.PlayerCards), d.PlayerTotal, FormatCards(d.DealerCards), d.DealerTotal)
}

// Symbol is a slot reel face
type Symbol string

// SlotsDetails records the reels and the tier they landed in
type SlotsDetails struct {
	Reels      [3]Symbol `json:"reels"`
	Specials   int       `json:"specials"`
	Multiplier int64     `json:"multiplier"`
}

func (d *SlotsDetails) GameType() GameKind { return GameSlots }

func (d *SlotsDetails) Describe() string {
	return fmt.Sprintf("| %s | %s | %s |", d.Reels[0], d.Reels[1], d.Reels[2])
}

// FormatCards joins cards with spaces
func FormatCards(cards []*Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
