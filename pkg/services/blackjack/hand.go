package blackjack

import (
	"errors"

	"github.com/fadedpez/tong777/pkg/entities"
)

var (
	ErrHandBust    = errors.New("hand is bust")
	ErrHandStand   = errors.New("hand is stand")
	ErrInvalidCard = errors.New("invalid card")
)

// Status represents the current state of the hand
type Status string

const (
	StatusPlaying Status = "PLAYING"
	StatusBust    Status = "BUST"
	StatusStand   Status = "STAND"
)

// Hand represents a hand in a game of blackjack
type Hand struct {
	Cards  []*entities.Card
	Status Status
}

// NewHand creates a new blackjack hand
func NewHand() *Hand {
	return &Hand{
		Cards:  make([]*entities.Card, 0, 4),
		Status: StatusPlaying,
	}
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *entities.Card) error {
	if err := h.checkPlaying(); err != nil {
		return err
	}

	if card == nil {
		return ErrInvalidCard
	}

	h.Cards = append(h.Cards, card)

	// Auto-bust if score exceeds 21
	if IsBust(h.Cards) {
		h.Status = StatusBust
	}

	return nil
}

// Stand marks the hand as stood
func (h *Hand) Stand() error {
	if err := h.checkPlaying(); err != nil {
		return err
	}

	h.Status = StatusStand
	return nil
}

func (h *Hand) checkPlaying() error {
	switch h.Status {
	case StatusBust:
		return ErrHandBust
	case StatusStand:
		return ErrHandStand
	}
	return nil
}

// Value returns the best possible score for the hand
func (h *Hand) Value() int {
	return GetBestScore(h.Cards)
}

// IsNatural reports a two-card 21
func (h *Hand) IsNatural() bool {
	return IsBlackjack(h.Cards)
}
