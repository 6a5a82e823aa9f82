package blackjack

import (
	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/rng"
)

// CardSource deals the cards for one hand. A nil card means the source is exhausted.
type CardSource interface {
	Draw() *entities.Card
}

// Shoe is a single 52-card deck shuffled by the provider. When it runs dry
// a fresh deck is shuffled in, so callers never see it empty.
type Shoe struct {
	deck       *entities.Deck
	rng        rng.Provider
	reshuffles int
}

// NewShoe creates a freshly shuffled shoe
func NewShoe(p rng.Provider) *Shoe {
	s := &Shoe{rng: p}
	s.deck = s.freshDeck()
	return s
}

func (s *Shoe) freshDeck() *entities.Deck {
	deck := entities.NewDeck()
	deck.Shuffle(s.rng)
	return deck
}

// Draw removes and returns the top card, reshuffling a new deck in if needed
func (s *Shoe) Draw() *entities.Card {
	card := s.deck.Draw()
	if card == nil {
		// Only create a new deck if we're completely out of cards
		s.deck = s.freshDeck()
		s.reshuffles++
		card = s.deck.Draw()
	}
	return card
}

// Remaining returns the cards left before the next reshuffle
func (s *Shoe) Remaining() int {
	return s.deck.Remaining()
}

// Reshuffles counts how many times the shoe replaced an empty deck
func (s *Shoe) Reshuffles() int {
	return s.reshuffles
}

// Stack deals a fixed sequence of cards, top first. It is used to replay or
// force a hand; once empty it yields nil.
type Stack struct {
	cards []*entities.Card
}

// NewStack creates a stack that deals cards in the given order
func NewStack(cards ...*entities.Card) *Stack {
	return &Stack{cards: append([]*entities.Card(nil), cards...)}
}

// Draw pops the next card
func (s *Stack) Draw() *entities.Card {
	if len(s.cards) == 0 {
		return nil
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}
