package blackjack

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/tong777/pkg/entities"
	"github.com/fadedpez/tong777/pkg/rng"
)

type RulesTestSuite struct {
	suite.Suite
}

func TestRulesSuite(t *testing.T) {
	suite.Run(t, new(RulesTestSuite))
}

func hand(ranks ...entities.Rank) []*entities.Card {
	cards := make([]*entities.Card, len(ranks))
	for i, r := range ranks {
		cards[i] = entities.NewCard(entities.Hearts, r)
	}
	return cards
}

func (s *RulesTestSuite) TestGetBestScore() {
	testCases := []struct {
		name     string
		cards    []*entities.Card
		expected int
	}{
		{name: "Faces count ten", cards: hand(entities.King, entities.Queen), expected: 20},
		{name: "Soft 21", cards: hand(entities.Ace, entities.Jack), expected: 21},
		{name: "Two aces", cards: hand(entities.Ace, entities.Ace), expected: 12},
		{name: "Two aces and nine", cards: hand(entities.Ace, entities.Ace, entities.Nine), expected: 21},
		{name: "Three aces and nine", cards: hand(entities.Ace, entities.Ace, entities.Ace, entities.Nine), expected: 12},
		{name: "Hard hand with ace", cards: hand(entities.King, entities.Six, entities.Ace), expected: 17},
		{name: "Bust", cards: hand(entities.King, entities.Six, entities.Eight), expected: 24},
		{name: "Empty", cards: nil, expected: 0},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetBestScore(tc.cards))
		})
	}
}

func (s *RulesTestSuite) TestIsBlackjack() {
	s.True(IsBlackjack(hand(entities.Ace, entities.King)))
	s.False(IsBlackjack(hand(entities.Seven, entities.Seven, entities.Seven)))
	s.False(IsBlackjack(hand(entities.Ace, entities.Nine)))
}

func (s *RulesTestSuite) TestCompareHands() {
	s.Equal(-1, CompareHands(hand(entities.King, entities.King, entities.Two), hand(entities.King, entities.King, entities.Five)),
		"A player bust loses even when the dealer busts")
	s.Equal(1, CompareHands(hand(entities.Two, entities.Three), hand(entities.King, entities.Six, entities.Nine)))
	s.Equal(0, CompareHands(hand(entities.Seven, entities.Seven, entities.Seven), hand(entities.Ace, entities.King)),
		"Three-card 21 pushes a dealer natural")
	s.Equal(-1, CompareHands(hand(entities.Ten, entities.Seven), hand(entities.Ten, entities.Eight)))
}

func (s *RulesTestSuite) TestHandStatus() {
	// Setup
	h := NewHand()

	// Execute
	s.NoError(h.AddCard(entities.NewCard(entities.Clubs, entities.King)))
	s.NoError(h.AddCard(entities.NewCard(entities.Clubs, entities.Queen)))
	s.NoError(h.AddCard(entities.NewCard(entities.Clubs, entities.Five)))

	// Assert
	s.Equal(StatusBust, h.Status)
	s.ErrorIs(h.AddCard(entities.NewCard(entities.Clubs, entities.Two)), ErrHandBust)
	s.ErrorIs(h.Stand(), ErrHandBust)
}

func (s *RulesTestSuite) TestHandStand() {
	h := NewHand()
	s.ErrorIs(h.AddCard(nil), ErrInvalidCard)
	s.NoError(h.Stand())
	s.ErrorIs(h.Stand(), ErrHandStand)
	s.ErrorIs(h.AddCard(entities.NewCard(entities.Clubs, entities.Two)), ErrHandStand)
}

func (s *RulesTestSuite) TestShoeReshufflesWhenEmpty() {
	// Setup
	shoe := NewShoe(rng.New(5))

	// Execute
	for i := 0; i < 52; i++ {
		s.NotNil(shoe.Draw())
	}
	s.Equal(0, shoe.Remaining())
	card := shoe.Draw()

	// Assert
	s.NotNil(card, "An empty shoe deals from a fresh deck")
	s.Equal(1, shoe.Reshuffles())
	s.Equal(51, shoe.Remaining())
}

func (s *RulesTestSuite) TestStackDealsInOrder() {
	stack := NewStack(hand(entities.Two, entities.Three)...)

	s.Equal(entities.Two, stack.Draw().Rank)
	s.Equal(entities.Three, stack.Draw().Rank)
	s.Nil(stack.Draw())
}
