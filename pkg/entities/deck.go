package entities

// Shuffler supplies the random indices used to permute a deck.
// rng.Provider satisfies it.
type Shuffler interface {
	UniformInt(low, high int) int
}

type Deck struct {
	Cards []*Card
}

// NewDeck creates a new deck of 52 cards, one of each rank and suit
func NewDeck() *Deck {
	cards := make([]*Card, 0, len(Suits)*len(Ranks))

	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}

	return &Deck{Cards: cards}
}

// Shuffle permutes the deck in place with a Fisher-Yates pass
func (d *Deck) Shuffle(r Shuffler) {
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := r.UniformInt(0, i)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() *Card {
	if len(d.Cards) == 0 {
		return nil
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card
}

// Remaining returns how many cards are left
func (d *Deck) Remaining() int {
	return len(d.Cards)
}
