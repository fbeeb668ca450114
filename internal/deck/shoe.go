package deck

import (
	"errors"

	rand "math/rand/v2"
)

// ErrShoeEmpty is returned when a draw is attempted on an exhausted shoe.
var ErrShoeEmpty = errors.New("shoe is empty")

// Shoe holds the ordered pool of undealt cards for one or more 52-card
// decks. The last card in the sequence is treated as the top of the shoe.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe builds a shoe of decks × 52 cards and shuffles it with the
// provided rng. Deck counts below one are clamped to a single deck.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		decks = 1
	}

	s := &Shoe{
		cards: make([]Card, 0, decks*52),
		rng:   rng,
	}
	for d := 0; d < decks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.shuffle()

	return s
}

// NewOrderedShoe returns a shoe containing exactly the given cards in order,
// without shuffling. The last card is drawn first. Used to stage
// deterministic deals in tests.
func NewOrderedShoe(cards []Card) *Shoe {
	s := &Shoe{cards: make([]Card, len(cards))}
	copy(s.cards, cards)
	return s
}

// shuffle applies a Fisher-Yates shuffle over the whole shoe.
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card of the shoe.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeEmpty
	}

	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card, nil
}

// Remaining returns the number of undealt cards.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// IsEmpty returns true if the shoe has no cards left.
func (s *Shoe) IsEmpty() bool {
	return len(s.cards) == 0
}
