package game

import "github.com/lox/blackjacktable/internal/deck"

// Score returns the blackjack value of a hand. Aces count eleven; while the
// total exceeds 21 and an Ace is still counted high, one Ace is reduced to
// one. An empty hand scores zero.
//
// The function is pure: scores are always re-derived from the hand rather
// than accumulated, so the stored score can never drift from the cards.
func Score(hand []deck.Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		if c.IsAce() {
			aces++
		}
		total += c.Value()
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}
