package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjacktable/internal/deck"
)

func card(suit deck.Suit, rank deck.Rank) deck.Card {
	return deck.NewCard(suit, rank)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		hand []deck.Card
		want int
	}{
		{name: "empty hand", hand: nil, want: 0},
		{name: "ace plus king", hand: []deck.Card{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.King)}, want: 21},
		{name: "two aces", hand: []deck.Card{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Ace)}, want: 12},
		{name: "two aces and nine", hand: []deck.Card{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Ace), card(deck.Clubs, deck.Nine)}, want: 21},
		{name: "bust without aces", hand: []deck.Card{card(deck.Spades, deck.King), card(deck.Hearts, deck.Queen), card(deck.Clubs, deck.Five)}, want: 25},
		{name: "ace reduced once", hand: []deck.Card{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Nine), card(deck.Clubs, deck.Five)}, want: 15},
		{name: "all aces reduced", hand: []deck.Card{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.Ace), card(deck.Clubs, deck.Ace), card(deck.Diamonds, deck.Ace)}, want: 14},
		{name: "face cards", hand: []deck.Card{card(deck.Spades, deck.Jack), card(deck.Hearts, deck.Queen)}, want: 20},
		{name: "ten and ace", hand: []deck.Card{card(deck.Diamonds, deck.Ten), card(deck.Spades, deck.Ace)}, want: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.hand))
		})
	}
}

func TestScoreOrderInvariant(t *testing.T) {
	a := []deck.Card{card(deck.Spades, deck.Ace), card(deck.Hearts, deck.King), card(deck.Clubs, deck.Five)}
	b := []deck.Card{card(deck.Clubs, deck.Five), card(deck.Spades, deck.Ace), card(deck.Hearts, deck.King)}
	c := []deck.Card{card(deck.Hearts, deck.King), card(deck.Clubs, deck.Five), card(deck.Spades, deck.Ace)}

	assert.Equal(t, Score(a), Score(b))
	assert.Equal(t, Score(b), Score(c))
	assert.Equal(t, 16, Score(a))
}
