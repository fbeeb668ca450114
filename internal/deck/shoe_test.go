package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacktable/internal/randutil"
)

func TestNewShoeComposition(t *testing.T) {
	tests := []struct {
		name  string
		decks int
		want  int
	}{
		{name: "single deck", decks: 1, want: 52},
		{name: "six decks", decks: 6, want: 312},
		{name: "clamped to one deck", decks: 0, want: 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShoe(tt.decks, randutil.New(1))
			require.Equal(t, tt.want, s.Remaining())

			// Every (rank, suit) pair appears exactly once per sub-deck.
			counts := make(map[Card]int)
			for !s.IsEmpty() {
				c, err := s.Draw()
				require.NoError(t, err)
				counts[c]++
			}
			expected := tt.decks
			if expected < 1 {
				expected = 1
			}
			assert.Len(t, counts, 52)
			for card, n := range counts {
				assert.Equal(t, expected, n, "count for %s", card)
			}
		})
	}
}

func TestShoeDrawFromTop(t *testing.T) {
	s := NewOrderedShoe([]Card{
		NewCard(Spades, Two),
		NewCard(Hearts, King),
		NewCard(Clubs, Ace),
	})

	c, err := s.Draw()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Clubs, Ace), c)
	assert.Equal(t, 2, s.Remaining())

	c, err = s.Draw()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Hearts, King), c)

	c, err = s.Draw()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Spades, Two), c)

	_, err = s.Draw()
	assert.ErrorIs(t, err, ErrShoeEmpty)
	assert.True(t, s.IsEmpty())
}

func TestShoeShuffleDeterministicWithSeed(t *testing.T) {
	a := NewShoe(6, randutil.New(42))
	b := NewShoe(6, randutil.New(42))

	for a.Remaining() > 0 {
		ca, err := a.Draw()
		require.NoError(t, err)
		cb, err := b.Draw()
		require.NoError(t, err)
		require.Equal(t, ca, cb)
	}
}

func TestShoeDifferentSeedsDiffer(t *testing.T) {
	a := NewShoe(1, randutil.New(1))
	b := NewShoe(1, randutil.New(2))

	same := true
	for a.Remaining() > 0 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			same = false
			break
		}
	}
	assert.False(t, same, "different seeds should produce different orderings")
}
