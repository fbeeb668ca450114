package game

import (
	rand "math/rand/v2"

	"github.com/lox/blackjacktable/internal/deck"
)

const (
	// NumSeats is the fixed number of player positions per round
	NumSeats = 8

	// initialDealCards is the length of the fixed initial-deal order:
	// one card to each seat, one to the dealer, then a second card to
	// each seat. The dealer takes only a single card during the initial
	// deal; that asymmetry is deliberate.
	initialDealCards = NumSeats*2 + 1

	// dealerCursor is the position of the dealer's card within the fixed
	// deal order
	dealerCursor = NumSeats
)

// Phase is the round state machine phase
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseDealing
	PhaseDecisions
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhaseDecisions:
		return "decisions"
	default:
		return "unknown"
	}
}

// Round is the state for a single round: the eight seats, the dealer, the
// shoe, and the two cursors. ActiveSeat designates the seat allowed to act
// during Betting and Decisions; DealCursor indexes the fixed deal order and
// is meaningful only during Dealing.
type Round struct {
	Phase      Phase
	Seats      [NumSeats]*Seat
	Dealer     *Dealer
	Shoe       *deck.Shoe
	ActiveSeat int
	DealCursor int
}

// newRound creates a fresh round in the Betting phase with empty seats and
// a newly shuffled shoe
func newRound(decks int, rng *rand.Rand) *Round {
	r := &Round{
		Phase:  PhaseBetting,
		Dealer: &Dealer{},
		Shoe:   deck.NewShoe(decks, rng),
	}
	for i := range r.Seats {
		r.Seats[i] = newSeat(i)
	}
	return r
}

// dealTarget maps a deal-order position to a seat index, or -1 for the
// dealer's single card.
func dealTarget(cursor int) int {
	switch {
	case cursor < NumSeats:
		return cursor
	case cursor == dealerCursor:
		return -1
	default:
		return cursor - NumSeats - 1
	}
}

// finished reports whether the decisions cursor has moved past the last
// seat, ending the round. The round then waits for an explicit restart.
func (r *Round) finished() bool {
	return r.Phase == PhaseDecisions && r.ActiveSeat >= NumSeats
}
