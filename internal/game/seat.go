package game

import "github.com/lox/blackjacktable/internal/deck"

// Status represents a seat's standing within the current round
type Status int

const (
	StatusActive Status = iota
	StatusStanding
	StatusBusted
	StatusBlackjack
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusStanding:
		return "standing"
	case StatusBusted:
		return "busted"
	case StatusBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// ActionTag is an entry in a seat's action log
type ActionTag string

const (
	ActionHit    ActionTag = "hit"
	ActionStand  ActionTag = "stand"
	ActionDouble ActionTag = "double"
	ActionBust   ActionTag = "bust"
)

// Seat is one of the eight player positions at the table
type Seat struct {
	ID      int
	Hand    []deck.Card
	Bet     int
	Score   int
	Status  Status
	Actions []ActionTag
}

// newSeat creates an empty seat with the given position id
func newSeat(id int) *Seat {
	return &Seat{ID: id, Status: StatusActive}
}

// clearHand empties the seat's hand and action log and reactivates it.
// The bet is left alone; bets survive the Betting → Dealing transition.
func (s *Seat) clearHand() {
	s.Hand = nil
	s.Score = 0
	s.Status = StatusActive
	s.Actions = nil
}

// actionable reports whether the seat may still act this round. A seat
// flagged Blackjack keeps its turn; the flag is informational and does not
// force a stand.
func (s *Seat) actionable() bool {
	return s.Status == StatusActive || s.Status == StatusBlackjack
}

// receive appends a card and re-derives score and the blackjack flag
func (s *Seat) receive(c deck.Card) {
	s.Hand = append(s.Hand, c)
	s.Score = Score(s.Hand)
	if s.Score == 21 && s.Status == StatusActive {
		s.Status = StatusBlackjack
	}
}

// Dealer holds the dealer's hand. The dealer takes a single card during the
// initial deal and never acts during the decisions phase.
type Dealer struct {
	Hand  []deck.Card
	Score int
}

// receive appends a card and re-derives the dealer score
func (d *Dealer) receive(c deck.Card) {
	d.Hand = append(d.Hand, c)
	d.Score = Score(d.Hand)
}
