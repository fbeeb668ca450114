package game

// SeatSnapshot is the presentation view of one seat
type SeatSnapshot struct {
	ID      int      `json:"id"`
	Hand    []string `json:"hand"`
	Bet     int      `json:"bet"`
	Score   int      `json:"score"`
	Status  string   `json:"status"`
	Actions []string `json:"actions,omitempty"`
}

// DealerSnapshot is the presentation view of the dealer
type DealerSnapshot struct {
	ID    string   `json:"id"`
	Hand  []string `json:"hand"`
	Score int      `json:"score"`
}

// Snapshot is the complete table state published to presentation
// boundaries. It is a value copy; holding one never blocks the table.
type Snapshot struct {
	Phase           string         `json:"phase"`
	Seats           []SeatSnapshot `json:"seats"`
	Dealer          DealerSnapshot `json:"dealer"`
	ActiveSeatIndex int            `json:"activeSeatIndex"`
	DealCursor      int            `json:"dealCursor"`
	ShoeRemaining   int            `json:"shoeRemaining"`
	Finished        bool           `json:"finished"`
	Halted          bool           `json:"halted"`
}

// Snapshot returns a copy of the current round state
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.round
	snap := Snapshot{
		Phase:           r.Phase.String(),
		Seats:           make([]SeatSnapshot, NumSeats),
		ActiveSeatIndex: r.ActiveSeat,
		DealCursor:      r.DealCursor,
		ShoeRemaining:   r.Shoe.Remaining(),
		Finished:        r.finished(),
		Halted:          t.halted,
	}

	for i, s := range r.Seats {
		ss := SeatSnapshot{
			ID:     s.ID,
			Hand:   make([]string, 0, len(s.Hand)),
			Bet:    s.Bet,
			Score:  s.Score,
			Status: s.Status.String(),
		}
		for _, c := range s.Hand {
			ss.Hand = append(ss.Hand, c.String())
		}
		for _, a := range s.Actions {
			ss.Actions = append(ss.Actions, string(a))
		}
		snap.Seats[i] = ss
	}

	snap.Dealer = DealerSnapshot{
		ID:    "dealer",
		Hand:  make([]string, 0, len(r.Dealer.Hand)),
		Score: r.Dealer.Score,
	}
	for _, c := range r.Dealer.Hand {
		snap.Dealer.Hand = append(snap.Dealer.Hand, c.String())
	}

	return snap
}
