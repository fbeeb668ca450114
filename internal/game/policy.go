package game

import rand "math/rand/v2"

// Decision is a choice made for a seat during the automated decisions mode
type Decision int

const (
	DecideHit Decision = iota
	DecideStand
)

// String returns the string representation of a decision
func (d Decision) String() string {
	if d == DecideHit {
		return "hit"
	}
	return "stand"
}

// DecisionPolicy chooses an action for the seat at the cursor when the
// table is running in automated decisions mode. Doubling is never chosen
// automatically. Implementations must be deterministic for a given rng
// seed so simulations can be replayed.
type DecisionPolicy interface {
	Decide(seat *Seat) Decision
}

// RandomPolicy picks uniformly between hit and stand. Used for unattended
// demonstration play; it is deliberately not a strategy.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy creates a random policy backed by the given rng
func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rng: rng}
}

// Decide implements DecisionPolicy
func (p *RandomPolicy) Decide(*Seat) Decision {
	if p.rng.IntN(2) == 0 {
		return DecideHit
	}
	return DecideStand
}
