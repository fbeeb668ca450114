package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjacktable/internal/deck"
)

var (
	// ErrNotYourTurn is returned when an intent addresses a seat that is
	// not at the active cursor, or one that can no longer act. Boundaries
	// absorb it; late intents from a stale view are expected.
	ErrNotYourTurn = errors.New("seat is not at the active cursor")

	// ErrWrongPhase is returned when an intent is not valid in the
	// current phase
	ErrWrongPhase = errors.New("not valid in current phase")

	// ErrRoundHalted is returned once the shoe has been exhausted; only
	// Restart is accepted afterwards
	ErrRoundHalted = errors.New("round halted after shoe exhaustion")
)

// Config holds the table parameters fixed for the table's lifetime
type Config struct {
	// Decks is the number of 52-card decks in the shoe. Six sustains
	// multi-seat play; one gives the minimal single-round game.
	Decks int

	// MinBet is the minimum bet unit. Unparseable or non-positive bet
	// input is coerced to this value.
	MinBet int

	// TickInterval is the period of the automatic dealing and automatic
	// decisions drivers
	TickInterval time.Duration
}

// DefaultConfig returns the canonical table configuration: a six-deck
// shoe, a minimum bet of 5 and a 500ms tick.
func DefaultConfig() Config {
	return Config{
		Decks:        6,
		MinBet:       5,
		TickInterval: 500 * time.Millisecond,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Decks <= 0 {
		c.Decks = def.Decks
	}
	if c.MinBet <= 0 {
		c.MinBet = def.MinBet
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	return c
}

// Table owns the round state machine. All intents and timer ticks are
// serialized through a single mutex, so every transition is atomic: a
// snapshot taken between any two operations observes a complete state.
type Table struct {
	mu     sync.Mutex
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand
	policy DecisionPolicy
	bus    EventBus

	round  *Round
	halted bool

	// gen increments on every phase change, restart and driver stop;
	// tick handlers capture it at start and refuse to apply stale
	// transitions
	gen int

	dealCancel context.CancelFunc
	autoCancel context.CancelFunc
}

// NewTable creates a table with a fresh round in the Betting phase
func NewTable(cfg Config, policy DecisionPolicy, rng *rand.Rand, logger *log.Logger, clock quartz.Clock) *Table {
	cfg = cfg.withDefaults()
	t := &Table{
		cfg:    cfg,
		logger: logger.WithPrefix("table"),
		clock:  clock,
		rng:    rng,
		policy: policy,
		bus:    NewEventBus(),
		round:  newRound(cfg.Decks, rng),
	}
	return t
}

// Bus returns the table's event bus for subscribing to table events
func (t *Table) Bus() EventBus {
	return t.bus
}

// Config returns the table configuration
func (t *Table) Config() Config {
	return t.cfg
}

// publish delivers events to the bus after the table lock has been
// released, so subscribers may safely call back into the table.
func (t *Table) publish(events []Event) {
	for _, e := range events {
		t.bus.Publish(e)
	}
}

// SubmitBet records a bet for the seat at the betting cursor and advances
// the cursor. Unparseable or non-positive amounts are coerced to the
// minimum bet. Once all seats have bet, the round moves to Dealing.
func (t *Table) SubmitBet(seatID int, amount string) error {
	t.mu.Lock()
	events, err := t.submitBetLocked(seatID, amount)
	t.mu.Unlock()
	t.publish(events)
	return err
}

func (t *Table) submitBetLocked(seatID int, amount string) ([]Event, error) {
	if t.halted {
		return nil, ErrRoundHalted
	}
	r := t.round
	if r.Phase != PhaseBetting {
		return nil, fmt.Errorf("submit bet: %w", ErrWrongPhase)
	}
	if seatID != r.ActiveSeat || seatID < 0 || seatID >= NumSeats {
		return nil, fmt.Errorf("submit bet for seat %d: %w", seatID, ErrNotYourTurn)
	}

	bet := t.parseBet(amount)
	r.Seats[seatID].Bet = bet
	t.logger.Debug("bet placed", "seat", seatID, "bet", bet)

	events := []Event{BetPlacedEvent{Seat: seatID, Amount: bet, timestamp: time.Now()}}
	r.ActiveSeat++
	if r.ActiveSeat >= NumSeats {
		events = append(events, t.beginDealingLocked()...)
	}
	return events, nil
}

// parseBet turns raw bet input into a bet amount. Anything that does not
// parse to a positive integer becomes the minimum bet; amounts above the
// minimum are taken as-is even when not a multiple of the unit.
func (t *Table) parseBet(amount string) int {
	n, err := strconv.Atoi(strings.TrimSpace(amount))
	if err != nil || n <= 0 {
		t.logger.Debug("coercing invalid bet to minimum", "input", amount, "min", t.cfg.MinBet)
		return t.cfg.MinBet
	}
	return n
}

// beginDealingLocked moves the round into the Dealing phase: a fresh
// shoe, cleared hands, deal cursor at zero. Bets survive.
func (t *Table) beginDealingLocked() []Event {
	r := t.round
	r.Phase = PhaseDealing
	r.Shoe = deck.NewShoe(t.cfg.Decks, t.rng)
	for _, s := range r.Seats {
		s.clearHand()
	}
	r.Dealer.Hand = nil
	r.Dealer.Score = 0
	r.DealCursor = 0
	t.gen++
	t.logger.Info("all bets placed, entering dealing phase", "decks", t.cfg.Decks, "shoe", r.Shoe.Remaining())
	return []Event{PhaseChangedEvent{Phase: PhaseDealing, timestamp: time.Now()}}
}

// DealNextCard deals the next card of the fixed initial-deal order: one
// card to each seat, one to the dealer, then a second card to each seat.
// It is the manual drive for the Dealing phase; StartDealing invokes the
// same transition on a timer. When the order is complete the round moves
// to Decisions.
func (t *Table) DealNextCard() error {
	t.mu.Lock()
	events, err := t.dealOneLocked()
	t.mu.Unlock()
	t.publish(events)
	return err
}

func (t *Table) dealOneLocked() ([]Event, error) {
	if t.halted {
		return nil, ErrRoundHalted
	}
	r := t.round
	if r.Phase != PhaseDealing {
		return nil, fmt.Errorf("deal: %w", ErrWrongPhase)
	}

	card, err := r.Shoe.Draw()
	if err != nil {
		return t.haltLocked(), fmt.Errorf("deal: %w", err)
	}

	target := dealTarget(r.DealCursor)
	if target < 0 {
		r.Dealer.receive(card)
	} else {
		r.Seats[target].receive(card)
	}
	events := []Event{CardDealtEvent{Seat: target, Card: card, Cursor: r.DealCursor, timestamp: time.Now()}}
	t.logger.Debug("card dealt", "cursor", r.DealCursor, "seat", target, "card", card.String())

	r.DealCursor++
	if r.DealCursor >= initialDealCards {
		t.stopDealingLocked()
		r.Phase = PhaseDecisions
		r.ActiveSeat = 0
		t.gen++
		t.logger.Info("initial deal complete, entering decisions phase", "shoe", r.Shoe.Remaining())
		events = append(events, PhaseChangedEvent{Phase: PhaseDecisions, timestamp: time.Now()})
	}
	return events, nil
}

// Hit draws one card for the seat at the decisions cursor. The seat keeps
// its turn unless the draw busts it.
func (t *Table) Hit(seatID int) error {
	t.mu.Lock()
	events, err := t.hitLocked(seatID)
	t.mu.Unlock()
	t.publish(events)
	return err
}

func (t *Table) hitLocked(seatID int) ([]Event, error) {
	seat, err := t.actingSeatLocked(seatID)
	if err != nil {
		return nil, fmt.Errorf("hit: %w", err)
	}

	card, err := t.round.Shoe.Draw()
	if err != nil {
		return t.haltLocked(), fmt.Errorf("hit: %w", err)
	}
	seat.receive(card)
	seat.Actions = append(seat.Actions, ActionHit)

	advance := false
	if seat.Score > 21 {
		seat.Status = StatusBusted
		seat.Actions = append(seat.Actions, ActionBust)
		advance = true
	}
	t.logger.Debug("hit", "seat", seatID, "card", card.String(), "score", seat.Score, "status", seat.Status.String())

	events := []Event{SeatActedEvent{Seat: seatID, Action: ActionHit, Score: seat.Score, Status: seat.Status, timestamp: time.Now()}}
	if advance {
		events = append(events, t.advanceCursorLocked()...)
	}
	return events, nil
}

// Stand ends the turn for the seat at the decisions cursor
func (t *Table) Stand(seatID int) error {
	t.mu.Lock()
	events, err := t.standLocked(seatID)
	t.mu.Unlock()
	t.publish(events)
	return err
}

func (t *Table) standLocked(seatID int) ([]Event, error) {
	seat, err := t.actingSeatLocked(seatID)
	if err != nil {
		return nil, fmt.Errorf("stand: %w", err)
	}

	seat.Actions = append(seat.Actions, ActionStand)
	seat.Status = StatusStanding
	t.logger.Debug("stand", "seat", seatID, "score", seat.Score)

	events := []Event{SeatActedEvent{Seat: seatID, Action: ActionStand, Score: seat.Score, Status: seat.Status, timestamp: time.Now()}}
	events = append(events, t.advanceCursorLocked()...)
	return events, nil
}

// Double doubles the seat's bet and draws exactly one final card. The
// cursor always advances afterwards, bust or not.
func (t *Table) Double(seatID int) error {
	t.mu.Lock()
	events, err := t.doubleLocked(seatID)
	t.mu.Unlock()
	t.publish(events)
	return err
}

func (t *Table) doubleLocked(seatID int) ([]Event, error) {
	seat, err := t.actingSeatLocked(seatID)
	if err != nil {
		return nil, fmt.Errorf("double: %w", err)
	}
	// Double must draw exactly one card, so the shoe is checked before
	// the bet is touched.
	if t.round.Shoe.IsEmpty() {
		return t.haltLocked(), fmt.Errorf("double: %w", deck.ErrShoeEmpty)
	}

	seat.Bet *= 2
	card, err := t.round.Shoe.Draw()
	if err != nil {
		return t.haltLocked(), fmt.Errorf("double: %w", err)
	}
	seat.receive(card)
	seat.Actions = append(seat.Actions, ActionHit)
	if seat.Score > 21 {
		seat.Status = StatusBusted
		seat.Actions = append(seat.Actions, ActionBust)
	}
	t.logger.Debug("double", "seat", seatID, "bet", seat.Bet, "card", card.String(), "score", seat.Score, "status", seat.Status.String())

	events := []Event{SeatActedEvent{Seat: seatID, Action: ActionDouble, Score: seat.Score, Status: seat.Status, timestamp: time.Now()}}
	events = append(events, t.advanceCursorLocked()...)
	return events, nil
}

// actingSeatLocked validates a decisions-phase intent and returns the
// seat it addresses
func (t *Table) actingSeatLocked(seatID int) (*Seat, error) {
	if t.halted {
		return nil, ErrRoundHalted
	}
	r := t.round
	if r.Phase != PhaseDecisions {
		return nil, ErrWrongPhase
	}
	if seatID != r.ActiveSeat || seatID < 0 || seatID >= NumSeats {
		return nil, fmt.Errorf("seat %d: %w", seatID, ErrNotYourTurn)
	}
	seat := r.Seats[seatID]
	if !seat.actionable() {
		return nil, fmt.Errorf("seat %d already %s: %w", seatID, seat.Status, ErrNotYourTurn)
	}
	return seat, nil
}

// advanceCursorLocked moves the decisions cursor to the next seat. Moving
// past the last seat ends the round; it then waits for an explicit
// restart.
func (t *Table) advanceCursorLocked() []Event {
	r := t.round
	r.ActiveSeat++
	if r.ActiveSeat >= NumSeats {
		t.stopAutoPlayLocked()
		t.logger.Info("all seats resolved, round finished")
		return []Event{RoundFinishedEvent{timestamp: time.Now()}}
	}
	return nil
}

// Restart discards the current round from any phase and starts a new one
// in the Betting phase with cleared seats and a freshly shuffled shoe.
func (t *Table) Restart() {
	t.mu.Lock()
	t.stopDealingLocked()
	t.stopAutoPlayLocked()
	t.gen++
	t.halted = false
	t.round = newRound(t.cfg.Decks, t.rng)
	t.logger.Info("round restarted")
	t.mu.Unlock()
	t.publish([]Event{RoundRestartedEvent{timestamp: time.Now()}})
}

// haltLocked freezes the round after a draw from an exhausted shoe. A
// six-deck shoe cannot run out during the bounded automated game, but the
// condition stays checked rather than undefined.
func (t *Table) haltLocked() []Event {
	t.halted = true
	t.stopDealingLocked()
	t.stopAutoPlayLocked()
	t.logger.Error("shoe exhausted, round halted until restart")
	return []Event{ShoeExhaustedEvent{timestamp: time.Now()}}
}
