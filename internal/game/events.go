package game

import (
	"sync"
	"time"

	"github.com/lox/blackjacktable/internal/deck"
)

// EventType represents a table event type with type safety
type EventType string

const (
	EventTypeBetPlaced      EventType = "bet_placed"
	EventTypePhaseChanged   EventType = "phase_changed"
	EventTypeCardDealt      EventType = "card_dealt"
	EventTypeSeatActed      EventType = "seat_acted"
	EventTypeRoundFinished  EventType = "round_finished"
	EventTypeRoundRestarted EventType = "round_restarted"
	EventTypeShoeExhausted  EventType = "shoe_exhausted"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents anything that happens at the table worth observing
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// BetPlacedEvent is published when a seat's bet is accepted
type BetPlacedEvent struct {
	Seat      int
	Amount    int
	timestamp time.Time
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }
func (e BetPlacedEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangedEvent is published when the round moves to a new phase
type PhaseChangedEvent struct {
	Phase     Phase
	timestamp time.Time
}

func (e PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }
func (e PhaseChangedEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for each card of the initial deal. Seat is
// -1 when the card went to the dealer.
type CardDealtEvent struct {
	Seat      int
	Card      deck.Card
	Cursor    int
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// SeatActedEvent is published when a seat hits, stands or doubles
type SeatActedEvent struct {
	Seat      int
	Action    ActionTag
	Score     int
	Status    Status
	timestamp time.Time
}

func (e SeatActedEvent) EventType() EventType { return EventTypeSeatActed }
func (e SeatActedEvent) Timestamp() time.Time { return e.timestamp }

// RoundFinishedEvent is published when the decisions cursor moves past the
// last seat
type RoundFinishedEvent struct {
	timestamp time.Time
}

func (e RoundFinishedEvent) EventType() EventType { return EventTypeRoundFinished }
func (e RoundFinishedEvent) Timestamp() time.Time { return e.timestamp }

// RoundRestartedEvent is published when a new round replaces the current one
type RoundRestartedEvent struct {
	timestamp time.Time
}

func (e RoundRestartedEvent) EventType() EventType { return EventTypeRoundRestarted }
func (e RoundRestartedEvent) Timestamp() time.Time { return e.timestamp }

// ShoeExhaustedEvent is published when a draw hits an empty shoe. The round
// is halted until restarted.
type ShoeExhaustedEvent struct {
	timestamp time.Time
}

func (e ShoeExhaustedEvent) EventType() EventType { return EventTypeShoeExhausted }
func (e ShoeExhaustedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to table events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new in-memory event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to the bus
func (b *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from the bus
func (b *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subscribers {
		if s == subscriber {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to all subscribers in subscription order
func (b *SimpleEventBus) Publish(event Event) {
	b.mu.RLock()
	subs := make([]EventSubscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subs {
		s.OnEvent(event)
	}
}
