package game

import (
	"context"
	"errors"
	"fmt"
)

// errTickerDone stops a quartz TickerFunc once its phase is over or a
// stale tick is detected
var errTickerDone = errors.New("ticker done")

// StartDealing begins automatic dealing: one card per tick until the
// initial deal order is complete. Any other driver is stopped first; at
// most one timer mutates the table at a time.
func (t *Table) StartDealing() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.halted {
		return ErrRoundHalted
	}
	if t.round.Phase != PhaseDealing {
		return fmt.Errorf("start dealing: %w", ErrWrongPhase)
	}

	t.stopAutoPlayLocked()
	t.stopDealingLocked()

	ctx, cancel := context.WithCancel(context.Background())
	t.dealCancel = cancel
	gen := t.gen
	t.logger.Info("automatic dealing started", "interval", t.cfg.TickInterval)
	t.clock.TickerFunc(ctx, t.cfg.TickInterval, func() error {
		return t.dealTick(gen)
	}, "deal")
	return nil
}

// StopDealing stops the automatic dealing driver. Manual DealNextCard
// ticks remain available.
func (t *Table) StopDealing() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopDealingLocked()
}

func (t *Table) stopDealingLocked() {
	if t.dealCancel != nil {
		t.dealCancel()
		t.dealCancel = nil
		t.gen++
	}
}

// dealTick is one automatic dealing step. The generation check rejects
// ticks scheduled before a phase change or restart.
func (t *Table) dealTick(gen int) error {
	t.mu.Lock()
	if t.halted || t.gen != gen || t.round.Phase != PhaseDealing {
		t.mu.Unlock()
		return errTickerDone
	}
	events, err := t.dealOneLocked()
	done := err != nil || t.round.Phase != PhaseDealing
	t.mu.Unlock()

	t.publish(events)
	if done {
		return errTickerDone
	}
	return nil
}

// StartAutoPlay begins the automated decisions mode: on each tick the seat
// at the cursor has hit or stand chosen by the table's decision policy.
// Double is never chosen automatically. This is a distinct drive for
// unattended play, not to be mixed with user intents on the same seat.
func (t *Table) StartAutoPlay() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.halted {
		return ErrRoundHalted
	}
	if t.round.Phase != PhaseDecisions || t.round.finished() {
		return fmt.Errorf("start auto-play: %w", ErrWrongPhase)
	}

	t.stopDealingLocked()
	t.stopAutoPlayLocked()

	ctx, cancel := context.WithCancel(context.Background())
	t.autoCancel = cancel
	gen := t.gen
	t.logger.Info("auto-play started", "interval", t.cfg.TickInterval)
	t.clock.TickerFunc(ctx, t.cfg.TickInterval, func() error {
		return t.autoPlayTick(gen)
	}, "autoplay")
	return nil
}

// StopAutoPlay stops the automated decisions driver
func (t *Table) StopAutoPlay() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopAutoPlayLocked()
}

func (t *Table) stopAutoPlayLocked() {
	if t.autoCancel != nil {
		t.autoCancel()
		t.autoCancel = nil
		t.gen++
	}
}

// autoPlayTick applies one policy-chosen action for the seat at the cursor
func (t *Table) autoPlayTick(gen int) error {
	t.mu.Lock()
	if t.halted || t.gen != gen || t.round.Phase != PhaseDecisions || t.round.finished() {
		t.mu.Unlock()
		return errTickerDone
	}

	var events []Event
	var err error
	seat := t.round.Seats[t.round.ActiveSeat]
	if !seat.actionable() {
		events = t.advanceCursorLocked()
	} else {
		switch t.policy.Decide(seat) {
		case DecideHit:
			events, err = t.hitLocked(seat.ID)
		default:
			events, err = t.standLocked(seat.ID)
		}
	}
	done := err != nil || t.halted || t.round.finished()
	t.mu.Unlock()

	t.publish(events)
	if done {
		return errTickerDone
	}
	return nil
}
