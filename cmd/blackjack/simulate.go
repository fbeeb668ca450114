package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/blackjacktable/internal/game"
	"github.com/lox/blackjacktable/internal/randutil"
)

// SimulateCmd plays one complete unattended round: minimum bets, automatic
// dealing, then random hit/stand decisions for every seat.
type SimulateCmd struct {
	Decks  int   `kong:"default='6',help='Shoe deck count'"`
	Bet    int   `kong:"default='5',help='Bet placed for every seat'"`
	TickMs int   `kong:"default='25',help='Tick interval in milliseconds'"`
	Seed   int64 `kong:"default='0',help='RNG seed; 0 uses the current time'"`
	Debug  bool  `kong:"help='Enable debug logging'"`
}

// roundWatcher starts auto-play once dealing finishes and signals when the
// round is over
type roundWatcher struct {
	table *game.Table
	done  chan struct{}
	once  sync.Once
}

func (w *roundWatcher) OnEvent(e game.Event) {
	switch ev := e.(type) {
	case game.PhaseChangedEvent:
		if ev.Phase == game.PhaseDecisions {
			if err := w.table.StartAutoPlay(); err != nil {
				w.once.Do(func() { close(w.done) })
			}
		}
	case game.RoundFinishedEvent, game.ShoeExhaustedEvent:
		w.once.Do(func() { close(w.done) })
	}
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("simulating round", "seed", seed, "decks", c.Decks)

	rng := randutil.New(seed)
	cfg := game.Config{
		Decks:        c.Decks,
		TickInterval: time.Duration(c.TickMs) * time.Millisecond,
	}
	table := game.NewTable(cfg, game.NewRandomPolicy(rng), rng, logger, quartz.NewReal())

	watcher := &roundWatcher{table: table, done: make(chan struct{})}
	table.Bus().Subscribe(watcher)

	for i := 0; i < game.NumSeats; i++ {
		if err := table.SubmitBet(i, strconv.Itoa(c.Bet)); err != nil {
			return err
		}
	}
	if err := table.StartDealing(); err != nil {
		return err
	}

	select {
	case <-watcher.done:
	case <-time.After(2 * time.Minute):
		return fmt.Errorf("simulation did not finish")
	}

	printSnapshot(table.Snapshot())
	return nil
}

func printSnapshot(snap game.Snapshot) {
	fmt.Printf("dealer   %-24s (%d)\n", strings.Join(snap.Dealer.Hand, " "), snap.Dealer.Score)
	for _, s := range snap.Seats {
		fmt.Printf("seat %d   %-24s (%2d)  bet %-4d %s\n",
			s.ID, strings.Join(s.Hand, " "), s.Score, s.Bet, s.Status)
	}
	fmt.Printf("shoe     %d cards remaining\n", snap.ShoeRemaining)
}
