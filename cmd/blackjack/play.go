package main

import (
	"time"

	"github.com/coder/quartz"

	"github.com/lox/blackjacktable/internal/game"
	"github.com/lox/blackjacktable/internal/randutil"
	"github.com/lox/blackjacktable/internal/tui"
)

// PlayCmd runs the table locally with a terminal view
type PlayCmd struct {
	Decks  int    `kong:"default='6',help='Shoe deck count (6 for sustained play, 1 for a single round)'"`
	MinBet int    `kong:"default='5',help='Minimum bet unit'"`
	TickMs int    `kong:"default='500',help='Automatic dealing/decisions tick in milliseconds'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging to blackjack.log'"`
}

func (c *PlayCmd) Run() error {
	// The TUI owns the terminal; logs go to a file.
	logger := setupFileLogger("blackjack.log", c.Debug)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)

	cfg := game.Config{
		Decks:        c.Decks,
		MinBet:       c.MinBet,
		TickInterval: time.Duration(c.TickMs) * time.Millisecond,
	}
	table := game.NewTable(cfg, game.NewRandomPolicy(rng), rng, logger, quartz.NewReal())

	return tui.Run(table, logger)
}
