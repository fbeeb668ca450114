package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjacktable/internal/game"
	"github.com/lox/blackjacktable/internal/randutil"
	"github.com/lox/blackjacktable/internal/server"
)

// ServeCmd runs the websocket table server
type ServeCmd struct {
	Config string `kong:"default='blackjack.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address (overrides config and BLACKJACK_ADDR)'"`
	Decks  int    `kong:"help='Shoe deck count override'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := setupLogger(c.Debug)

	// Optional .env for deployment overrides; absent files are fine.
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if addr := os.Getenv("BLACKJACK_ADDR"); addr != "" {
		cfg.Server.Address = addr
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Decks > 0 {
		cfg.Game.Decks = c.Decks
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("using deterministic seed", "seed", seed)
	}
	rng := randutil.New(seed)

	table := game.NewTable(cfg.GameConfig(), game.NewRandomPolicy(rng), rng, logger, quartz.NewReal())
	srv := server.NewServer(cfg.Server.Address, table, logger)

	logger.Info("starting blackjack table",
		"addr", cfg.Server.Address,
		"decks", cfg.Game.Decks,
		"min_bet", cfg.Game.MinBet,
		"tick_ms", cfg.Game.TickMillis)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		return nil
	})
	return g.Wait()
}
