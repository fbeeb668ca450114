package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjacktable/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings contains the table parameters. These are recognized
// options fixed at startup, not runtime-mutable values.
type GameSettings struct {
	Decks      int `hcl:"decks,optional"`
	MinBet     int `hcl:"min_bet,optional"`
	TickMillis int `hcl:"tick_millis,optional"`
}

// DefaultConfig returns the default server configuration: the canonical
// six-deck table on localhost
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost:8080",
			LogLevel: "info",
		},
		Game: GameSettings{
			Decks:      6,
			MinBet:     5,
			TickMillis: 500,
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	def := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = def.Server.Address
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = def.Server.LogLevel
	}
	if config.Game.Decks == 0 {
		config.Game.Decks = def.Game.Decks
	}
	if config.Game.MinBet == 0 {
		config.Game.MinBet = def.Game.MinBet
	}
	if config.Game.TickMillis == 0 {
		config.Game.TickMillis = def.Game.TickMillis
	}

	return &config, nil
}

// GameConfig converts the game settings into a table configuration
func (c *Config) GameConfig() game.Config {
	return game.Config{
		Decks:        c.Game.Decks,
		MinBet:       c.Game.MinBet,
		TickInterval: time.Duration(c.Game.TickMillis) * time.Millisecond,
	}
}
