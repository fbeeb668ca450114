package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.Server.Address)
	assert.Equal(t, 6, cfg.Game.Decks)
	assert.Equal(t, 5, cfg.Game.MinBet)
	assert.Equal(t, 500, cfg.Game.TickMillis)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
server {
  address = "127.0.0.1:9090"
}

game {
  decks       = 1
  tick_millis = 100
}
`
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address)
	assert.Equal(t, 1, cfg.Game.Decks)
	assert.Equal(t, 100, cfg.Game.TickMillis)

	// Unset values fall back to defaults.
	assert.Equal(t, 5, cfg.Game.MinBet)
	assert.Equal(t, "info", cfg.Server.LogLevel)

	gc := cfg.GameConfig()
	assert.Equal(t, 1, gc.Decks)
	assert.Equal(t, 100*time.Millisecond, gc.TickInterval)
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
