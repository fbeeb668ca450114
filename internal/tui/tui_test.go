package tui

import (
	"fmt"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacktable/internal/game"
	"github.com/lox/blackjacktable/internal/randutil"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	logger := log.New(io.Discard)
	rng := randutil.New(5)
	tbl := game.NewTable(game.Config{Decks: 1}, game.NewRandomPolicy(rng), rng, logger, quartz.NewReal())
	return NewModel(tbl, logger)
}

func TestViewShowsPhaseAndSeats(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "BETTING")
	assert.Contains(t, view, "Dealer")
	for i := 0; i < game.NumSeats; i++ {
		assert.Contains(t, view, fmt.Sprintf("Seat %d", i))
	}
	assert.Contains(t, view, "Seat 0 to bet")
}

func TestViewTracksTableState(t *testing.T) {
	m := newTestModel(t)

	for i := 0; i < game.NumSeats; i++ {
		require.NoError(t, m.table.SubmitBet(i, "20"))
	}
	m.refresh()

	view := m.View()
	assert.Contains(t, view, "DEALING")
	assert.Contains(t, view, " 20")
}

func TestRestartChordWorksWhileBetting(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.table.SubmitBet(0, "20"))
	m.refresh()

	// Plain r is bet input, not a restart, while betting.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, "r", m.betInput.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	snap := m.table.Snapshot()
	assert.Equal(t, "betting", snap.Phase)
	assert.Equal(t, 0, snap.ActiveSeatIndex)
	for _, s := range snap.Seats {
		assert.Zero(t, s.Bet)
	}
	assert.Empty(t, m.betInput.Value())
	assert.Equal(t, "round restarted", m.status)
}

func TestRestartKeyWorksOutsideBetting(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < game.NumSeats; i++ {
		require.NoError(t, m.table.SubmitBet(i, "10"))
	}
	m.refresh()
	require.Equal(t, "dealing", m.snapshot.Phase)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.Equal(t, "betting", m.table.Snapshot().Phase)
	assert.Equal(t, "round restarted", m.status)
}
