package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjacktable/internal/game"
)

// refreshInterval drives the view refresh. The table mutates on its own
// timers, so the view polls the snapshot rather than owning state.
const refreshInterval = 100 * time.Millisecond

// Model is the Bubble Tea model for the table view. It is a pure
// presentation boundary: it renders snapshots and emits intents.
type Model struct {
	table  *game.Table
	logger *log.Logger
	styles *Styles

	snapshot game.Snapshot
	betInput textinput.Model
	autoplay bool
	status   string
	width    int
	quitting bool
}

type tickMsg time.Time

// NewModel creates a TUI model bound to a table
func NewModel(table *game.Table, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "bet amount"
	ti.CharLimit = 8
	ti.Width = 12
	ti.Prompt = "> "
	ti.Focus()

	return &Model{
		table:    table,
		logger:   logger.WithPrefix("tui"),
		styles:   NewStyles(),
		snapshot: table.Snapshot(),
		betInput: ti,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.snapshot = m.table.Snapshot()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.betInput, cmd = m.betInput.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)
	case "q":
		// Betting keeps q for the input field; elsewhere it quits.
		if m.snapshot.Phase != "betting" {
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
	case "ctrl+r":
		// The bet input owns plain keys while betting, so restart gets a
		// chord that works in every phase.
		return m.restart()
	case "r":
		if m.snapshot.Phase != "betting" {
			return m.restart()
		}
	}

	switch m.snapshot.Phase {
	case "betting":
		if msg.String() == "enter" {
			seat := m.snapshot.ActiveSeatIndex
			amount := m.betInput.Value()
			if err := m.table.SubmitBet(seat, amount); err != nil {
				m.status = fmt.Sprintf("bet refused: %v", err)
			} else {
				m.status = fmt.Sprintf("seat %d bet placed", seat)
				m.betInput.Reset()
			}
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.betInput, cmd = m.betInput.Update(msg)
		return m, cmd

	case "dealing":
		switch msg.String() {
		case "enter", " ":
			if err := m.table.StartDealing(); err == nil {
				m.status = "dealing..."
			}
		case "n":
			if err := m.table.DealNextCard(); err == nil {
				m.status = "dealt one card"
			}
		case "p":
			m.table.StopDealing()
			m.status = "dealing paused"
		}
		m.refresh()

	case "decisions":
		switch msg.String() {
		case "h":
			m.intent(m.table.Hit, "hit")
		case "s":
			m.intent(m.table.Stand, "stand")
		case "d":
			m.intent(m.table.Double, "double")
		case "a":
			m.toggleAutoPlay()
		}
		m.refresh()
	}

	return m, nil
}

func (m *Model) restart() (tea.Model, tea.Cmd) {
	m.autoplay = false
	m.table.Restart()
	m.status = "round restarted"
	m.betInput.Reset()
	m.refresh()
	return m, nil
}

// intent sends a seat action for the seat at the cursor
func (m *Model) intent(fn func(int) error, name string) {
	seat := m.snapshot.ActiveSeatIndex
	if err := fn(seat); err != nil {
		m.status = fmt.Sprintf("%s refused: %v", name, err)
		return
	}
	m.status = fmt.Sprintf("seat %d: %s", seat, name)
}

func (m *Model) toggleAutoPlay() {
	if m.autoplay {
		m.table.StopAutoPlay()
		m.autoplay = false
		m.status = "auto-play off"
		return
	}
	if err := m.table.StartAutoPlay(); err != nil {
		m.status = fmt.Sprintf("auto-play refused: %v", err)
		return
	}
	m.autoplay = true
	m.status = "auto-play on"
}

func (m *Model) refresh() {
	m.snapshot = m.table.Snapshot()
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.snapshot
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Blackjack Table"))
	b.WriteString("  ")
	b.WriteString(m.styles.Phase.Render(strings.ToUpper(s.Phase)))
	if s.Halted {
		b.WriteString("  " + m.styles.Error.Render("SHOE EXHAUSTED"))
	}
	if s.Finished {
		b.WriteString("  " + m.styles.Phase.Render("ROUND OVER"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderDealer(s))
	b.WriteString("\n")

	for i, seat := range s.Seats {
		b.WriteString(m.renderSeat(seat, i == s.ActiveSeatIndex && !s.Finished))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.Phase == "betting" && !s.Halted {
		b.WriteString(fmt.Sprintf("Seat %d to bet: %s\n", s.ActiveSeatIndex, m.betInput.View()))
	}
	if m.status != "" {
		b.WriteString(m.styles.Help.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.helpLine(s.Phase)))
	b.WriteString("\n")

	return b.String()
}

func (m *Model) renderDealer(s game.Snapshot) string {
	hand := m.renderHand(s.Dealer.Hand)
	if hand == "" {
		hand = "--"
	}
	return fmt.Sprintf("  %s  %s  (%d)", m.styles.Seat.Render("Dealer "), hand, s.Dealer.Score)
}

func (m *Model) renderSeat(seat game.SeatSnapshot, active bool) string {
	label := fmt.Sprintf("Seat %d ", seat.ID)
	style := m.styles.Seat
	marker := "  "
	if active {
		style = m.styles.ActiveSeat
		marker = "▶ "
	}

	hand := m.renderHand(seat.Hand)
	if hand == "" {
		hand = "--"
	}

	status := seat.Status
	switch status {
	case "busted":
		status = m.styles.Busted.Render("BUSTED")
	case "blackjack":
		status = m.styles.Blackjack.Render("BLACKJACK")
	case "standing":
		status = "standing"
	default:
		status = ""
	}

	return fmt.Sprintf("%s%s bet %s  %s  (%d) %s",
		marker,
		style.Render(label),
		m.styles.Bet.Render(fmt.Sprintf("%3d", seat.Bet)),
		hand,
		seat.Score,
		status,
	)
}

// renderHand colors cards by suit. Snapshot hands are already formatted
// as rank+suit strings.
func (m *Model) renderHand(cards []string) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		style := m.styles.BlackCard
		if strings.HasSuffix(c, "♥") || strings.HasSuffix(c, "♦") {
			style = m.styles.RedCard
		}
		rendered = append(rendered, style.Render(c))
	}
	return strings.Join(rendered, " ")
}

func (m *Model) helpLine(phase string) string {
	switch phase {
	case "betting":
		return "type a bet and press enter • ctrl+r restart • ctrl+c quit"
	case "dealing":
		return "enter auto-deal • n deal one • p pause • r restart • q quit"
	default:
		return "h hit • s stand • d double • a auto-play • r restart • q quit"
	}
}

// Run starts the TUI program and blocks until it exits
func Run(table *game.Table, logger *log.Logger) error {
	program := tea.NewProgram(NewModel(table, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

var _ tea.Model = (*Model)(nil)
