package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains the lipgloss styling for the table view
type Styles struct {
	Header     lipgloss.Style
	Phase      lipgloss.Style
	Seat       lipgloss.Style
	ActiveSeat lipgloss.Style
	RedCard    lipgloss.Style
	BlackCard  lipgloss.Style
	Bet        lipgloss.Style
	Busted     lipgloss.Style
	Blackjack  lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
}

// NewStyles builds the style set, picking card colors that stay legible
// on light terminals
func NewStyles() *Styles {
	blackCard := lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
	if !termenv.HasDarkBackground() {
		blackCard = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Bold(true)
	}

	return &Styles{
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Phase:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Seat:       lipgloss.NewStyle().Foreground(lipgloss.Color("#74B9FF")),
		ActiveSeat: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		RedCard:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		BlackCard:  blackCard,
		Bet:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Busted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Strikethrough(true),
		Blackjack:  lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}
