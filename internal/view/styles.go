// Package view renders the match state as styled terminal text.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/trash-castle/internal/game/card"
)

// Icon constants
const (
	CastleIcon  = "🏰"
	RubbleIcon  = "🪦"
	CurrentIcon = "▶"
	WinnerIcon  = "🏆"
)

// Lipgloss Styles
var (
	docStyle     = lipgloss.NewStyle().Margin(0, 1)
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	jokerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("93")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	grayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	promptStyle  = lipgloss.NewStyle().MarginTop(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var suitSymbols = map[card.Suit]string{
	card.Hearts:   "♥",
	card.Diamonds: "♦",
	card.Clubs:    "♣",
	card.Spades:   "♠",
}

var faceLetters = map[card.Kind]string{
	card.Jack:  "J",
	card.Queen: "Q",
	card.King:  "K",
	card.Ace:   "A",
}

func cardStyle(c card.Card) lipgloss.Style {
	switch {
	case c.Kind == card.Joker:
		return jokerStyle
	case c.Suit.IsRed():
		return redStyle
	default:
		return blackStyle
	}
}

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}
