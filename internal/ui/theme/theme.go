package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, warm saffron and lotus tones on slate
var (
	Saffron = lipgloss.Color("#F59E0B")
	Lotus   = lipgloss.Color("#EC4899")
	Peacock = lipgloss.Color("#0EA5E9")
	Tulsi   = lipgloss.Color("#22C55E")
	Ember   = lipgloss.Color("#EF4444")
	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Value = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Outcomes
var (
	Good = lipgloss.NewStyle().
		Foreground(Tulsi).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Saffron)

	Bad = lipgloss.NewStyle().
		Foreground(Ember).
		Bold(true)
)

// Currencies
var (
	Heart = lipgloss.NewStyle().Foreground(Ember)

	HeartEmpty = lipgloss.NewStyle().Foreground(Border)

	Gem = lipgloss.NewStyle().Foreground(Peacock)

	Flame = lipgloss.NewStyle().Foreground(Saffron).Bold(true)

	XP = lipgloss.NewStyle().Foreground(Lotus).Bold(true)
)

// Components
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	Highlight = lipgloss.NewStyle().
			Foreground(Saffron).
			Bold(true)

	ProgressFilled = lipgloss.NewStyle().
			Foreground(Tulsi)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)
)
