package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gitalearn/internal/ui/components"
	"github.com/abhisek/gitalearn/internal/ui/theme"
)

const (
	DefaultWidth = 60
	MinWidth     = 40
)

// Status is what the header bar shows.
type Status struct {
	Title     string
	Hearts    int
	MaxHearts int
	Gems      int
	Streak    int
	XP        int
}

// Width clamps a terminal width to something the cards render well in.
func Width(termWidth int) int {
	if termWidth <= 0 {
		return DefaultWidth
	}
	return min(max(termWidth-2, MinWidth), 80)
}

// RenderHeader renders the status bar: app name and title on the left,
// hearts, gems and streak on the right.
func RenderHeader(s Status, width int) string {
	left := theme.Title.Render("Gitalearn")
	if s.Title != "" {
		left += theme.Label.Render("  " + s.Title)
	}

	right := components.Hearts(s.Hearts, s.MaxHearts) + "  " +
		theme.Gem.Render(fmt.Sprintf("◆ %d", s.Gems)) + "  " +
		theme.Flame.Render(fmt.Sprintf("🔥 %d", s.Streak)) + "  " +
		theme.XP.Render(fmt.Sprintf("%d XP", s.XP))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return theme.Card.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// Join stacks rendered blocks with a blank line between them.
func Join(blocks ...string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n\n")
}
