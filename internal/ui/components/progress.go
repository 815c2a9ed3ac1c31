package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/gitalearn/internal/ui/theme"
)

// ProgressBar renders value out of target as a block bar.
type ProgressBar struct {
	Label   string
	Value   int
	Target  int
	Width   int
	Numbers bool
}

// NewProgressBar creates a bar that shows "value/target" after the blocks.
func NewProgressBar(label string, value, target, width int) ProgressBar {
	return ProgressBar{Label: label, Value: value, Target: target, Width: width, Numbers: true}
}

// Fraction is Value/Target clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Target <= 0 {
		return 0
	}
	f := float64(p.Value) / float64(p.Target)
	return min(max(f, 0), 1)
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Label.Render(p.Label))
		b.WriteString("  ")
	}

	width := max(p.Width, 4)
	filled := int(float64(width) * p.Fraction())
	b.WriteString(theme.ProgressFilled.Render(strings.Repeat("█", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat("░", width-filled)))

	if p.Numbers {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d/%d", p.Value, p.Target)))
	}
	return b.String()
}
