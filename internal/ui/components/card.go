package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gitalearn/internal/ui/theme"
)

// Card wraps a titled block of lines in a rounded border of width w.
func Card(title string, lines []string, w int) string {
	body := strings.Join(lines, "\n")
	if title != "" {
		body = theme.Title.Render(title) + "\n" + body
	}
	return theme.Card.Width(max(w, 20)).Render(body)
}

// Row renders "label  value" with the label padded to labelWidth.
func Row(label, value string, labelWidth int) string {
	pad := labelWidth - lipgloss.Width(label)
	if pad < 1 {
		pad = 1
	}
	return theme.Label.Render(label) + strings.Repeat(" ", pad) + theme.Value.Render(value)
}

// Hearts renders filled and empty hearts.
func Hearts(have, maxHearts int) string {
	have = min(max(have, 0), maxHearts)
	return theme.Heart.Render(strings.Repeat("♥", have)) +
		theme.HeartEmpty.Render(strings.Repeat("♡", maxHearts-have))
}

// Stars renders a five-star mastery rating.
func Stars(n int) string {
	n = min(max(n, 0), 5)
	return theme.Highlight.Render(strings.Repeat("★", n)) + theme.Label.Render(strings.Repeat("☆", 5-n))
}
