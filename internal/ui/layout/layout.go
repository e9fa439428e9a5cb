package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/qbdeck/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 16
)

// KeyHint is a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nresize to at least %d x %d\n(current %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the header bar: deck name on the left, a status
// string (score, position) on the right.
func RenderHeader(deck, status string, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(" " + deck)
	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(status + " ")

	innerWidth := max(width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return theme.Bar.
		Width(width).
		Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, part)
	}
	return theme.Bar.
		Width(width).
		Render(" " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, giving the content all
// height the bars leave over.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Padding(1, 2).
		Render(content)
	return header + "\n" + body + "\n" + footer
}

// RenderCard renders a record card for non-interactive output: title line,
// body, and an optional tag line.
func RenderCard(title, body string, tags []string, width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(max(width-4, 10)).Render(body))
	if len(tags) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Tag.Render("# " + strings.Join(tags, "  # ")))
	}
	return theme.Card.Width(width).Render(b.String())
}
