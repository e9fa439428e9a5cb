package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/qbdeck/internal/ui/theme"
)

// MultiChoice renders one question with its four choices and tracks the
// highlighted and submitted choice. Choice texts carry their own labels.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int // -1 when the answer could not be resolved
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Up moves the highlight one choice up.
func (m *MultiChoice) Up() {
	if !m.Submitted && m.Selected > 0 {
		m.Selected--
	}
}

// Down moves the highlight one choice down.
func (m *MultiChoice) Down() {
	if !m.Submitted && m.Selected < len(m.Options)-1 {
		m.Selected++
	}
}

// Submit locks in choice i. Out of range indexes are ignored.
func (m *MultiChoice) Submit(i int) {
	if m.Submitted || i < 0 || i >= len(m.Options) {
		return
	}
	m.Selected = i
	m.ChosenIndex = i
	m.Submitted = true
}

// IsCorrect reports whether the submitted choice is the answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.CorrectIndex >= 0 && m.ChosenIndex == m.CorrectIndex
}

// View renders the question and choices, wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	q := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	b.WriteString(q.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := lipgloss.NewStyle().Width(width).Render(prefix + opt)

		style := theme.Unselected
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = theme.Dimmed
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
