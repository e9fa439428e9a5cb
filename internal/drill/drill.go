// Package drill runs an interactive terminal quiz over extracted records.
package drill

import (
	"fmt"
	"math/rand/v2"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/qbdeck/internal/question"
	"github.com/abhisek/qbdeck/internal/ui/components"
	"github.com/abhisek/qbdeck/internal/ui/layout"
	"github.com/abhisek/qbdeck/internal/ui/theme"
)

// Options configure a drill.
type Options struct {
	// Shuffle randomizes question order.
	Shuffle bool

	// Limit caps the number of questions. Zero means all.
	Limit int

	// Rand is used for shuffling. Nil uses the global source.
	Rand *rand.Rand
}

// Score is the outcome of a drill.
type Score struct {
	Total    int
	Answered int
	Correct  int
	Skipped  int
}

func (s Score) String() string {
	return fmt.Sprintf("%d/%d correct, %d skipped", s.Correct, s.Answered, s.Skipped)
}

// Model is the Bubble Tea model of a drill.
type Model struct {
	deck    string
	records []question.Record
	idx     int
	choice  components.MultiChoice
	score   Score
	keys    keyMap
	done    bool
	width   int
	height  int
}

// New creates a drill over records.
func New(deck string, records []question.Record, opts Options) Model {
	recs := make([]question.Record, len(records))
	copy(recs, records)
	if opts.Shuffle {
		shuffle := rand.Shuffle
		if opts.Rand != nil {
			shuffle = opts.Rand.Shuffle
		}
		shuffle(len(recs), func(i, j int) { recs[i], recs[j] = recs[j], recs[i] })
	}
	if opts.Limit > 0 && opts.Limit < len(recs) {
		recs = recs[:opts.Limit]
	}

	m := Model{
		deck:    deck,
		records: recs,
		keys:    defaultKeys(),
		score:   Score{Total: len(recs)},
	}
	m.load()
	return m
}

func (m *Model) load() {
	if m.idx >= len(m.records) {
		m.done = true
		return
	}
	rec := &m.records[m.idx]
	m.choice = components.NewMultiChoice(rec.Question, rec.Choices(), rec.AnswerIndex())
}

func (m *Model) advance() {
	m.idx++
	m.load()
}

// Score returns the running score.
func (m Model) Score() Score {
	return m.score
}

// Done reports whether every question has been seen.
func (m Model) Done() bool {
	return m.done
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.done {
			if key.Matches(msg, m.keys.Next) {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.choice.Submitted {
			if key.Matches(msg, m.keys.Next) {
				m.advance()
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			m.choice.Up()
		case key.Matches(msg, m.keys.Down):
			m.choice.Down()
		case key.Matches(msg, m.keys.Submit):
			m.submit(m.choice.Selected)
		case key.Matches(msg, m.keys.Pick):
			m.submit(pickIndex(msg.String()))
		case key.Matches(msg, m.keys.Skip):
			m.score.Skipped++
			m.advance()
		}
	}
	return m, nil
}

func (m *Model) submit(i int) {
	if i < 0 {
		return
	}
	m.choice.Submit(i)
	m.score.Answered++
	if m.choice.IsCorrect() {
		m.score.Correct++
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	status := fmt.Sprintf("✓ %d  ✗ %d", m.score.Correct, m.score.Answered-m.score.Correct)
	header := layout.RenderHeader(m.deck, status, m.width)
	footer := layout.RenderFooter(m.hints(), m.width)

	v.SetContent(layout.RenderFrame(header, m.body(), footer, m.width, m.height))
	return v
}

func (m Model) body() string {
	inner := max(m.width-4, 20)
	if m.done {
		return theme.Title.Render("Drill complete") + "\n\n" +
			theme.Body.Render(m.score.String())
	}

	rec := m.records[m.idx]
	bar := components.ProgressBar{Done: m.idx, Total: len(m.records), Width: inner}
	s := bar.View() + "\n\n"
	if len(rec.Tags) > 0 {
		s += theme.Tag.Render(rec.Tags[0]) + "\n"
	}
	s += m.choice.View(inner)

	if m.choice.Submitted {
		var verdict string
		switch {
		case m.choice.CorrectIndex < 0:
			verdict = theme.Defect.Render("answer unknown: " + rec.Answer)
		case m.choice.IsCorrect():
			verdict = theme.Correct.Render("correct")
		default:
			verdict = theme.Incorrect.Render("answer: " + rec.Answer)
		}
		s += "\n" + lipgloss.NewStyle().Width(inner).Render(verdict)
	}
	return s
}

func (m Model) hints() []layout.KeyHint {
	var bindings []key.Binding
	switch {
	case m.done:
		bindings = []key.Binding{m.keys.Next, m.keys.Quit}
	case m.choice.Submitted:
		bindings = []key.Binding{m.keys.Next, m.keys.Quit}
	default:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Submit, m.keys.Pick, m.keys.Skip, m.keys.Quit}
	}
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

// Run starts the drill program and returns the final score.
func Run(deck string, records []question.Record, opts Options) (Score, error) {
	p := tea.NewProgram(New(deck, records, opts))
	final, err := p.Run()
	if err != nil {
		return Score{}, fmt.Errorf("run drill: %w", err)
	}
	return final.(Model).Score(), nil
}
