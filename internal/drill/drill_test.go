package drill

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/qbdeck/internal/question"
)

func records() []question.Record {
	return []question.Record{
		{ID: "1.", Question: "1.Q one？", ChoiceA: "(A)a", ChoiceB: "(B)b", ChoiceC: "(C)c", ChoiceD: "(D)d", Answer: "(B)b"},
		{ID: "2.", Question: "2.Q two？", ChoiceA: "(A)a", ChoiceB: "(B)b", ChoiceC: "(C)c", ChoiceD: "(D)d", Answer: "(D)d"},
		{ID: "3.", Question: "3.Q three？", ChoiceA: "(A)a", ChoiceB: "(B)b", ChoiceC: "(C)c", ChoiceD: "(D)d", Answer: "?"},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	var next tea.Model = m
	for _, msg := range msgs {
		next, _ = next.Update(msg)
	}
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestDrillScoring(t *testing.T) {
	m := New("Drone", records(), Options{})
	assert.Equal(t, 3, m.Score().Total)

	// Q1: pick b directly, correct.
	m = send(t, m, keyPress('b'))
	assert.True(t, m.choice.Submitted)
	assert.Equal(t, Score{Total: 3, Answered: 1, Correct: 1}, m.Score())

	// Further picks are ignored until advancing.
	m = send(t, m, keyPress('a'))
	assert.Equal(t, 1, m.Score().Answered)

	// Q2: move down twice and submit with enter, wrong (answer is D).
	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 1, m.idx)
	m = send(t, m,
		tea.KeyPressMsg{Code: tea.KeyDown},
		tea.KeyPressMsg{Code: tea.KeyDown},
		tea.KeyPressMsg{Code: tea.KeyEnter},
	)
	assert.Equal(t, 2, m.choice.ChosenIndex)
	assert.Equal(t, Score{Total: 3, Answered: 2, Correct: 1}, m.Score())

	// Q3: skip.
	m = send(t, m, keyPress('n'), keyPress('s'))
	assert.True(t, m.Done())
	assert.Equal(t, Score{Total: 3, Answered: 2, Correct: 1, Skipped: 1}, m.Score())
}

func TestDrillUnresolvedAnswerNeverCorrect(t *testing.T) {
	m := New("Drone", records()[2:], Options{})
	assert.Equal(t, -1, m.choice.CorrectIndex)
	m = send(t, m, keyPress('c'))
	assert.Equal(t, 0, m.Score().Correct)
	assert.Equal(t, 1, m.Score().Answered)
}

func TestDrillQuit(t *testing.T) {
	m := New("Drone", records(), Options{})
	_, cmd := m.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDrillLimitAndShuffle(t *testing.T) {
	m := New("Drone", records(), Options{Limit: 2})
	assert.Len(t, m.records, 2)
	assert.Equal(t, "1.", m.records[0].ID)

	src := records()
	shuffled := New("Drone", src, Options{Shuffle: true, Rand: rand.New(rand.NewPCG(1, 2))})
	assert.Len(t, shuffled.records, 3)
	assert.ElementsMatch(t, []string{"1.", "2.", "3."}, ids(shuffled.records))
	assert.Equal(t, "1.", src[0].ID, "input must not be reordered")
}

func TestDrillEmpty(t *testing.T) {
	m := New("Empty", nil, Options{})
	assert.True(t, m.Done())
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	v := m.View()
	assert.True(t, v.AltScreen)
}

func TestDrillView(t *testing.T) {
	m := New("Drone", records(), Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(t, m, keyPress('a'))
	v := m.View()
	assert.True(t, v.AltScreen)

	small := send(t, New("Drone", records(), Options{}), tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.NotNil(t, small.View())
}

func TestScoreString(t *testing.T) {
	s := Score{Total: 5, Answered: 4, Correct: 3, Skipped: 1}
	assert.True(t, strings.HasPrefix(s.String(), "3/4 correct"))
}

func ids(recs []question.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
