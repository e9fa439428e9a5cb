// Package deck packages question records as an Anki deck (.apkg).
package deck

import (
	"html"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/qbdeck/internal/question"
)

// guidNamespace scopes the name-based note GUIDs so that rebuilding a deck
// from the same document yields the same GUIDs and Anki updates notes in place.
var guidNamespace = uuid.MustParse("6f1c2a43-7d0e-4c55-9b8e-2f4f3f3c9a10")

// Note is one card-producing entry: a question front and an answer back.
type Note struct {
	GUID  string
	Front string
	Back  string
	Tags  []string
}

// Deck is a named set of notes sharing one note type.
type Deck struct {
	ID      int64
	ModelID int64
	Name    string
	Notes   []Note
	Created time.Time
}

// Options configure deck construction. Zero IDs are replaced with random
// ones in [1<<30, 1<<31).
type Options struct {
	DeckID  int64
	ModelID int64
	Now     func() time.Time
}

// New builds a deck from records in order.
func New(name string, records []question.Record, opts Options) *Deck {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	d := &Deck{
		ID:      opts.DeckID,
		ModelID: opts.ModelID,
		Name:    name,
		Notes:   make([]Note, 0, len(records)),
		Created: now(),
	}
	if d.ID == 0 {
		d.ID = randomID()
	}
	if d.ModelID == 0 {
		d.ModelID = randomID()
	}
	for i := range records {
		d.Notes = append(d.Notes, NoteFor(name, &records[i]))
	}
	return d
}

// NoteFor renders a record: the front lists the prompt and the four
// choices one per line, the back holds the answer.
func NoteFor(deckName string, rec *question.Record) Note {
	parts := make([]string, 0, 5)
	parts = append(parts, html.EscapeString(rec.Question))
	for _, c := range rec.Choices() {
		parts = append(parts, html.EscapeString(c))
	}
	front := strings.Join(parts, "<br>")
	return Note{
		GUID:  uuid.NewSHA1(guidNamespace, []byte(deckName+"\x1f"+front)).String(),
		Front: front,
		Back:  html.EscapeString(rec.Answer),
		Tags:  noteTags(rec.Tags),
	}
}

// noteTags makes tags safe for Anki, which separates tags with spaces.
func noteTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.Join(strings.Fields(t), "_")
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func randomID() int64 {
	return 1<<30 + rand.Int64N(1<<30)
}
