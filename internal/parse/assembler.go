package parse

import (
	"strings"
	"unicode/utf8"

	"github.com/abhisek/qbdeck/internal/lineclass"
	"github.com/abhisek/qbdeck/internal/question"
)

// Field names the record field that continuation lines extend.
type Field int

const (
	FieldNone Field = iota
	FieldQuestion
	FieldA
	FieldB
	FieldC
	FieldD
)

func fieldForLabel(label string) Field {
	switch label {
	case "A":
		return FieldA
	case "B":
		return FieldB
	case "C":
		return FieldC
	case "D":
		return FieldD
	}
	return FieldNone
}

func (f Field) label() string {
	switch f {
	case FieldA:
		return "A"
	case FieldB:
		return "B"
	case FieldC:
		return "C"
	case FieldD:
		return "D"
	}
	return ""
}

// assembler owns the in-progress record until it is taken.
type assembler struct {
	rec    question.Record
	code   string
	cursor Field

	joiner      string
	terminators string
}

func newAssembler(opts Options) assembler {
	return assembler{joiner: opts.Joiner, terminators: opts.PromptTerminators}
}

// start replaces the in-progress record with a fresh one opened by tok.
func (a *assembler) start(tok lineclass.Token, tags []string) {
	a.rec = question.Record{
		ID:       tok.ID,
		Question: tok.Prompt,
		Tags:     tags,
	}
	a.code = tok.Answer
	a.cursor = FieldQuestion
}

func (a *assembler) setChoice(label, text string) {
	f := fieldForLabel(label)
	if f == FieldNone {
		return
	}
	a.rec.SetChoice(label, text)
	a.cursor = f
}

// extend appends text to the field under the cursor. A prompt that already
// ends in a terminator is closed for continuation.
func (a *assembler) extend(text string) {
	switch a.cursor {
	case FieldNone:
		return
	case FieldQuestion:
		if a.promptClosed() {
			return
		}
		a.rec.Question = a.join(a.rec.Question, text)
	default:
		label := a.cursor.label()
		cur, _ := a.rec.Choice(label)
		a.rec.SetChoice(label, a.join(cur, text))
	}
}

func (a *assembler) join(cur, text string) string {
	if cur == "" {
		return text
	}
	return cur + a.joiner + text
}

func (a *assembler) promptClosed() bool {
	if a.terminators == "" || a.rec.Question == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(a.rec.Question)
	return strings.ContainsRune(a.terminators, r)
}

func (a *assembler) empty() bool {
	return a.rec.IsEmpty()
}

// take hands the in-progress record over and resets the state.
func (a *assembler) take() (question.Record, string) {
	rec, code := a.rec, a.code
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	a.rec = question.Record{}
	a.code = ""
	a.cursor = FieldNone
	return rec, code
}

// reset drops the in-progress record.
func (a *assembler) reset() {
	a.take()
}
