// Package parse assembles classified lines into question records.
//
// Two formats are supported. A trailing-key document lists all questions
// first and answers them in a separate section cross-referenced by number.
// An inline document carries each answer code in its record header and ends
// every record with a delimiter line.
package parse

import (
	"github.com/abhisek/qbdeck/internal/lineclass"
	"github.com/abhisek/qbdeck/internal/question"
)

// Strategy consumes tokens in document order and produces the records.
type Strategy interface {
	// Apply feeds the next token.
	Apply(tok lineclass.Token) error

	// Finish closes the input and returns the committed records. A
	// Strategy must not be used after Finish.
	Finish() (*Result, error)
}

// Result is the ordered record sequence plus the soft defects noticed while
// assembling it.
type Result struct {
	Records []question.Record
	Defects []question.Defect
}

// Options tune record assembly for a document format.
type Options struct {
	// Joiner is placed between a field and a continuation line.
	Joiner string

	// PromptTerminators lists runes that close a prompt for continuation.
	PromptTerminators string

	// CommitOnChoiceD makes choice D close the record (trailing-key only).
	// Otherwise the next record header closes it.
	CommitOnChoiceD bool

	// AnswerNumber matches the numbered tokens of the answer key. It must
	// define a "number" group and may define "rest" for a glued answer
	// letter. Empty selects DefaultAnswerNumber.
	AnswerNumber string
}

// DefaultAnswerNumber matches "12." and "12.B".
const DefaultAnswerNumber = `^(?P<number>\d+[.])(?P<rest>.*)$`
