package parse

import (
	"fmt"
	"strings"

	"github.com/abhisek/qbdeck/internal/question"
)

// SequenceMismatchError reports an answer-key number that does not match the
// prompt of the record it would answer.
type SequenceMismatchError struct {
	Index    int
	Expected string
	Prompt   string
}

func (e *SequenceMismatchError) Error() string {
	return fmt.Sprintf("answer key out of sequence at record %d: expected prompt starting with %q, got %q",
		e.Index, e.Expected, e.Prompt)
}

// CountMismatchError reports that the answer key did not answer every
// question exactly once.
type CountMismatchError struct {
	Questions int
	Answers   int
}

func (e *CountMismatchError) Error() string {
	if e.Answers > e.Questions {
		return fmt.Sprintf("count mismatch: answer key has more answers than the %d questions", e.Questions)
	}
	return fmt.Sprintf("count mismatch: resolved %d answers for %d questions", e.Answers, e.Questions)
}

// DefectsError wraps soft defects when they are promoted to a failure.
type DefectsError struct {
	Defects []question.Defect
}

func (e *DefectsError) Error() string {
	if len(e.Defects) == 0 {
		return "extraction defects"
	}
	lines := make([]string, 0, len(e.Defects))
	for _, d := range e.Defects {
		lines = append(lines, d.String())
	}
	return fmt.Sprintf("%d extraction defects:\n  %s", len(e.Defects), strings.Join(lines, "\n  "))
}
