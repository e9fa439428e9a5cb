package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/qbdeck/internal/question"
)

// CompileAnswerNumber compiles an answer-key number pattern.
func CompileAnswerNumber(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = DefaultAnswerNumber
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile answer number pattern: %w", err)
	}
	if re.SubexpIndex("number") < 0 {
		return nil, fmt.Errorf("answer number pattern %q has no (?P<number>...) group", expr)
	}
	return re, nil
}

// CrossReference answers records from the answer-key lines, in order.
//
// Each line is split on whitespace. A numbered token sets the prefix every
// following answered prompt must start with until the next numbered token or
// the end of the line; a letter A–D answers records[i] with the text of that
// choice and advances i. A numbered token with a letter glued to it, such as
// "1.B", is read as the number followed by that letter. Any disagreement
// aborts: a prompt that
// does not start with the expected number yields *SequenceMismatchError, and
// an answer count different from len(records) yields *CountMismatchError.
// It returns the number of resolved answers.
func CrossReference(records []question.Record, lines []string, number *regexp.Regexp) (int, error) {
	numIdx := number.SubexpIndex("number")
	restIdx := number.SubexpIndex("rest")

	i := 0
	for _, line := range lines {
		expected := ""
		for _, tok := range strings.Fields(line) {
			if m := number.FindStringSubmatch(tok); m != nil {
				expected = m[numIdx]
				tok = ""
				if restIdx >= 0 {
					tok = m[restIdx]
				}
			}
			if !isAnswerLetter(tok) {
				continue
			}
			if i >= len(records) {
				return i, &CountMismatchError{Questions: len(records), Answers: i + 1}
			}
			if !strings.HasPrefix(records[i].Question, expected) {
				return i, &SequenceMismatchError{
					Index:    i,
					Expected: expected,
					Prompt:   records[i].Question,
				}
			}
			records[i].ResolveAnswer(tok)
			i++
		}
	}

	if i != len(records) {
		return i, &CountMismatchError{Questions: len(records), Answers: i}
	}
	return i, nil
}

func isAnswerLetter(tok string) bool {
	switch tok {
	case "A", "B", "C", "D":
		return true
	}
	return false
}
