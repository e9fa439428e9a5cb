package question

import "fmt"

// DefectKind classifies a non-fatal extraction problem.
type DefectKind string

const (
	DefectMissingTag       DefectKind = "missing-tag"
	DefectEmptyField       DefectKind = "empty-field"
	DefectUnresolvedAnswer DefectKind = "unresolved-answer"
	DefectMissingDelimiter DefectKind = "missing-delimiter"
	DefectIncompleteRecord DefectKind = "incomplete-record"
	DefectUnexpectedToken  DefectKind = "unexpected-token"
)

// Defect describes a soft inconsistency. The record is still emitted.
type Defect struct {
	Kind    DefectKind `json:"kind"`
	Index   int        `json:"index"` // position in the output sequence, -1 if not emitted
	ID      string     `json:"id,omitempty"`
	Message string     `json:"message"`
}

func (d Defect) String() string {
	if d.ID != "" {
		return fmt.Sprintf("%s: record %d (%s): %s", d.Kind, d.Index, d.ID, d.Message)
	}
	return fmt.Sprintf("%s: record %d: %s", d.Kind, d.Index, d.Message)
}

// Validator checks a finished record. Implementations are stateless and
// safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "choices", "answer".
	Name() string

	// Validate returns the defects found in rec, or nil.
	Validate(index int, rec *Record) []Defect
}

// DefaultValidators returns the standard check chain, run in order.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&AnswerValidator{},
		&TagValidator{},
	}
}

// Check runs every validator over every record and collects the defects in
// record order.
func Check(records []Record, validators []Validator) []Defect {
	var out []Defect
	for i := range records {
		for _, v := range validators {
			out = append(out, v.Validate(i, &records[i])...)
		}
	}
	return out
}
