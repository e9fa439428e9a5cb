package question

import "fmt"

// StructuralValidator flags an empty prompt or empty choice fields.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(index int, rec *Record) []Defect {
	var out []Defect
	if rec.Question == "" {
		out = append(out, Defect{
			Kind:    DefectEmptyField,
			Index:   index,
			ID:      rec.ID,
			Message: "question is empty",
		})
	}
	for i, c := range rec.Choices() {
		if c == "" {
			out = append(out, Defect{
				Kind:    DefectEmptyField,
				Index:   index,
				ID:      rec.ID,
				Message: fmt.Sprintf("choice %s is empty", Labels[i]),
			})
		}
	}
	return out
}

// AnswerValidator flags answers that are not exactly one of the choices,
// including bare letters left by an unknown inline answer code.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(index int, rec *Record) []Defect {
	if rec.AnswerIndex() >= 0 {
		return nil
	}
	msg := "answer is empty"
	if rec.Answer != "" {
		msg = fmt.Sprintf("answer %q does not match any choice", rec.Answer)
	}
	return []Defect{{
		Kind:    DefectUnresolvedAnswer,
		Index:   index,
		ID:      rec.ID,
		Message: msg,
	}}
}

// TagValidator flags records that carry no category tag.
type TagValidator struct{}

func (v *TagValidator) Name() string { return "tags" }

func (v *TagValidator) Validate(index int, rec *Record) []Defect {
	if len(rec.Tags) > 0 {
		return nil
	}
	return []Defect{{
		Kind:    DefectMissingTag,
		Index:   index,
		ID:      rec.ID,
		Message: "no section header registered for this record",
	}}
}
