package question

// Labels lists the choice labels in document order.
var Labels = []string{"A", "B", "C", "D"}

// Record is one extracted multiple-choice question.
type Record struct {
	// ID is the identifier captured from the record header, e.g. "12." or
	// "T1A01". Used for tag lookup and diagnostics.
	ID string `json:"id"`

	// Question is the prompt as it appears in the source, possibly
	// assembled from several wrapped lines.
	Question string `json:"question"`

	// ChoiceA..ChoiceD keep their source label prefix, e.g. "(A)foo" or "A. foo".
	ChoiceA string `json:"choiceA"`
	ChoiceB string `json:"choiceB"`
	ChoiceC string `json:"choiceC"`
	ChoiceD string `json:"choiceD"`

	// Answer is the verbatim text of the correct choice once resolved.
	Answer string `json:"answer"`

	// Tags are the category labels in effect when the record started.
	Tags []string `json:"tags"`
}

// Choice returns the choice text for a label ("A".."D").
func (r *Record) Choice(label string) (string, bool) {
	switch label {
	case "A":
		return r.ChoiceA, true
	case "B":
		return r.ChoiceB, true
	case "C":
		return r.ChoiceC, true
	case "D":
		return r.ChoiceD, true
	}
	return "", false
}

// SetChoice stores text under the given label. Unknown labels are ignored.
func (r *Record) SetChoice(label, text string) {
	switch label {
	case "A":
		r.ChoiceA = text
	case "B":
		r.ChoiceB = text
	case "C":
		r.ChoiceC = text
	case "D":
		r.ChoiceD = text
	}
}

// Choices returns the four choices in label order.
func (r *Record) Choices() []string {
	return []string{r.ChoiceA, r.ChoiceB, r.ChoiceC, r.ChoiceD}
}

// ResolveAnswer replaces the answer with the text of the choice named by
// code. It reports false and leaves the answer untouched when code is not a
// choice label.
func (r *Record) ResolveAnswer(code string) bool {
	text, ok := r.Choice(code)
	if !ok {
		return false
	}
	r.Answer = text
	return true
}

// AnswerIndex returns the position of the answer among the choices, or -1.
func (r *Record) AnswerIndex() int {
	for i, c := range r.Choices() {
		if c != "" && c == r.Answer {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether nothing has been collected into the record yet.
func (r *Record) IsEmpty() bool {
	return r.Question == "" && r.ChoiceA == "" && r.ChoiceB == "" &&
		r.ChoiceC == "" && r.ChoiceD == ""
}
