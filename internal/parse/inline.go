package parse

import (
	"fmt"

	"github.com/abhisek/qbdeck/internal/lineclass"
	"github.com/abhisek/qbdeck/internal/question"
	"github.com/abhisek/qbdeck/internal/tags"
)

// Inline assembles documents where every record header carries its own
// answer code and a delimiter line closes the record.
type Inline struct {
	tags *tags.Resolver
	asm  assembler

	records []question.Record
	defects []question.Defect
}

// NewInline creates an inline-answer strategy.
func NewInline(resolver *tags.Resolver, opts Options) *Inline {
	return &Inline{
		tags: resolver,
		asm:  newAssembler(opts),
	}
}

// Apply implements Strategy.
func (s *Inline) Apply(tok lineclass.Token) error {
	switch tok.Kind {
	case lineclass.KindHeader:
		s.tags.Register(tok.Prefix, tok.Label)

	case lineclass.KindRecordStart:
		if !s.asm.empty() {
			s.commitUnterminated()
		}
		t, _ := s.tags.Resolve(tok.ID)
		s.asm.start(tok, t)

	case lineclass.KindChoice:
		s.asm.setChoice(tok.Choice, tok.Text)

	case lineclass.KindContinuation:
		s.asm.extend(tok.Text)

	case lineclass.KindDelimiter:
		s.commit()

	case lineclass.KindModeSwitch:
		s.defects = append(s.defects, question.Defect{
			Kind:    question.DefectUnexpectedToken,
			Index:   len(s.records),
			Message: fmt.Sprintf("answer-key marker %q ignored in an inline-answer document", tok.Line),
		})
	}
	return nil
}

// Finish implements Strategy. A record left open at the end of the input is
// committed and flagged.
func (s *Inline) Finish() (*Result, error) {
	if !s.asm.empty() {
		s.commitUnterminated()
	}
	return &Result{Records: s.records, Defects: s.defects}, nil
}

// commit closes the open record and substitutes its answer code with the
// text of the matching choice. An unknown code is kept as the answer so the
// answer check can report it.
func (s *Inline) commit() {
	if s.asm.empty() {
		s.asm.reset()
		return
	}
	rec, code := s.asm.take()
	if code != "" && !rec.ResolveAnswer(code) {
		rec.Answer = code
	}
	s.records = append(s.records, rec)
}

func (s *Inline) commitUnterminated() {
	s.defects = append(s.defects, question.Defect{
		Kind:    question.DefectMissingDelimiter,
		Index:   len(s.records),
		ID:      s.asm.rec.ID,
		Message: "record closed without a delimiter line",
	})
	s.commit()
}
