package parse

import (
	"fmt"
	"regexp"

	"github.com/abhisek/qbdeck/internal/lineclass"
	"github.com/abhisek/qbdeck/internal/question"
	"github.com/abhisek/qbdeck/internal/tags"
)

type mode int

const (
	modeQuestions mode = iota
	modeAnswers
)

// TrailingKey assembles documents whose answers follow all questions in a
// separate answer-key section.
type TrailingKey struct {
	tags   *tags.Resolver
	asm    assembler
	number *regexp.Regexp

	commitOnD bool
	mode      mode

	records     []question.Record
	defects     []question.Defect
	answerLines []string
}

// NewTrailingKey creates a trailing-key strategy.
func NewTrailingKey(resolver *tags.Resolver, opts Options) (*TrailingKey, error) {
	number, err := CompileAnswerNumber(opts.AnswerNumber)
	if err != nil {
		return nil, err
	}
	return &TrailingKey{
		tags:      resolver,
		asm:       newAssembler(opts),
		number:    number,
		commitOnD: opts.CommitOnChoiceD,
	}, nil
}

// Apply implements Strategy.
func (s *TrailingKey) Apply(tok lineclass.Token) error {
	if s.mode == modeAnswers {
		s.answerLines = append(s.answerLines, tok.Line)
		return nil
	}

	switch tok.Kind {
	case lineclass.KindHeader:
		s.tags.Register(tok.Prefix, tok.Label)

	case lineclass.KindRecordStart:
		if s.commitOnD {
			if !s.asm.empty() {
				s.drop(fmt.Sprintf("record replaced by %q before choice D", tok.ID))
			}
		} else {
			s.commit()
		}
		t, _ := s.tags.Resolve(tok.ID)
		s.asm.start(tok, t)

	case lineclass.KindChoice:
		s.asm.setChoice(tok.Choice, tok.Text)
		if s.commitOnD && tok.Choice == "D" {
			s.commit()
		}

	case lineclass.KindContinuation:
		s.asm.extend(tok.Text)

	case lineclass.KindModeSwitch:
		s.closeOpen()
		s.mode = modeAnswers

	case lineclass.KindDelimiter:
		// Delimiters carry no meaning when choices close records.
	}
	return nil
}

// Finish implements Strategy. It cross-references the buffered answer key
// against every committed record.
func (s *TrailingKey) Finish() (*Result, error) {
	if s.mode == modeQuestions {
		s.closeOpen()
	}
	if _, err := CrossReference(s.records, s.answerLines, s.number); err != nil {
		return nil, err
	}
	return &Result{Records: s.records, Defects: s.defects}, nil
}

// closeOpen ends the question stream: an open record is committed when
// record headers close records, and dropped as incomplete when choice D does.
func (s *TrailingKey) closeOpen() {
	if s.asm.empty() {
		s.asm.reset()
		return
	}
	if s.commitOnD {
		s.drop("record has no choice D")
		return
	}
	s.commit()
}

func (s *TrailingKey) commit() {
	if s.asm.empty() {
		s.asm.reset()
		return
	}
	rec, _ := s.asm.take()
	s.records = append(s.records, rec)
}

func (s *TrailingKey) drop(msg string) {
	rec, _ := s.asm.take()
	s.defects = append(s.defects, question.Defect{
		Kind:    question.DefectIncompleteRecord,
		Index:   -1,
		ID:      rec.ID,
		Message: msg,
	})
}
