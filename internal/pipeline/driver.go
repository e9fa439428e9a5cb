// Package pipeline drives a document's lines through classification and
// record assembly.
package pipeline

import (
	"context"
	"fmt"

	"github.com/abhisek/qbdeck/internal/lineclass"
	"github.com/abhisek/qbdeck/internal/logger"
	"github.com/abhisek/qbdeck/internal/parse"
	"github.com/abhisek/qbdeck/internal/pdftext"
	"github.com/abhisek/qbdeck/internal/profile"
	"github.com/abhisek/qbdeck/internal/question"
)

// Options configure a Driver.
type Options struct {
	// Validators run over the finished records. Nil selects
	// question.DefaultValidators.
	Validators []question.Validator

	// Logger receives defects and run summaries. Nil discards them.
	Logger *logger.Logger

	// Strict turns any defect into a *parse.DefectsError.
	Strict bool
}

// Result is the outcome of a successful run.
type Result struct {
	Profile string
	Pages   int
	Records []question.Record
	Defects []question.Defect
}

// Driver runs one profile over documents. It holds no per-run state, so a
// Driver may be reused; every Run builds a fresh strategy.
type Driver struct {
	profile    profile.Profile
	classifier *lineclass.Classifier
	validators []question.Validator
	log        *logger.Logger
	strict     bool
}

// New creates a Driver for p.
func New(p profile.Profile, opts Options) (*Driver, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	classifier, err := lineclass.New(p.Rules())
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	d := &Driver{
		profile:    p,
		classifier: classifier,
		validators: opts.Validators,
		log:        opts.Logger,
		strict:     opts.Strict,
	}
	if d.validators == nil {
		d.validators = question.DefaultValidators()
	}
	if d.log == nil {
		d.log = logger.Nop()
	}
	d.log = d.log.With("profile", p.Name)
	return d, nil
}

// Extract renders src and runs the result.
func (d *Driver) Extract(ctx context.Context, src pdftext.Source) (*Result, error) {
	pages, err := src.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return d.Run(pages)
}

// Run feeds pages in order, lines within a page in order, through the
// classifier and the profile's strategy. Any fatal inconsistency aborts the
// whole run and no records are returned.
func (d *Driver) Run(pages [][]string) (*Result, error) {
	strategy, err := d.profile.NewStrategy()
	if err != nil {
		return nil, err
	}

	lines := 0
	for pi, page := range pages {
		for li, line := range page {
			tok, ok := d.classifier.Classify(line)
			if !ok {
				continue
			}
			lines++
			if err := strategy.Apply(tok); err != nil {
				return nil, fmt.Errorf("page %d line %d: %w", pi+1, li+1, err)
			}
		}
	}

	res, err := strategy.Finish()
	if err != nil {
		d.log.Error("extraction aborted", "pages", len(pages), "lines", lines, "error", err)
		return nil, err
	}

	defects := append(res.Defects, question.Check(res.Records, d.validators)...)
	for _, def := range defects {
		d.log.Warn("extraction defect",
			"kind", def.Kind,
			"index", def.Index,
			"id", def.ID,
			"message", def.Message,
		)
	}
	if d.strict && len(defects) > 0 {
		return nil, &parse.DefectsError{Defects: defects}
	}

	records := res.Records
	if records == nil {
		records = []question.Record{}
	}

	d.log.Info("document parsed",
		"pages", len(pages),
		"lines", lines,
		"records", len(records),
		"defects", len(defects),
	)
	return &Result{
		Profile: d.profile.Name,
		Pages:   len(pages),
		Records: records,
		Defects: defects,
	}, nil
}
