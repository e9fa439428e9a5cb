// Package lineclass maps single document lines to parser tokens.
package lineclass

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules holds the uncompiled patterns of one document format.
type Rules struct {
	// SectionHeader must define a "label" group and may define "prefix".
	SectionHeader string

	// RecordHeader must define an "id" group and may define "prompt" and
	// "answer". Without a "prompt" group the prompt starts as the id
	// followed by PromptSuffix.
	RecordHeader string
	PromptSuffix string

	// Choice must define a "label" group capturing A, B, C or D.
	Choice string

	// Delimiter is the exact text of the record delimiter line, if any.
	Delimiter string

	// ModeSwitch lists exact lines that open the answer-key section.
	ModeSwitch []string

	// TagSeparator joins the words of a header label. Empty keeps the label
	// as it appears.
	TagSeparator string
}

var pageNumberPattern = regexp.MustCompile(`^\d+$`)

// Classifier is a compiled, stateless rule set. It is safe for concurrent use.
type Classifier struct {
	sectionHeader *regexp.Regexp
	recordHeader  *regexp.Regexp
	choice        *regexp.Regexp
	promptSuffix  string
	delimiter     string
	modeSwitch    map[string]bool
	tagSeparator  string
}

// New compiles rules into a Classifier.
func New(rules Rules) (*Classifier, error) {
	c := &Classifier{
		promptSuffix: rules.PromptSuffix,
		delimiter:    strings.TrimSpace(rules.Delimiter),
		modeSwitch:   make(map[string]bool, len(rules.ModeSwitch)),
		tagSeparator: rules.TagSeparator,
	}
	for _, m := range rules.ModeSwitch {
		if m = strings.TrimSpace(m); m != "" {
			c.modeSwitch[m] = true
		}
	}

	var err error
	if c.sectionHeader, err = compile("section header", rules.SectionHeader, "label"); err != nil {
		return nil, err
	}
	if c.recordHeader, err = compile("record header", rules.RecordHeader, "id"); err != nil {
		return nil, err
	}
	if c.choice, err = compile("choice", rules.Choice, "label"); err != nil {
		return nil, err
	}
	return c, nil
}

func compile(name, expr string, required ...string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, fmt.Errorf("%s pattern is empty", name)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile %s pattern: %w", name, err)
	}
	for _, g := range required {
		if re.SubexpIndex(g) < 0 {
			return nil, fmt.Errorf("%s pattern %q has no (?P<%s>...) group", name, expr, g)
		}
	}
	return re, nil
}

// Classify returns the token for line. It reports false for noise: blank
// lines and lines consisting only of digits (page numbers).
func (c *Classifier) Classify(line string) (Token, bool) {
	line = strings.TrimSpace(line)
	if line == "" || pageNumberPattern.MatchString(line) {
		return Token{}, false
	}

	if c.modeSwitch[line] {
		return Token{Kind: KindModeSwitch, Line: line}, true
	}

	if m := c.sectionHeader.FindStringSubmatch(line); m != nil {
		return Token{
			Kind:   KindHeader,
			Line:   line,
			Prefix: group(c.sectionHeader, m, "prefix"),
			Label:  NormalizeLabel(group(c.sectionHeader, m, "label"), c.tagSeparator),
		}, true
	}

	if m := c.recordHeader.FindStringSubmatch(line); m != nil {
		id := group(c.recordHeader, m, "id")
		prompt := group(c.recordHeader, m, "prompt")
		if prompt == "" {
			prompt = id + c.promptSuffix
		}
		return Token{
			Kind:   KindRecordStart,
			Line:   line,
			ID:     id,
			Prompt: prompt,
			Answer: group(c.recordHeader, m, "answer"),
		}, true
	}

	if m := c.choice.FindStringSubmatch(line); m != nil {
		return Token{
			Kind:   KindChoice,
			Line:   line,
			Choice: group(c.choice, m, "label"),
			Text:   line,
		}, true
	}

	if c.delimiter != "" && line == c.delimiter {
		return Token{Kind: KindDelimiter, Line: line}, true
	}

	return Token{Kind: KindContinuation, Line: line, Text: line}, true
}

func group(re *regexp.Regexp, m []string, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || i >= len(m) {
		return ""
	}
	return strings.TrimSpace(m[i])
}

// NormalizeLabel turns a header label into a tag. With an empty separator
// the label is only trimmed; otherwise its words are joined by sep and
// words made only of dashes are dropped.
func NormalizeLabel(label, sep string) string {
	label = strings.TrimSpace(label)
	if sep == "" {
		return label
	}
	words := strings.Fields(label)
	kept := words[:0]
	for _, w := range words {
		if strings.Trim(w, "-–—") == "" {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, sep)
}
