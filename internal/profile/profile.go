// Package profile describes document formats and how to parse them.
package profile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/abhisek/qbdeck/internal/lineclass"
	"github.com/abhisek/qbdeck/internal/parse"
	"github.com/abhisek/qbdeck/internal/tags"
)

// Format selects the record assembly strategy.
type Format string

const (
	FormatTrailingKey Format = "trailing-key"
	FormatInline      Format = "inline"
)

// ErrUnknownProfile is returned when a profile name is not registered.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is the complete description of one document format.
type Profile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Format      Format `yaml:"format"`

	SectionHeader string   `yaml:"section_header"`
	RecordHeader  string   `yaml:"record_header"`
	PromptSuffix  string   `yaml:"prompt_suffix,omitempty"`
	Choice        string   `yaml:"choice"`
	Delimiter     string   `yaml:"delimiter,omitempty"`
	ModeSwitch    []string `yaml:"mode_switch,omitempty"`
	AnswerNumber  string   `yaml:"answer_number,omitempty"`

	TagPolicy    tags.Policy `yaml:"tag_policy"`
	TagPrefixLen int         `yaml:"tag_prefix_len,omitempty"`
	TagSeparator string      `yaml:"tag_separator,omitempty"`

	Joiner            string `yaml:"joiner"`
	PromptTerminators string `yaml:"prompt_terminators,omitempty"`
	CommitOnChoiceD   bool   `yaml:"commit_on_choice_d,omitempty"`
}

// Drone is the trailing-key format of the drone operator question bank:
// chapter headers, "(A)" choice markers, and one answer section at the end.
func Drone() Profile {
	return Profile{
		Name:              "drone",
		Description:       "Drone operator question bank (chapter headers, trailing answer key)",
		Format:            FormatTrailingKey,
		SectionHeader:     `^第.章 (?P<label>.*)$`,
		RecordHeader:      `^(?P<prompt>(?P<id>\d+[.]).*)$`,
		Choice:            `^\((?P<label>[A-D])\)`,
		ModeSwitch:        []string{"第一章 民用航空法及相關法規答案"},
		AnswerNumber:      parse.DefaultAnswerNumber,
		TagPolicy:         tags.PolicySingle,
		Joiner:            "",
		PromptTerminators: "？",
		CommitOnChoiceD:   true,
	}
}

// FCC is the inline-answer format of the FCC amateur radio question pools:
// SUBELEMENT headers, "T1A01 (B)" record headers, and "~~" delimiters.
func FCC() Profile {
	return Profile{
		Name:          "fcc",
		Description:   "FCC amateur radio question pool (SUBELEMENT headers, inline answers)",
		Format:        FormatInline,
		SectionHeader: `^SUBELEMENT (?P<label>(?P<prefix>[TGE]\d+) .*?)(?:\s+[-–])?\s+\[`,
		RecordHeader:  `^(?P<id>[TGE]\d[A-Z]\d{2}) \((?P<answer>[A-D])\)`,
		PromptSuffix:  ".",
		Choice:        `^(?P<label>[A-D])[.]`,
		Delimiter:     "~~",
		TagPolicy:     tags.PolicyPrefix,
		TagPrefixLen:  2,
		TagSeparator:  "-",
		Joiner:        " ",
	}
}

// Builtins returns the built-in profiles keyed by name.
func Builtins() map[string]Profile {
	return map[string]Profile{
		"drone": Drone(),
		"fcc":   FCC(),
	}
}

// Registry holds the profiles available to a run.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry creates a registry seeded with the built-in profiles.
func NewRegistry() *Registry {
	return &Registry{profiles: Builtins()}
}

// Add registers p, replacing a profile with the same name.
func (r *Registry) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	r.profiles[p.Name] = p
	return nil
}

// Get returns the named profile.
func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownProfile, name, r.Names())
	}
	return p, nil
}

// Names returns the registered profile names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for n := range r.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Rules returns the line classification rules of the profile.
func (p Profile) Rules() lineclass.Rules {
	return lineclass.Rules{
		SectionHeader: p.SectionHeader,
		RecordHeader:  p.RecordHeader,
		PromptSuffix:  p.PromptSuffix,
		Choice:        p.Choice,
		Delimiter:     p.Delimiter,
		ModeSwitch:    p.ModeSwitch,
		TagSeparator:  p.TagSeparator,
	}
}

// Options returns the record assembly options of the profile.
func (p Profile) Options() parse.Options {
	return parse.Options{
		Joiner:            p.Joiner,
		PromptTerminators: p.PromptTerminators,
		CommitOnChoiceD:   p.CommitOnChoiceD,
		AnswerNumber:      p.AnswerNumber,
	}
}

// Validate checks the profile for consistency and compiles every pattern.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch p.Format {
	case FormatTrailingKey:
		if len(p.ModeSwitch) == 0 {
			return fmt.Errorf("format %q requires mode_switch lines", p.Format)
		}
		if _, err := parse.CompileAnswerNumber(p.AnswerNumber); err != nil {
			return err
		}
	case FormatInline:
		if p.Delimiter == "" {
			return fmt.Errorf("format %q requires a delimiter", p.Format)
		}
	default:
		return fmt.Errorf("unknown format %q", p.Format)
	}
	if _, err := tags.ParsePolicy(string(p.TagPolicy)); err != nil {
		return err
	}
	if p.TagPrefixLen < 0 {
		return fmt.Errorf("tag_prefix_len must not be negative")
	}
	if _, err := lineclass.New(p.Rules()); err != nil {
		return err
	}
	return nil
}

// NewStrategy builds a fresh strategy and its tag resolver for one run.
func (p Profile) NewStrategy() (parse.Strategy, error) {
	policy, err := tags.ParsePolicy(string(p.TagPolicy))
	if err != nil {
		return nil, err
	}
	resolver := tags.NewResolver(policy, p.TagPrefixLen)
	switch p.Format {
	case FormatTrailingKey:
		return parse.NewTrailingKey(resolver, p.Options())
	case FormatInline:
		return parse.NewInline(resolver, p.Options()), nil
	default:
		return nil, fmt.Errorf("unknown format %q", p.Format)
	}
}
