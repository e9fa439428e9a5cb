package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/qbdeck/internal/parse"
	"github.com/abhisek/qbdeck/internal/tags"
)

func TestBuiltinsValidate(t *testing.T) {
	for name, p := range Builtins() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, p.Name)
			require.NoError(t, p.Validate())
			s, err := p.NewStrategy()
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestNewStrategyKinds(t *testing.T) {
	s, err := Drone().NewStrategy()
	require.NoError(t, err)
	assert.IsType(t, &parse.TrailingKey{}, s)

	s, err = FCC().NewStrategy()
	require.NoError(t, err)
	assert.IsType(t, &parse.Inline{}, s)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"no name", func(p *Profile) { p.Name = "" }},
		{"unknown format", func(p *Profile) { p.Format = "csv" }},
		{"trailing key without mode switch", func(p *Profile) { p.ModeSwitch = nil }},
		{"bad answer number", func(p *Profile) { p.AnswerNumber = `\d+` }},
		{"bad tag policy", func(p *Profile) { p.TagPolicy = "nearest" }},
		{"negative prefix len", func(p *Profile) { p.TagPrefixLen = -1 }},
		{"bad choice pattern", func(p *Profile) { p.Choice = `^\(` }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Drone()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}

	p := FCC()
	p.Delimiter = ""
	assert.Error(t, p.Validate(), "inline format needs a delimiter")
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, []string{"drone", "fcc"}, reg.Names())

	p, err := reg.Get("fcc")
	require.NoError(t, err)
	assert.Equal(t, FormatInline, p.Format)

	_, err = reg.Get("sat")
	assert.True(t, errors.Is(err, ErrUnknownProfile))

	custom := Drone()
	custom.Name = "drone-2024"
	custom.ModeSwitch = []string{"答案"}
	require.NoError(t, reg.Add(custom))
	assert.Equal(t, []string{"drone", "drone-2024", "fcc"}, reg.Names())

	bad := custom
	bad.Format = ""
	assert.Error(t, reg.Add(bad))
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Drone(), FCC())
	require.NoError(t, err)

	f, err := ParseFile(data)
	require.NoError(t, err)
	require.Len(t, f.Profiles, 2)
	assert.Equal(t, Drone(), f.Profiles[0])
	assert.Equal(t, FCC(), f.Profiles[1])
}

func TestParseFile(t *testing.T) {
	f, err := ParseFile(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Profiles)

	_, err = ParseFile([]byte("profiles:\n  - name: x\n    colour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = ParseFile([]byte("profiles: []\n---\nprofiles: []\n"))
	assert.ErrorContains(t, err, "multiple YAML documents")
}

func TestRegistryLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `profiles:
  - name: quiz
    format: inline
    section_header: '^== (?P<label>.+) ==$'
    record_header: '^Q(?P<id>\d+) \[(?P<answer>[A-D])\]$'
    prompt_suffix: ":"
    choice: '^(?P<label>[A-D])\)'
    delimiter: "--"
    tag_policy: single
    joiner: " "
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg := NewRegistry()
	require.NoError(t, reg.Load(path))

	p, err := reg.Get("quiz")
	require.NoError(t, err)
	assert.Equal(t, FormatInline, p.Format)
	assert.Equal(t, tags.PolicySingle, p.TagPolicy)
	assert.Equal(t, "--", p.Delimiter)

	assert.Error(t, reg.Load(filepath.Join(t.TempDir(), "missing.yaml")))
}
