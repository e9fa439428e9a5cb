package cmd

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fccPool = `SUBELEMENT T1 Basics [6 Exam Questions]
T1A01 (B)
Which agency regulates amateur radio?
A. FEMA
B. FCC
C. NTIA
D. ITU
~~
T1A02 (D)
What is a repeater?
A. A
B. B
C. C
D. A station that retransmits
~~
`

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QBDECK_LOG_MODE", "prod")
	t.Setenv("QBDECK_PROFILE", "")
	t.Setenv("QBDECK_STRICT", "")
	t.Setenv("QBDECK_EXTRACTOR", "")
	t.Setenv("QBDECK_PROFILES_FILE", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(t)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}

func writePool(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.txt")
	require.NoError(t, os.WriteFile(path, []byte(fccPool), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "qbdeck "))
}

func TestRootHelpDescribesProfiles(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "drone\n(one answer key after all questions)")
	assert.NotContains(t, out, "each chapter")
}

func TestParseToStdout(t *testing.T) {
	pool := writePool(t)
	out, err := execute(t, "parse", "--profile", "fcc", pool)
	require.NoError(t, err)

	var doc struct {
		Profile string `json:"profile"`
		Records []struct {
			ID     string   `json:"id"`
			Answer string   `json:"answer"`
			Tags   []string `json:"tags"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "fcc", doc.Profile)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "B. FCC", doc.Records[0].Answer)
	assert.Equal(t, "D. A station that retransmits", doc.Records[1].Answer)
	assert.Equal(t, []string{"T1-Basics"}, doc.Records[1].Tags)
}

func TestParseThenBuild(t *testing.T) {
	pool := writePool(t)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "pool.json")

	out, err := execute(t, "parse", "--profile", "fcc", "--pdf", pool, "--out", jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 records")
	resetFlags(t)

	apkg := filepath.Join(dir, "deck", "ham.apkg")
	out, err = execute(t, "build", "--pdf", jsonPath, "--apkg", apkg, "--name", "Ham Radio")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 notes to "+apkg)

	zr, err := zip.OpenReader(apkg)
	require.NoError(t, err)
	defer zr.Close()
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"collection.anki2", "media"}, names)
}

func TestBuildDefaultsToDroneProfile(t *testing.T) {
	pool := writePool(t)
	// No line of the fcc pool matches the drone layout.
	_, err := execute(t, "build", "--apkg", filepath.Join(t.TempDir(), "x.apkg"), pool)
	assert.ErrorContains(t, err, "no questions found")
}

func TestStrictFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untagged.txt")
	require.NoError(t, os.WriteFile(path, []byte("T1A01 (A)\nA.a\nB.b\nC.c\nD.d\n~~\n"), 0o644))

	_, err := execute(t, "parse", "--profile", "fcc", path)
	require.NoError(t, err)
	resetFlags(t)

	_, err = execute(t, "parse", "--profile", "fcc", "--strict", path)
	assert.ErrorContains(t, err, "extraction defects")
}

func TestPreview(t *testing.T) {
	pool := writePool(t)
	out, err := execute(t, "preview", "--profile", "fcc", "--limit", "1", pool)
	require.NoError(t, err)
	assert.Contains(t, out, "T1A01")
	assert.Contains(t, out, "1 of 2 records")
	assert.NotContains(t, out, "T1A02")
}

func TestProfiles(t *testing.T) {
	out, err := execute(t, "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "drone")
	assert.Contains(t, out, "trailing-key")
	assert.Contains(t, out, "fcc")
	resetFlags(t)

	out, err = execute(t, "profiles", "--dump", "fcc")
	require.NoError(t, err)
	assert.Contains(t, out, "profiles:")
	assert.Contains(t, out, "format: inline")
}

func TestProfilesFile(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(custom, []byte(`profiles:
  - name: quiz
    format: inline
    section_header: '^== (?P<label>.+) ==$'
    record_header: '^Q(?P<id>\d+) \[(?P<answer>[A-D])\]$'
    prompt_suffix: ":"
    choice: '^(?P<label>[A-D])\)'
    delimiter: "--"
    joiner: " "
`), 0o644))
	doc := filepath.Join(dir, "quiz.txt")
	require.NoError(t, os.WriteFile(doc, []byte("== Geography ==\nQ1 [C]\nCapital of France?\nA) Rome\nB) Bern\nC) Paris\nD) Oslo\n--\n"), 0o644))

	out, err := execute(t, "parse", "--profiles-file", custom, "--profile", "quiz", doc)
	require.NoError(t, err)
	assert.Contains(t, out, `"question": "1: Capital of France?"`)
	assert.Contains(t, out, `"answer": "C) Paris"`)
	assert.Contains(t, out, `"Geography"`)
}

func TestMissingInput(t *testing.T) {
	_, err := execute(t, "parse")
	assert.ErrorContains(t, err, "no input document")
}

func TestUnknownProfile(t *testing.T) {
	_, err := execute(t, "parse", "--profile", "sat", writePool(t))
	assert.ErrorContains(t, err, "unknown profile")
}
