package pdftext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [][]string
	}{
		{"single page", "a\nb\n", [][]string{{"a", "b"}}},
		{"form feeds", "a\n\fb\r\nc\n\f", [][]string{{"a"}, {"b", "c"}}},
		{"empty middle page", "a\f\fb", [][]string{{"a"}, {}, {"b"}}},
		{"empty", "", [][]string{{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPages(tt.in))
		})
	}
}

func TestParseExtractor(t *testing.T) {
	e, err := ParseExtractor("")
	require.NoError(t, err)
	assert.Equal(t, ExtractorAuto, e)

	e, err = ParseExtractor(" FITZ ")
	require.NoError(t, err)
	assert.Equal(t, ExtractorFitz, e)

	_, err = ParseExtractor("ocr")
	assert.True(t, errors.Is(err, ErrUnsupportedExtractor))
}

func TestOpen(t *testing.T) {
	src, err := Open("bank.txt", ExtractorAuto)
	require.NoError(t, err)
	assert.IsType(t, &TextSource{}, src)

	src, err = Open("bank.pdf", "")
	require.NoError(t, err)
	assert.IsType(t, &FitzSource{}, src)

	src, err = Open("bank.pdf", ExtractorPdftotext)
	require.NoError(t, err)
	assert.IsType(t, &PdftotextSource{}, src)

	_, err = Open("bank.pdf", "ocr")
	assert.Error(t, err)
}

func TestTextSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.txt")
	require.NoError(t, os.WriteFile(path, []byte("第一章 總則\n1.Q？\n\f(A)a\n"), 0o644))

	pages, err := (&TextSource{Path: path}).Pages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"第一章 總則", "1.Q？"}, {"(A)a"}}, pages)
}

func TestPdftotextMissingBinary(t *testing.T) {
	src := &PdftotextSource{Path: "bank.pdf", Binary: filepath.Join(t.TempDir(), "no-such-pdftotext")}
	_, err := src.Pages(context.Background())
	assert.Error(t, err)
}
