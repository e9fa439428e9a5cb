// Package pdftext renders documents into ordered pages of text lines.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Source produces the pages of a document in reading order.
type Source interface {
	Pages(ctx context.Context) ([][]string, error)
}

// Extractor names a rendering backend.
type Extractor string

const (
	ExtractorAuto      Extractor = "auto"
	ExtractorFitz      Extractor = "fitz"
	ExtractorPdftotext Extractor = "pdftotext"
	ExtractorText      Extractor = "text"
)

// ErrUnsupportedExtractor is returned for an unknown extractor name.
var ErrUnsupportedExtractor = errors.New("unsupported extractor")

// ParseExtractor validates an extractor name. Empty means auto.
func ParseExtractor(s string) (Extractor, error) {
	switch e := Extractor(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return ExtractorAuto, nil
	case ExtractorAuto, ExtractorFitz, ExtractorPdftotext, ExtractorText:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtractor, s)
	}
}

// Open returns a Source for path. With ExtractorAuto, .txt files are read
// as text and everything else goes through MuPDF.
func Open(path string, e Extractor) (Source, error) {
	if e == "" || e == ExtractorAuto {
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			e = ExtractorText
		} else {
			e = ExtractorFitz
		}
	}
	switch e {
	case ExtractorFitz:
		return &FitzSource{Path: path}, nil
	case ExtractorPdftotext:
		return &PdftotextSource{Path: path}, nil
	case ExtractorText:
		return &TextSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtractor, e)
	}
}

// SplitPages splits rendered text into pages on form feeds and each page
// into lines. A trailing empty page left by a final form feed is dropped.
func SplitPages(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\f")
	if n := len(raw); n > 1 && strings.TrimSpace(raw[n-1]) == "" {
		raw = raw[:n-1]
	}
	pages := make([][]string, 0, len(raw))
	for _, p := range raw {
		pages = append(pages, SplitLines(p))
	}
	return pages
}

// SplitLines splits one page of text into lines.
func SplitLines(page string) []string {
	page = strings.TrimSuffix(strings.ReplaceAll(page, "\r\n", "\n"), "\n")
	if page == "" {
		return []string{}
	}
	return strings.Split(page, "\n")
}
