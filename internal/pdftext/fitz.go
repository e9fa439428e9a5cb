package pdftext

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// FitzSource renders a PDF with MuPDF through go-fitz.
type FitzSource struct {
	Path string
}

func (s *FitzSource) Pages(ctx context.Context) ([][]string, error) {
	doc, err := fitz.New(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := make([][]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(n)
		if err != nil {
			return nil, fmt.Errorf("extract text from page %d: %w", n+1, err)
		}
		pages = append(pages, SplitLines(text))
	}
	return pages, nil
}
