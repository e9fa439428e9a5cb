package pdftext

import (
	"context"
	"fmt"
	"os"
)

// TextSource reads already rendered text, pages separated by form feeds.
type TextSource struct {
	Path string
}

func (s *TextSource) Pages(_ context.Context) ([][]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return SplitPages(string(data)), nil
}
