package pdftext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// PdftotextSource renders a PDF with the poppler pdftotext tool, which
// separates pages with form feeds.
type PdftotextSource struct {
	Path string
	// Binary overrides the pdftotext executable. Default: "pdftotext".
	Binary string
}

func (s *PdftotextSource) Pages(ctx context.Context) ([][]string, error) {
	bin := s.Binary
	if bin == "" {
		bin = "pdftotext"
	}
	cmd := exec.CommandContext(ctx, bin, "-enc", "UTF-8", s.Path, "-")
	cmd.Stderr = os.Stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	return SplitPages(string(output)), nil
}
