package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/qbdeck/internal/question"
	"github.com/abhisek/qbdeck/internal/ui/layout"
	"github.com/abhisek/qbdeck/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview [document]",
	Short: "Render extracted questions as cards",
	Long: `Extract a document and render each record as a card, for checking a
profile against a new document before building a deck.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("pdf", "", "Input document (PDF, text or parse JSON)")
	previewCmd.Flags().Int("limit", 10, "Number of records to show (0 for all)")
	previewCmd.Flags().Int("width", 72, "Card width")
}

func runPreview(cmd *cobra.Command, args []string) error {
	input, err := inputFlag(cmd, args)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	width, _ := cmd.Flags().GetInt("width")

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	records, err := env.loadRecords(cmd.Context(), input)
	if err != nil {
		return err
	}

	shown := records
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}
	w := cmd.OutOrStdout()
	for i := range shown {
		fmt.Fprintln(w, renderRecord(i, &shown[i], width))
	}
	fmt.Fprintln(w, theme.Hint.Render(fmt.Sprintf("%d of %d records", len(shown), len(records))))
	return nil
}

func renderRecord(i int, rec *question.Record, width int) string {
	var body strings.Builder
	body.WriteString(rec.Question)
	for _, c := range rec.Choices() {
		body.WriteString("\n  ")
		body.WriteString(c)
	}
	body.WriteString("\n")
	if rec.AnswerIndex() >= 0 {
		body.WriteString(theme.Correct.Render("→ " + rec.Answer))
	} else {
		body.WriteString(theme.Defect.Render("→ unresolved: " + rec.Answer))
	}
	title := fmt.Sprintf("#%d  %s", i+1, rec.ID)
	return layout.RenderCard(title, body.String(), rec.Tags, width)
}
