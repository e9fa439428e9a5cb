package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/qbdeck/internal/export"
)

var parseCmd = &cobra.Command{
	Use:   "parse [document]",
	Short: "Extract a question bank to JSON",
	Long: `Extract every question of a document and print the records and the
defects found as JSON, or write them to --out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("pdf", "", "Input document (PDF or text)")
	parseCmd.Flags().StringP("out", "o", "", "Output JSON path (default stdout)")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := inputFlag(cmd, args)
	if err != nil {
		return err
	}
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	res, err := env.extract(cmd.Context(), input)
	if err != nil {
		return err
	}
	doc := export.FromResult(input, res)

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		data, err := export.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := export.WriteFile(out, doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records (%d defects) to %s\n",
		len(doc.Records), len(doc.Defects), out)
	return nil
}
