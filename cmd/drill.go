package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/qbdeck/internal/drill"
)

var drillCmd = &cobra.Command{
	Use:   "drill [document]",
	Short: "Answer extracted questions in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDrill,
}

func init() {
	drillCmd.Flags().String("pdf", "", "Input document (PDF, text or parse JSON)")
	drillCmd.Flags().String("name", "", "Deck name shown in the header")
	drillCmd.Flags().Bool("shuffle", false, "Shuffle question order")
	drillCmd.Flags().Int("limit", 0, "Number of questions (0 for all)")
}

func runDrill(cmd *cobra.Command, args []string) error {
	input, err := inputFlag(cmd, args)
	if err != nil {
		return err
	}
	shuffle, _ := cmd.Flags().GetBool("shuffle")
	limit, _ := cmd.Flags().GetInt("limit")

	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	defer env.log.Sync()

	records, err := env.loadRecords(cmd.Context(), input)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no questions found in %s", input)
	}

	score, err := drill.Run(deckName(cmd, input), records, drill.Options{Shuffle: shuffle, Limit: limit})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), score)
	return nil
}
