package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/qbdeck/internal/deck"
)

var buildCmd = &cobra.Command{
	Use:   "build [document]",
	Short: "Extract a question bank and write an Anki package",
	Long: `Extract every question of a document with the selected profile and
write them as an Anki .apkg deck. The input may also be a JSON document
written by "qbdeck parse".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("pdf", "", "Input document (PDF, text or parse JSON)")
	buildCmd.Flags().String("apkg", "", "Output package path (default <name>.apkg)")
	buildCmd.Flags().String("name", "", "Deck name (default input file name)")
	buildCmd.Flags().Int64("deck-id", 0, "Fixed deck id (default random)")
	buildCmd.Flags().Int64("model-id", 0, "Fixed note type id (default random)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	input, err := inputFlag(cmd, args)
	if err != nil {
		return err
	}
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

	name := deckName(cmd, input)
	out, _ := cmd.Flags().GetString("apkg")
	if out == "" {
		out = strings.ReplaceAll(name, " ", "_") + ".apkg"
	}
	deckID, _ := cmd.Flags().GetInt64("deck-id")
	modelID, _ := cmd.Flags().GetInt64("model-id")

	d := deck.New(name, records, deck.Options{DeckID: deckID, ModelID: modelID})
	if err := deck.Write(cmd.Context(), out, d); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	env.log.Info("deck written", "path", out, "deck", name, "notes", len(d.Notes))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d notes to %s\n", len(d.Notes), out)
	return nil
}
