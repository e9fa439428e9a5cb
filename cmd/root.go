package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/qbdeck/internal/export"
	"github.com/abhisek/qbdeck/internal/logger"
	"github.com/abhisek/qbdeck/internal/pdftext"
	"github.com/abhisek/qbdeck/internal/pipeline"
	"github.com/abhisek/qbdeck/internal/question"
)

var rootCmd = &cobra.Command{
	Use:   "qbdeck",
	Short: "Turn multiple-choice question banks into flashcard decks",
	Long: `qbdeck extracts multiple-choice questions from exam question-bank
documents (PDF or plain text) and packages them as Anki decks.

Document layouts are described by profiles. Built-in profiles: drone
(one answer key after all questions) and fcc (answer code inline in each
question header). Additional profiles can be loaded from a YAML file.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("profile", "", "Document profile (overrides QBDECK_PROFILE, default drone)")
	pf.String("profiles-file", "", "YAML file with additional profiles (overrides QBDECK_PROFILES_FILE)")
	pf.String("extractor", "", "Text extractor: auto, fitz, pdftotext or text (overrides QBDECK_EXTRACTOR)")
	pf.String("log-mode", "", "Log format: dev or prod (overrides QBDECK_LOG_MODE)")
	pf.Bool("strict", false, "Fail on any extraction defect (overrides QBDECK_STRICT)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig layers flags over QBDECK_* env vars over defaults.
func resolveConfig(cmd *cobra.Command) (pipeline.Config, error) {
	cfg := pipeline.ConfigFromEnv()
	flags := cmd.Flags()

	if v, _ := flags.GetString("profile"); v != "" {
		cfg.Profile = v
	}
	if v, _ := flags.GetString("profiles-file"); v != "" {
		cfg.ProfilesFile = v
	}
	if v, _ := flags.GetString("extractor"); v != "" {
		cfg.Extractor = pdftext.Extractor(strings.ToLower(v))
	}
	if v, _ := flags.GetString("log-mode"); v != "" {
		cfg.LogMode = v
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// runEnv is what every document-reading command needs.
type runEnv struct {
	cfg pipeline.Config
	log *logger.Logger
}

func newRunEnv(cmd *cobra.Command) (*runEnv, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return &runEnv{cfg: cfg, log: log}, nil
}

// extract runs the configured profile over the document at path.
func (e *runEnv) extract(ctx context.Context, path string) (*pipeline.Result, error) {
	reg, err := e.cfg.Registry()
	if err != nil {
		return nil, err
	}
	p, err := reg.Get(e.cfg.Profile)
	if err != nil {
		return nil, err
	}
	drv, err := pipeline.New(p, pipeline.Options{Logger: e.log, Strict: e.cfg.Strict})
	if err != nil {
		return nil, err
	}
	src, err := pdftext.Open(path, e.cfg.Extractor)
	if err != nil {
		return nil, err
	}
	e.log.Debug("extracting", "path", path, "extractor", e.cfg.Extractor)
	return drv.Extract(ctx, src)
}

// loadRecords reads records either from a JSON document written by the
// parse command or by extracting a source document.
func (e *runEnv) loadRecords(ctx context.Context, path string) ([]question.Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err := export.ReadFile(path)
		if err != nil {
			return nil, err
		}
		e.log.Info("loaded records", "path", path, "records", len(doc.Records))
		return doc.Records, nil
	}
	res, err := e.extract(ctx, path)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

// inputFlag returns the --pdf flag value, or the first positional arg.
func inputFlag(cmd *cobra.Command, args []string) (string, error) {
	if p, _ := cmd.Flags().GetString("pdf"); p != "" {
		return p, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return "", fmt.Errorf("no input document: pass --pdf or a path argument")
}

// deckName defaults to the input file name without extension.
func deckName(cmd *cobra.Command, input string) string {
	if n, _ := cmd.Flags().GetString("name"); n != "" {
		return n
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
