package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/qbdeck/internal/pdftext"
	"github.com/abhisek/qbdeck/internal/profile"
)

// Config holds the settings of one extraction run.
type Config struct {
	// Profile names the document format. Default: "drone".
	Profile string

	// ProfilesFile is an optional YAML file with extra profiles.
	ProfilesFile string

	// Extractor selects the document renderer. Default: "auto".
	Extractor pdftext.Extractor

	// LogMode is "dev" or "prod". Default: "dev".
	LogMode string

	// Strict turns soft defects into a failed run.
	Strict bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Profile:   "drone",
		Extractor: pdftext.ExtractorAuto,
		LogMode:   "dev",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QBDECK_PROFILE"); p != "" {
		cfg.Profile = p
	}
	if f := os.Getenv("QBDECK_PROFILES_FILE"); f != "" {
		cfg.ProfilesFile = f
	}
	if e := os.Getenv("QBDECK_EXTRACTOR"); e != "" {
		cfg.Extractor = pdftext.Extractor(strings.ToLower(e))
	}
	if m := os.Getenv("QBDECK_LOG_MODE"); m != "" {
		cfg.LogMode = m
	}
	if s := os.Getenv("QBDECK_STRICT"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			cfg.Strict = v
		}
	}

	return cfg
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.Profile == "" {
		return fmt.Errorf("profile is required")
	}
	if _, err := pdftext.ParseExtractor(string(c.Extractor)); err != nil {
		return err
	}
	switch strings.ToLower(c.LogMode) {
	case "", "dev", "development", "prod", "production", "json":
	default:
		return fmt.Errorf("unknown log mode %q", c.LogMode)
	}
	return nil
}

// Registry returns the profiles available under this config: the built-ins
// plus those of ProfilesFile.
func (c Config) Registry() (*profile.Registry, error) {
	reg := profile.NewRegistry()
	if c.ProfilesFile != "" {
		if err := reg.Load(c.ProfilesFile); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
