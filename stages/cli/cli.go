package cli

import (
	"fmt"

	"github.com/mbiondo/logShaper/core"
	"github.com/mbiondo/logShaper/stages/colorize"
	"github.com/mbiondo/logShaper/stages/padlevels"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("cli", NewCliStageFromConfig)
}

// Config represents cli stage configuration, combining the padding and
// colorize option sets
type Config struct {
	Levels  []string            `yaml:"levels,omitempty"`  // Level set, default core.CLILevels
	Filler  string              `yaml:"filler,omitempty"`  // Padding filler
	Colors  map[string][]string `yaml:"colors,omitempty"`  // Level -> styles
	All     bool                `yaml:"all,omitempty"`     // Style both level and message
	Message bool                `yaml:"message,omitempty"` // Style the message
}

// NewCliStageFromConfig creates a cli stage from a configuration map
func NewCliStageFromConfig(config map[string]any) (any, error) {
	var cfg Config
	if err := core.GetStageConfig(config, &cfg); err != nil {
		return nil, err
	}
	if err := (colorize.Config{Colors: cfg.Colors}).Validate(); err != nil {
		return nil, err
	}

	stage := New()
	if len(cfg.Levels) > 0 {
		stage = stage.WithLevels(cfg.Levels)
	}
	if cfg.Filler != "" {
		stage = stage.WithFiller(cfg.Filler)
	}
	if len(cfg.Colors) > 0 {
		stage = stage.WithColors(cfg.Colors)
	}
	if cfg.All {
		stage = stage.WithAll(true)
	}
	if cfg.Message {
		stage = stage.WithMessage(true)
	}
	return stage, nil
}

// CliStage pads and colorizes a record into one styled "<level>:<message>"
// line. It composes the padlevels and colorize stages.
type CliStage struct {
	padder    *padlevels.Padder
	colorizer *colorize.Colorizer
}

// New creates a cli stage over the CLI level set with default colors
func New() *CliStage {
	return &CliStage{
		padder:    padlevels.New().WithLevels(core.LevelNames(core.CLILevels())),
		colorizer: colorize.New().WithColors(core.CLIColors()),
	}
}

// WithLevels replaces the level set used for padding
func (s *CliStage) WithLevels(levels []string) *CliStage {
	s.padder = s.padder.WithLevels(levels)
	return s
}

// WithFiller replaces the padding filler
func (s *CliStage) WithFiller(filler string) *CliStage {
	s.padder = s.padder.WithFiller(filler)
	return s
}

// WithColors merges level -> styles entries into the color table
func (s *CliStage) WithColors(colors map[string][]string) *CliStage {
	s.colorizer = s.colorizer.WithColors(colors)
	return s
}

// WithColor sets the styles for a single level
func (s *CliStage) WithColor(level string, styles ...string) *CliStage {
	s.colorizer = s.colorizer.WithColor(level, styles...)
	return s
}

// WithAll styles both level and message when true
func (s *CliStage) WithAll(all bool) *CliStage {
	s.colorizer = s.colorizer.WithAll(all)
	return s
}

// WithLevel controls styling of the level field
func (s *CliStage) WithLevel(level bool) *CliStage {
	s.colorizer = s.colorizer.WithLevel(level)
	return s
}

// WithMessage controls styling of the message field
func (s *CliStage) WithMessage(message bool) *CliStage {
	s.colorizer = s.colorizer.WithMessage(message)
	return s
}

// Name returns the stage type name
func (s *CliStage) Name() string {
	return "cli"
}

// Transform pads, colorizes, then folds the level into the message.
// Errors from the inner stages propagate to the caller unsuppressed.
func (s *CliStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	out, ok, err := s.padder.Transform(rec)
	if err != nil || !ok {
		return out, false, err
	}
	out, ok, err = s.colorizer.Transform(out)
	if err != nil || !ok {
		return out, false, err
	}

	// Both inner stages may return their input untouched (already-padded
	// record, colorization switched off), so copy before folding
	out = out.Clone()
	out.Message = fmt.Sprintf("%s:%s", out.Level, out.Message)
	return out, true, nil
}
