package uncolorize

import (
	"github.com/mbiondo/logShaper/core"
	"github.com/mbiondo/logShaper/pkg/ansi"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("uncolorize", NewUncolorizeStageFromConfig)
}

// Config represents uncolorize stage configuration
type Config struct {
	Level   *bool `yaml:"level,omitempty"`   // Strip the level, default true
	Message *bool `yaml:"message,omitempty"` // Strip the message, default true
}

// NewUncolorizeStageFromConfig creates an uncolorize stage from a configuration map
func NewUncolorizeStageFromConfig(config map[string]any) (any, error) {
	var cfg Config
	if err := core.GetStageConfig(config, &cfg); err != nil {
		return nil, err
	}

	stage := New()
	if cfg.Level != nil {
		stage = stage.WithLevel(*cfg.Level)
	}
	if cfg.Message != nil {
		stage = stage.WithMessage(*cfg.Message)
	}
	return stage, nil
}

// UncolorizeStage strips embedded style escape sequences, however they
// were applied upstream
type UncolorizeStage struct {
	level   bool
	message bool
}

// New creates an uncolorize stage stripping both level and message
func New() *UncolorizeStage {
	return &UncolorizeStage{
		level:   true,
		message: true,
	}
}

// WithLevel controls stripping of the level field
func (s *UncolorizeStage) WithLevel(strip bool) *UncolorizeStage {
	s.level = strip
	return s
}

// WithMessage controls stripping of the message field
func (s *UncolorizeStage) WithMessage(strip bool) *UncolorizeStage {
	s.message = strip
	return s
}

// Name returns the stage type name
func (s *UncolorizeStage) Name() string {
	return "uncolorize"
}

// Transform strips style sequences from the configured fields. Records
// without any sequences pass through unchanged.
func (s *UncolorizeStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	out := rec.Clone()
	if s.level {
		out.Level = ansi.Strip(out.Level)
	}
	if s.message {
		out.Message = ansi.Strip(out.Message)
	}
	return out, true, nil
}
