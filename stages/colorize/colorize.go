package colorize

import (
	"sync/atomic"

	"github.com/mbiondo/logShaper/core"
	"github.com/mbiondo/logShaper/pkg/ansi"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("colorize", NewColorizerFromConfig)
}

// enabled is the package-wide master switch. When off, every colorizer
// passes records through unstyled.
var enabled atomic.Bool

func init() {
	enabled.Store(true)
}

// SetEnabled flips the master switch for all colorizer instances
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports the master switch state
func Enabled() bool {
	return enabled.Load()
}

// Config represents colorize stage configuration. A color value is either
// a single style name or a list of style names applied together.
type Config struct {
	Colors  map[string][]string `yaml:"colors,omitempty"`  // Level -> styles, default core.DefaultColors
	All     bool                `yaml:"all,omitempty"`     // Style both level and message
	Level   *bool               `yaml:"level,omitempty"`   // Style the level, default true
	Message bool                `yaml:"message,omitempty"` // Style the message
}

// Validate validates the colorize configuration
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Colors, validation.By(func(value any) error {
			for level, styles := range value.(map[string][]string) {
				for _, style := range styles {
					if !ansi.IsStyle(style) {
						return validation.NewError("validation_unknown_style",
							"unknown style "+style+" for level "+level)
					}
				}
			}
			return nil
		})),
	)
}

// NewColorizerFromConfig creates a colorize stage from a configuration map
func NewColorizerFromConfig(config map[string]any) (any, error) {
	var cfg Config
	if err := core.GetStageConfig(config, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stage := New()
	if len(cfg.Colors) > 0 {
		stage = stage.WithColors(cfg.Colors)
	}
	if cfg.All {
		stage = stage.WithAll(true)
	}
	if cfg.Level != nil {
		stage = stage.WithLevel(*cfg.Level)
	}
	if cfg.Message {
		stage = stage.WithMessage(true)
	}
	return stage, nil
}

// Colorizer applies per-level styles to the level and/or message
type Colorizer struct {
	colors  map[string][]string
	all     bool
	level   bool
	message bool
}

// New creates a colorizer with the default color table, styling the level only
func New() *Colorizer {
	return &Colorizer{
		colors: core.DefaultColors(),
		level:  true,
	}
}

// WithAll styles both level and message when true
func (c *Colorizer) WithAll(all bool) *Colorizer {
	c.all = all
	return c
}

// WithLevel controls styling of the level field
func (c *Colorizer) WithLevel(level bool) *Colorizer {
	c.level = level
	return c
}

// WithMessage controls styling of the message field
func (c *Colorizer) WithMessage(message bool) *Colorizer {
	c.message = message
	return c
}

// WithColors merges the given level -> styles entries into the color table
func (c *Colorizer) WithColors(colors map[string][]string) *Colorizer {
	for level, styles := range colors {
		c.colors[level] = styles
	}
	return c
}

// WithColor sets the styles for a single level
func (c *Colorizer) WithColor(level string, styles ...string) *Colorizer {
	c.colors[level] = styles
	return c
}

// colorize styles s with the colors of the given level. Levels without an
// entry in the table pass through unstyled.
func (c *Colorizer) colorize(level, s string) string {
	styles, known := c.colors[level]
	if !known {
		return s
	}
	return ansi.Apply(s, styles...)
}

// Name returns the stage type name
func (c *Colorizer) Name() string {
	return "colorize"
}

// Transform styles the configured fields, looking styles up by the record's
// original level. Text content is never altered, only wrapped.
func (c *Colorizer) Transform(rec *core.Record) (*core.Record, bool, error) {
	if !enabled.Load() {
		return rec, true, nil
	}

	out := rec.Clone()
	original := out.Level
	if c.all || c.level {
		out.Level = c.colorize(original, out.Level)
	}
	if c.all || c.message {
		out.Message = c.colorize(original, out.Message)
	}
	return out, true, nil
}
