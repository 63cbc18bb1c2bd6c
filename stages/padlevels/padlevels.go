package padlevels

import (
	"strings"

	"github.com/mbiondo/logShaper/core"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("padlevels", NewPadderFromConfig)
}

// Config represents padding stage configuration. Widths, when set, maps a
// level name to the column its message should start at; otherwise the
// target column is derived from the longest name in Levels.
type Config struct {
	Levels []string       `yaml:"levels,omitempty"` // Level set, default core.DefaultLevels
	Filler string         `yaml:"filler,omitempty"` // Filler string, default single space
	Widths map[string]int `yaml:"widths,omitempty"` // Explicit level -> target width
}

// Validate validates the padding configuration
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Filler, validation.Length(0, 10)),
		validation.Field(&c.Widths, validation.By(func(value any) error {
			for level, width := range value.(map[string]int) {
				if width < 0 {
					return validation.NewError("validation_negative_width",
						"width for level "+level+" must not be negative")
				}
			}
			return nil
		})),
	)
}

// NewPadderFromConfig creates a padding stage from a configuration map
func NewPadderFromConfig(config map[string]any) (any, error) {
	var cfg Config
	if err := core.GetStageConfig(config, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stage := New()
	if len(cfg.Levels) > 0 {
		stage = stage.WithLevels(cfg.Levels)
	}
	if cfg.Filler != "" {
		stage = stage.WithFiller(cfg.Filler)
	}
	if len(cfg.Widths) > 0 {
		stage = stage.WithWidths(cfg.Widths)
	}
	return stage, nil
}

// Padder pads messages so they start at a common column across levels
type Padder struct {
	levels   []string
	filler   string
	widths   map[string]int
	paddings map[string]string
}

// New creates a padder over the default level set with a space filler
func New() *Padder {
	p := &Padder{
		levels: core.LevelNames(core.DefaultLevels()),
		filler: " ",
	}
	p.rebuild()
	return p
}

// WithLevels replaces the level set the paddings are computed from
func (p *Padder) WithLevels(levels []string) *Padder {
	p.levels = levels
	p.rebuild()
	return p
}

// WithFiller replaces the filler string
func (p *Padder) WithFiller(filler string) *Padder {
	p.filler = filler
	p.rebuild()
	return p
}

// WithWidths sets explicit target widths per level, overriding the
// computed ones. Levels absent from the map get no padding.
func (p *Padder) WithWidths(widths map[string]int) *Padder {
	p.widths = widths
	p.rebuild()
	return p
}

// rebuild recomputes the per-level padding table
func (p *Padder) rebuild() {
	paddings := make(map[string]string)

	if len(p.widths) > 0 {
		for level, width := range p.widths {
			if count := width - len(level); count > 0 {
				paddings[level] = pad(p.filler, count)
			} else {
				paddings[level] = ""
			}
		}
		p.paddings = paddings
		return
	}

	longest := 0
	for _, level := range p.levels {
		if len(level) > longest {
			longest = len(level)
		}
	}
	for _, level := range p.levels {
		paddings[level] = pad(p.filler, longest+1-len(level))
	}
	p.paddings = paddings
}

// pad repeats filler until count characters are produced. Truncation
// counts runes, not bytes, so a multibyte filler is never cut mid-rune.
func pad(filler string, count int) string {
	if count <= 0 || filler == "" {
		return ""
	}
	repeated := []rune(strings.Repeat(filler, count))
	if len(repeated) > count {
		repeated = repeated[:count]
	}
	return string(repeated)
}

// Paddings returns the level -> padding table, as written to meta
func (p *Padder) Paddings() map[string]string {
	return p.paddings
}

// Name returns the stage type name
func (p *Padder) Name() string {
	return "padlevels"
}

// Transform prefixes the message with the padding for its level and records
// the padding table under meta["padding"]. A record that already carries a
// padding table has been padded upstream and passes through unchanged, so
// re-applying the stage never double-pads.
func (p *Padder) Transform(rec *core.Record) (*core.Record, bool, error) {
	if _, done := rec.Meta["padding"]; done {
		return rec, true, nil
	}

	out := rec.Clone()
	if padding, known := p.paddings[out.Level]; known {
		out.Message = padding + out.Message
	}

	table := make(map[string]any, len(p.paddings))
	for level, padding := range p.paddings {
		table[level] = padding
	}
	out.Meta["padding"] = table

	return out, true, nil
}
