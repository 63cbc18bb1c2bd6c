package timestamp

import (
	"fmt"
	"time"

	"github.com/mbiondo/logShaper/core"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("timestamp", NewTimestampStageFromConfig)
}

// Config represents timestamp stage configuration
type Config struct {
	Format string `yaml:"format,omitempty"` // Go reference layout, default RFC3339
	Key    string `yaml:"key,omitempty"`    // Meta key to write, default "timestamp"
	Alias  string `yaml:"alias,omitempty"`  // Optional second meta key for the same value
}

// Validate validates the timestamp configuration. A layout is rejected when
// formatting the reference time with it produces output the layout cannot
// parse back.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Format, validation.By(validLayout)),
		validation.Field(&c.Key, validation.Length(0, 200)),
		validation.Field(&c.Alias, validation.Length(0, 200)),
	)
}

func validLayout(value any) error {
	layout := value.(string)
	if layout == "" {
		return nil
	}
	ref := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	if _, err := time.Parse(layout, ref.Format(layout)); err != nil {
		return fmt.Errorf("invalid time layout %q: %v", layout, err)
	}
	return nil
}

// NewTimestampStageFromConfig creates a timestamp stage from a configuration map
func NewTimestampStageFromConfig(config map[string]any) (any, error) {
	var cfg Config
	if err := core.GetStageConfig(config, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stage := New()
	if cfg.Format != "" {
		stage = stage.WithFormat(cfg.Format)
	}
	if cfg.Key != "" {
		stage = stage.WithKey(cfg.Key)
	}
	if cfg.Alias != "" {
		stage = stage.WithAlias(cfg.Alias)
	}
	return stage, nil
}

// TimestampStage adds the formatted current time to a record's meta
type TimestampStage struct {
	format string
	key    string
	alias  string
	now    func() time.Time
}

// New creates a timestamp stage with RFC3339 output under the "timestamp" key
func New() *TimestampStage {
	return &TimestampStage{
		format: time.RFC3339,
		key:    "timestamp",
		now:    time.Now,
	}
}

// WithFormat sets the Go reference layout used to render the time
func (s *TimestampStage) WithFormat(layout string) *TimestampStage {
	s.format = layout
	return s
}

// WithKey sets the meta key the timestamp is written under
func (s *TimestampStage) WithKey(key string) *TimestampStage {
	s.key = key
	return s
}

// WithAlias duplicates the timestamp under a second meta key
func (s *TimestampStage) WithAlias(alias string) *TimestampStage {
	s.alias = alias
	return s
}

// WithClock overrides the time source, for tests
func (s *TimestampStage) WithClock(now func() time.Time) *TimestampStage {
	s.now = now
	return s
}

// Name returns the stage type name
func (s *TimestampStage) Name() string {
	return "timestamp"
}

// Transform writes the formatted current time into meta. Level and message
// are never touched.
func (s *TimestampStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	out := rec.Clone()
	ts := s.now().UTC().Format(s.format)

	out.Meta[s.key] = ts
	if s.alias != "" {
		out.Meta[s.alias] = ts
	}
	return out, true, nil
}
