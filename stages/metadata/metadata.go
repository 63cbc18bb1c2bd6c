package metadata

import (
	"fmt"

	"github.com/mbiondo/logShaper/core"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("metadata", NewMetadataStageFromConfig)
}

// Config represents metadata aggregation configuration. FillExcept and
// FillWith are mutually exclusive selection modes.
type Config struct {
	Key        string   `yaml:"key,omitempty"`         // Target meta key, default "metadata"
	FillExcept []string `yaml:"fill_except,omitempty"` // Collect all keys except these
	FillWith   []string `yaml:"fill_with,omitempty"`   // Collect only these keys
}

// Validate validates the metadata configuration
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.FillWith, validation.By(func(any) error {
			if len(c.FillWith) > 0 && len(c.FillExcept) > 0 {
				return validation.NewError("validation_exclusive_modes",
					"fill_with and fill_except are mutually exclusive")
			}
			return nil
		})),
	)
}

// NewMetadataStageFromConfig creates a metadata stage from a configuration map
func NewMetadataStageFromConfig(config map[string]any) (any, error) {
	var cfg Config
	if err := core.GetStageConfig(config, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stage := New()
	if cfg.Key != "" {
		stage = stage.WithKey(cfg.Key)
	}
	if len(cfg.FillExcept) > 0 {
		stage = stage.WithFillExcept(cfg.FillExcept...)
	}
	if len(cfg.FillWith) > 0 {
		stage = stage.WithFillWith(cfg.FillWith...)
	}
	return stage, nil
}

// MetadataStage collects selected meta keys into one nested container
type MetadataStage struct {
	key        string
	fillExcept map[string]bool
	fillWith   map[string]bool
	err        error
}

// New creates a metadata stage collecting every key under "metadata"
func New() *MetadataStage {
	return &MetadataStage{
		key: "metadata",
	}
}

// WithKey sets the meta key the container is written under
func (s *MetadataStage) WithKey(key string) *MetadataStage {
	s.key = key
	return s
}

// WithFillExcept selects every key except the named ones. Combining it
// with WithFillWith is a configuration error, reported by the first
// Transform.
func (s *MetadataStage) WithFillExcept(keys ...string) *MetadataStage {
	s.fillExcept = make(map[string]bool, len(keys))
	for _, key := range keys {
		s.fillExcept[key] = true
	}
	if len(s.fillWith) > 0 {
		s.err = fmt.Errorf("metadata stage: fill_with and fill_except are mutually exclusive")
	}
	return s
}

// WithFillWith selects only the named keys. Combining it with
// WithFillExcept is a configuration error, reported by the first Transform.
func (s *MetadataStage) WithFillWith(keys ...string) *MetadataStage {
	s.fillWith = make(map[string]bool, len(keys))
	for _, key := range keys {
		s.fillWith[key] = true
	}
	if len(s.fillExcept) > 0 {
		s.err = fmt.Errorf("metadata stage: fill_with and fill_except are mutually exclusive")
	}
	return s
}

// Name returns the stage type name
func (s *MetadataStage) Name() string {
	return "metadata"
}

// Transform moves the selected keys into a nested map under the configured
// key. Keys outside the selection stay at the top level untouched.
func (s *MetadataStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	if s.err != nil {
		return rec, false, s.err
	}

	out := rec.Clone()
	collected := make(map[string]any)

	if len(s.fillWith) > 0 {
		for key := range s.fillWith {
			if value, present := out.Meta[key]; present {
				collected[key] = value
				delete(out.Meta, key)
			}
		}
	} else {
		for key, value := range rec.Meta {
			if s.fillExcept[key] {
				continue
			}
			collected[key] = value
			delete(out.Meta, key)
		}
	}

	out.Meta[s.key] = collected
	return out, true, nil
}
