package label

import (
	"fmt"

	"github.com/mbiondo/logShaper/core"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("label", NewLabelStageFromConfig)
}

// Config represents label stage configuration
type Config struct {
	Label   string `yaml:"label"`             // The label text
	Message bool   `yaml:"message,omitempty"` // Prefix the message instead of writing meta["label"]
}

// NewLabelStageFromConfig creates a label stage from a configuration map
func NewLabelStageFromConfig(config map[string]any) (any, error) {
	var cfg Config
	if err := core.GetStageConfig(config, &cfg); err != nil {
		return nil, err
	}

	return New().WithLabel(cfg.Label).WithMessage(cfg.Message), nil
}

// LabelStage attaches a fixed label to every record
type LabelStage struct {
	label   string
	message bool
}

// New creates a label stage writing meta["label"]
func New() *LabelStage {
	return &LabelStage{}
}

// WithLabel sets the label text
func (s *LabelStage) WithLabel(label string) *LabelStage {
	s.label = label
	return s
}

// WithMessage prefixes "[label] " to the message instead of writing meta
func (s *LabelStage) WithMessage(apply bool) *LabelStage {
	s.message = apply
	return s
}

// Name returns the stage type name
func (s *LabelStage) Name() string {
	return "label"
}

// Transform attaches the label. The level is never altered; an existing
// meta["label"] is overwritten.
func (s *LabelStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	out := rec.Clone()
	if s.message {
		out.Message = fmt.Sprintf("[%s] %s", s.label, out.Message)
	} else {
		out.Meta["label"] = s.label
	}
	return out, true, nil
}
