package align

import (
	"github.com/mbiondo/logShaper/core"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("align", NewAlignStageFromConfig)
}

// NewAlignStageFromConfig creates an align stage; it takes no configuration
func NewAlignStageFromConfig(_ map[string]any) (any, error) {
	return New(), nil
}

// AlignStage prepends a tab to the message so multi-line output lines up
type AlignStage struct{}

// New creates an align stage
func New() *AlignStage {
	return &AlignStage{}
}

// Name returns the stage type name
func (s *AlignStage) Name() string {
	return "align"
}

// Transform prepends a tab character to the message
func (s *AlignStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	out := rec.Clone()
	out.Message = "\t" + out.Message
	return out, true, nil
}
