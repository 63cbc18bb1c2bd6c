package passthrough

import (
	"github.com/mbiondo/logShaper/core"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("passthrough", NewPassthroughStageFromConfig)
}

// NewPassthroughStageFromConfig creates a passthrough stage; it takes no
// configuration
func NewPassthroughStageFromConfig(_ map[string]any) (any, error) {
	return New(), nil
}

// PassthroughStage keeps records unchanged. Useful as a chain placeholder
// and in tests that only care about chain mechanics.
type PassthroughStage struct{}

// New creates a passthrough stage
func New() *PassthroughStage {
	return &PassthroughStage{}
}

// Name returns the stage type name
func (s *PassthroughStage) Name() string {
	return "passthrough"
}

// Transform returns the record as-is
func (s *PassthroughStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	return rec, true, nil
}
