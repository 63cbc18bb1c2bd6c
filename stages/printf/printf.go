package printf

import (
	"github.com/mbiondo/logShaper/core"
)

// PrintfStage wraps a caller-supplied template function as a stage, for
// arbitrary custom rendering without writing a new stage type. The
// function must be pure: it reads the record and returns the new message.
//
// There is no registry factory for this stage; a template function cannot
// come from a configuration file.
type PrintfStage struct {
	template func(*core.Record) string
}

// New wraps the template function as a stage
func New(template func(*core.Record) string) *PrintfStage {
	return &PrintfStage{template: template}
}

// Name returns the stage type name
func (s *PrintfStage) Name() string {
	return "printf"
}

// Transform replaces the message with the template output
func (s *PrintfStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	out := rec.Clone()
	out.Message = s.template(rec)
	return out, true, nil
}
