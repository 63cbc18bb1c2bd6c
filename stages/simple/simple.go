package simple

import (
	"encoding/json"
	"fmt"

	"github.com/mbiondo/logShaper/core"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("simple", NewSimpleStageFromConfig)
}

// NewSimpleStageFromConfig creates a simple stage; it takes no configuration
func NewSimpleStageFromConfig(_ map[string]any) (any, error) {
	return New(), nil
}

// SimpleStage renders "<level>:<padding> <message> <meta-json>". The
// padding comes from the table an upstream padding stage stored under
// meta["padding"]; without one, no padding is applied.
type SimpleStage struct{}

// New creates a simple rendering stage
func New() *SimpleStage {
	return &SimpleStage{}
}

// Name returns the stage type name
func (s *SimpleStage) Name() string {
	return "simple"
}

// paddingFor looks up the record's level in the meta padding table
func paddingFor(rec *core.Record) string {
	table, present := rec.Meta["padding"]
	if !present {
		return ""
	}

	switch t := table.(type) {
	case map[string]any:
		if padding, ok := t[rec.Level].(string); ok {
			return padding
		}
	case map[string]string:
		return t[rec.Level]
	}
	return ""
}

// Transform renders the single-line form. The bookkeeping keys level,
// message, splat and padding are excluded from the trailing meta JSON.
func (s *SimpleStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	message := fmt.Sprintf("%s:%s %s", rec.Level, paddingFor(rec), rec.Message)

	rest := make(map[string]any, len(rec.Meta))
	for key, value := range rec.Meta {
		switch key {
		case "level", "message", "splat", "padding":
			continue
		}
		rest[key] = value
	}

	if len(rest) > 0 {
		if data, err := json.Marshal(rest); err == nil {
			message = fmt.Sprintf("%s %s", message, data)
		}
	}

	out := rec.Clone()
	out.Message = message
	return out, true, nil
}
