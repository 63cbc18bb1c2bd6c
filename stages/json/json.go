package json

import (
	"encoding/json"
	"fmt"

	"github.com/mbiondo/logShaper/core"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("json", NewJsonStageFromConfig)
}

// NewJsonStageFromConfig creates a JSON serialization stage; it takes no
// configuration
func NewJsonStageFromConfig(_ map[string]any) (any, error) {
	return New(), nil
}

// JsonStage serializes the whole record into a JSON object string
type JsonStage struct{}

// New creates a JSON serialization stage
func New() *JsonStage {
	return &JsonStage{}
}

// Name returns the stage type name
func (s *JsonStage) Name() string {
	return "json"
}

// Transform replaces the message with a JSON object holding level, message
// and every meta entry flattened to the top level. Meta is cleared
// afterwards so downstream stages see the serialized form only. A meta
// value that cannot be serialized is a hard error, never dropped silently.
func (s *JsonStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	data, err := json.Marshal(rec.Flatten())
	if err != nil {
		return rec, false, fmt.Errorf("json stage: non-serializable meta value: %w", err)
	}

	return &core.Record{
		Level:   rec.Level,
		Message: string(data),
		Meta:    make(map[string]any),
	}, true, nil
}
