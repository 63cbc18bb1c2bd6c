package logstash

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mbiondo/logShaper/core"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("logstash", NewLogstashStageFromConfig)
}

// NewLogstashStageFromConfig creates a logstash stage; it takes no configuration
func NewLogstashStageFromConfig(_ map[string]any) (any, error) {
	return New(), nil
}

// LogstashStage serializes records into the Logstash JSON event shape:
// {"@timestamp": ..., "@message": ..., "@fields": {...}}. The key names
// are an external contract and reproduced exactly.
type LogstashStage struct {
	now func() time.Time
}

// New creates a logstash serialization stage
func New() *LogstashStage {
	return &LogstashStage{
		now: time.Now,
	}
}

// WithClock overrides the time source used when no timestamp is present,
// for tests
func (s *LogstashStage) WithClock(now func() time.Time) *LogstashStage {
	s.now = now
	return s
}

// timestampFrom resolves @timestamp from meta["timestamp"]: strings pass
// through as-is, integers are treated as epoch seconds, anything else
// falls back to the current time.
func (s *LogstashStage) timestampFrom(value any, present bool) string {
	if present {
		switch ts := value.(type) {
		case string:
			return ts
		case int:
			return time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
		case int64:
			return time.Unix(ts, 0).UTC().Format(time.RFC3339)
		case float64:
			return time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
		}
	}
	return s.now().UTC().Format(time.RFC3339)
}

// Name returns the stage type name
func (s *LogstashStage) Name() string {
	return "logstash"
}

// Transform replaces the message with the serialized logstash event.
// meta["timestamp"] feeds @timestamp and is removed; level and the
// remaining meta entries become @fields.
func (s *LogstashStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	out := rec.Clone()

	ts, present := out.Meta["timestamp"]
	delete(out.Meta, "timestamp")

	fields := make(map[string]any, len(out.Meta)+1)
	for key, value := range out.Meta {
		fields[key] = value
	}
	fields["level"] = out.Level

	event := map[string]any{
		"@timestamp": s.timestampFrom(ts, present),
		"@message":   out.Message,
		"@fields":    fields,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return rec, false, fmt.Errorf("logstash stage: failed to serialize event: %w", err)
	}

	out.Message = string(data)
	return out, true, nil
}
