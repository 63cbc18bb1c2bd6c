package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record represents a structured log entry flowing through a chain.
// Level and Message are always present (possibly empty); Meta is an open
// attribute bag of JSON-compatible values (string, number, bool, nil,
// nested maps/slices).
type Record struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// NewRecord creates a new Record with an empty meta bag.
func NewRecord(level, message string) *Record {
	return &Record{
		Level:   level,
		Message: message,
		Meta:    make(map[string]any),
	}
}

// NewRecordWithMeta creates a new Record with the given meta bag.
func NewRecordWithMeta(level, message string, meta map[string]any) *Record {
	rec := NewRecord(level, message)
	for k, v := range meta {
		rec.Meta[k] = v
	}
	return rec
}

// WithMeta sets a meta entry and returns the record for fluent construction.
// Writing an existing key overwrites it.
func (r *Record) WithMeta(key string, value any) *Record {
	if r.Meta == nil {
		r.Meta = make(map[string]any)
	}
	r.Meta[key] = value
	return r
}

// WithoutMeta removes a meta entry and returns the record.
func (r *Record) WithoutMeta(key string) *Record {
	delete(r.Meta, key)
	return r
}

// Clone returns a copy of the record with its own meta map. Nested meta
// values are shared; stages treat them as read-only.
func (r *Record) Clone() *Record {
	meta := make(map[string]any, len(r.Meta))
	for k, v := range r.Meta {
		meta[k] = v
	}
	return &Record{
		Level:   r.Level,
		Message: r.Message,
		Meta:    meta,
	}
}

// Flatten returns a map with level and message at the root alongside all
// meta entries. Meta keys named "level" or "message" are overridden by the
// record's own fields.
func (r *Record) Flatten() map[string]any {
	flat := make(map[string]any, len(r.Meta)+2)
	for k, v := range r.Meta {
		flat[k] = v
	}
	flat["level"] = r.Level
	flat["message"] = r.Message
	return flat
}

// ToJSON serializes the record as a JSON object.
func (r *Record) ToJSON() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a record from a JSON object.
func FromJSON(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	if rec.Meta == nil {
		rec.Meta = make(map[string]any)
	}
	return &rec, nil
}

// String renders only the message. Stages are responsible for folding level,
// timestamp and meta into the message as needed.
func (r *Record) String() string {
	return r.Message
}

// ParseRecord parses a record from either a JSON object
// ({"level":..,"message":..,"meta":{..}}) or the bracketed text form
// "[LEVEL] message {key: value, ...}".
func ParseRecord(s string) (*Record, error) {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "{") {
		if rec, err := FromJSON([]byte(trimmed)); err == nil {
			return rec, nil
		}
	}

	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("expected record to start with '[LEVEL]' or a JSON object")
	}
	end := strings.Index(trimmed, "]")
	if end < 0 {
		return nil, fmt.Errorf("missing closing bracket for level")
	}

	level := trimmed[1:end]
	rest := strings.TrimSpace(trimmed[end+1:])

	metaStart := strings.Index(rest, "{")
	if metaStart < 0 {
		return NewRecord(level, rest), nil
	}

	rec := NewRecord(level, strings.TrimSpace(rest[:metaStart]))
	metaEnd := strings.LastIndex(rest, "}")
	if metaEnd <= metaStart {
		return rec, nil
	}

	for _, pair := range splitTopLevel(rest[metaStart+1 : metaEnd]) {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		raw := strings.TrimSpace(kv[1])

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		rec.Meta[key] = value
	}
	return rec, nil
}

// splitTopLevel splits a meta block body on the commas between entries,
// ignoring commas nested inside braces, brackets or quoted strings.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	inString := false
	start := 0

	for i, r := range s {
		switch r {
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				depth++
			}
		case '}', ']':
			if !inString {
				depth--
			}
		case ',':
			if !inString && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
