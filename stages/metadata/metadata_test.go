package metadata

import (
	"reflect"
	"testing"

	"github.com/mbiondo/logShaper/core"
)

func record() *core.Record {
	return core.NewRecord("info", "test").
		WithMeta("a", 1).
		WithMeta("b", 2).
		WithMeta("c", 3)
}

func TestMetadataCollectsAllByDefault(t *testing.T) {
	stage := New()

	out, ok, err := stage.Transform(record())
	if err != nil || !ok {
		t.Fatalf("Transform ok=%v err=%v", ok, err)
	}

	collected, present := out.Meta["metadata"].(map[string]any)
	if !present {
		t.Fatalf("Expected meta[metadata] map, got %T", out.Meta["metadata"])
	}
	if !reflect.DeepEqual(collected, map[string]any{"a": 1, "b": 2, "c": 3}) {
		t.Errorf("Collected = %v, expected all three keys", collected)
	}
	if len(out.Meta) != 1 {
		t.Errorf("Top level keys = %d, expected only the container", len(out.Meta))
	}
}

func TestMetadataFillExcept(t *testing.T) {
	stage := New().WithFillExcept("c")

	out, _, _ := stage.Transform(record())

	if out.Meta["c"] != 3 {
		t.Errorf("Meta[c] = %v, excluded key should stay at top level", out.Meta["c"])
	}
	collected := out.Meta["metadata"].(map[string]any)
	if !reflect.DeepEqual(collected, map[string]any{"a": 1, "b": 2}) {
		t.Errorf("Collected = %v, expected a and b", collected)
	}
}

func TestMetadataFillWith(t *testing.T) {
	stage := New().WithFillWith("a", "missing")

	out, _, _ := stage.Transform(record())

	collected := out.Meta["metadata"].(map[string]any)
	if !reflect.DeepEqual(collected, map[string]any{"a": 1}) {
		t.Errorf("Collected = %v, expected only a", collected)
	}
	if out.Meta["b"] != 2 || out.Meta["c"] != 3 {
		t.Errorf("Unselected keys should stay at top level, got %v", out.Meta)
	}
}

func TestMetadataCustomKey(t *testing.T) {
	stage := New().WithKey("extra")

	out, _, _ := stage.Transform(record())
	if _, present := out.Meta["extra"]; !present {
		t.Error("Expected container under meta[extra]")
	}
	if _, present := out.Meta["metadata"]; present {
		t.Error("Default key should not be used when overridden")
	}
}

func TestMetadataBothModesIsError(t *testing.T) {
	stage := New().WithFillWith("a").WithFillExcept("b")

	_, ok, err := stage.Transform(record())
	if err == nil {
		t.Fatal("Expected error for combined fill_with and fill_except")
	}
	if ok {
		t.Error("Errored transform should not report a kept record")
	}
}

func TestMetadataInputNotMutated(t *testing.T) {
	stage := New()
	rec := record()
	stage.Transform(rec)

	if len(rec.Meta) != 3 {
		t.Errorf("Input meta = %v, should be untouched", rec.Meta)
	}
}

func TestMetadataConfigValidation(t *testing.T) {
	_, err := NewMetadataStageFromConfig(map[string]any{
		"fill_with":   []any{"a"},
		"fill_except": []any{"b"},
	})
	if err == nil {
		t.Error("Expected configuration error for combined modes")
	}
}

func TestMetadataFromConfig(t *testing.T) {
	stage, err := NewMetadataStageFromConfig(map[string]any{
		"key":         "payload",
		"fill_except": []any{"c"},
	})
	if err != nil {
		t.Fatalf("NewMetadataStageFromConfig() error: %v", err)
	}

	out, _, _ := stage.(*MetadataStage).Transform(record())
	collected := out.Meta["payload"].(map[string]any)
	if !reflect.DeepEqual(collected, map[string]any{"a": 1, "b": 2}) {
		t.Errorf("Collected = %v, expected a and b", collected)
	}
}
