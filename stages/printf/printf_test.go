package printf

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mbiondo/logShaper/core"
)

func TestPrintfTemplate(t *testing.T) {
	stage := New(func(rec *core.Record) string {
		return fmt.Sprintf("%s | %s", strings.ToUpper(rec.Level), rec.Message)
	})

	out, ok, err := stage.Transform(core.NewRecord("info", "hello"))
	if err != nil || !ok {
		t.Fatalf("Transform ok=%v err=%v", ok, err)
	}

	if out.Message != "INFO | hello" {
		t.Errorf("Message = %q, expected INFO | hello", out.Message)
	}
	if out.Level != "info" {
		t.Errorf("Level = %q, should be untouched", out.Level)
	}
}

func TestPrintfSeesMeta(t *testing.T) {
	stage := New(func(rec *core.Record) string {
		return fmt.Sprintf("%s (user=%v)", rec.Message, rec.Meta["user"])
	})

	out, _, _ := stage.Transform(core.NewRecord("info", "login").WithMeta("user", "alice"))
	if out.Message != "login (user=alice)" {
		t.Errorf("Message = %q, expected template over meta", out.Message)
	}
}

func TestPrintfInputNotMutated(t *testing.T) {
	stage := New(func(*core.Record) string { return "replaced" })
	rec := core.NewRecord("info", "original")
	stage.Transform(rec)

	if rec.Message != "original" {
		t.Error("Input record should not be mutated")
	}
}
