package ms

import (
	"testing"
	"time"

	"github.com/mbiondo/logShaper/core"
)

func TestMsFirstCallReportsZero(t *testing.T) {
	stage := New()

	out, ok, err := stage.Transform(core.NewRecord("info", "first"))
	if err != nil || !ok {
		t.Fatalf("Transform ok=%v err=%v", ok, err)
	}

	if out.Meta["ms"] != "+0ms" {
		t.Errorf("Meta[ms] = %v, expected +0ms", out.Meta["ms"])
	}
}

func TestMsElapsedBetweenCalls(t *testing.T) {
	base := time.Date(2025, 9, 5, 12, 0, 0, 0, time.UTC)
	ticks := []time.Time{
		base,
		base.Add(150 * time.Millisecond),
		base.Add(170 * time.Millisecond),
	}
	i := 0
	stage := New().WithClock(func() time.Time {
		tick := ticks[i]
		i++
		return tick
	})

	expected := []string{"+0ms", "+150ms", "+20ms"}
	for n, want := range expected {
		out, _, _ := stage.Transform(core.NewRecord("info", "tick"))
		if out.Meta["ms"] != want {
			t.Errorf("call %d: Meta[ms] = %v, expected %v", n, out.Meta["ms"], want)
		}
	}
}

func TestMsInstancesAreIndependent(t *testing.T) {
	base := time.Date(2025, 9, 5, 12, 0, 0, 0, time.UTC)
	clockAt := func(offset time.Duration) func() time.Time {
		return func() time.Time { return base.Add(offset) }
	}

	first := New().WithClock(clockAt(0))
	second := New()

	first.Transform(core.NewRecord("info", "warm up"))
	first = first.WithClock(clockAt(500 * time.Millisecond))
	second = second.WithClock(clockAt(500 * time.Millisecond))

	outFirst, _, _ := first.Transform(core.NewRecord("info", "tick"))
	outSecond, _, _ := second.Transform(core.NewRecord("info", "tick"))

	if outFirst.Meta["ms"] != "+500ms" {
		t.Errorf("first instance Meta[ms] = %v, expected +500ms", outFirst.Meta["ms"])
	}
	if outSecond.Meta["ms"] != "+0ms" {
		t.Errorf("fresh instance Meta[ms] = %v, expected +0ms", outSecond.Meta["ms"])
	}
}

func TestMsInputNotMutated(t *testing.T) {
	stage := New()
	rec := core.NewRecord("info", "test")
	stage.Transform(rec)

	if _, present := rec.Meta["ms"]; present {
		t.Error("Input record meta should not be mutated")
	}
}

func TestMsFromConfig(t *testing.T) {
	stage, err := NewMsStageFromConfig(nil)
	if err != nil {
		t.Fatalf("NewMsStageFromConfig() error: %v", err)
	}
	if _, ok := stage.(*MsStage); !ok {
		t.Errorf("Expected *MsStage, got %T", stage)
	}
}
