package core

import (
	"errors"
	"strings"
	"testing"
)

// appendStage returns a stage that appends suffix to the message
func appendStage(suffix string) Stage[*Record] {
	return Func("append"+suffix, func(rec *Record) (*Record, bool, error) {
		out := rec.Clone()
		out.Message += suffix
		return out, true, nil
	})
}

// dropStage returns a stage that drops every record and counts invocations
func dropStage(calls *int) Stage[*Record] {
	return Func("drop", func(rec *Record) (*Record, bool, error) {
		*calls++
		return nil, false, nil
	})
}

// countingStage counts invocations and passes records through
func countingStage(calls *int) Stage[*Record] {
	return Func("count", func(rec *Record) (*Record, bool, error) {
		*calls++
		return rec, true, nil
	})
}

func TestChainOrder(t *testing.T) {
	chain := Chain(appendStage("-a"), appendStage("-b"))

	out, ok, err := chain.Transform(NewRecord("info", "msg"))
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if !ok {
		t.Fatal("Expected record to be kept")
	}
	if out.Message != "msg-a-b" {
		t.Errorf("Message = %q, expected msg-a-b", out.Message)
	}
}

func TestChainAssociativity(t *testing.T) {
	a := appendStage("-a")
	b := appendStage("-b")
	c := appendStage("-c")

	left := Chain(Chain(a, b), c)
	right := Chain(a, Chain(b, c))
	variadic := All(a, b, c)

	for _, input := range []string{"", "hello", "multi word message"} {
		leftOut, leftOk, leftErr := left.Transform(NewRecord("info", input))
		rightOut, rightOk, rightErr := right.Transform(NewRecord("info", input))
		allOut, allOk, allErr := variadic.Transform(NewRecord("info", input))

		if leftOk != rightOk || leftErr != nil || rightErr != nil {
			t.Fatalf("Groupings disagree on keep/error for %q", input)
		}
		if leftOut.Message != rightOut.Message {
			t.Errorf("Associativity broken for %q: %q vs %q", input, leftOut.Message, rightOut.Message)
		}
		if allOk != leftOk || allErr != nil || allOut.Message != leftOut.Message {
			t.Errorf("All() disagrees with pairwise chaining for %q", input)
		}
	}
}

func TestChainAssociativityOnDrop(t *testing.T) {
	a := appendStage("-a")
	drops := 0
	b := dropStage(&drops)
	c := appendStage("-c")

	left := Chain(Chain(a, b), c)
	right := Chain(a, Chain(b, c))

	_, leftOk, _ := left.Transform(NewRecord("info", "msg"))
	_, rightOk, _ := right.Transform(NewRecord("info", "msg"))

	if leftOk || rightOk {
		t.Error("Both groupings should drop the record")
	}
}

func TestChainEarlyExit(t *testing.T) {
	dropCalls := 0
	afterCalls := 0
	chain := Chain(dropStage(&dropCalls), countingStage(&afterCalls))

	_, ok, err := chain.Transform(NewRecord("info", "msg"))
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if ok {
		t.Error("Expected record to be dropped")
	}
	if dropCalls != 1 {
		t.Errorf("Drop stage invoked %d times, expected 1", dropCalls)
	}
	if afterCalls != 0 {
		t.Errorf("Second stage invoked %d times, expected 0 after drop", afterCalls)
	}
}

func TestChainErrorShortCircuit(t *testing.T) {
	boom := errors.New("boom")
	failing := Func("fail", func(rec *Record) (*Record, bool, error) {
		return rec, false, boom
	})
	afterCalls := 0
	chain := Chain(failing, countingStage(&afterCalls))

	_, ok, err := chain.Transform(NewRecord("info", "msg"))
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped boom error, got %v", err)
	}
	if ok {
		t.Error("Record should not be kept on error")
	}
	if afterCalls != 0 {
		t.Errorf("Second stage invoked %d times after error, expected 0", afterCalls)
	}
}

func TestAllEmptyIsIdentity(t *testing.T) {
	chain := All[*Record]()

	rec := NewRecord("info", "unchanged").WithMeta("key", "value")
	out, ok, err := chain.Transform(rec)
	if err != nil || !ok {
		t.Fatalf("Identity chain should keep the record, got ok=%v err=%v", ok, err)
	}
	if out != rec {
		t.Error("Identity chain should return the same record")
	}
}

func TestChainName(t *testing.T) {
	chain := Chain(appendStage("-a"), appendStage("-b"))
	name := chain.Name()

	if !strings.HasPrefix(name, "chain(") {
		t.Errorf("Name = %q, expected chain(...) composition", name)
	}
}

func TestChainGenericOverStrings(t *testing.T) {
	upper := Func("upper", func(s string) (string, bool, error) {
		return strings.ToUpper(s), true, nil
	})
	suffix := Func("suffix", func(s string) (string, bool, error) {
		return s + "-end", true, nil
	})

	out, ok, err := Chain[string](upper, suffix).Transform("hello")
	if err != nil || !ok {
		t.Fatalf("Transform() ok=%v err=%v", ok, err)
	}
	if out != "HELLO-end" {
		t.Errorf("Transform() = %q, expected HELLO-end", out)
	}
}
