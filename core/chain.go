package core

import "fmt"

// chainedStage sequences two stages with short-circuit semantics: when the
// first stage drops the value or fails, the second is never invoked.
type chainedStage[T any] struct {
	first  Stage[T]
	second Stage[T]
}

// Chain composes two stages into one. The combinator is associative:
// Chain(Chain(a, b), c) and Chain(a, Chain(b, c)) behave identically.
func Chain[T any](first, second Stage[T]) Stage[T] {
	return chainedStage[T]{first: first, second: second}
}

// Name returns a readable composition of the inner stage names.
func (c chainedStage[T]) Name() string {
	return fmt.Sprintf("chain(%s,%s)", c.first.Name(), c.second.Name())
}

// Transform runs both stages in order, stopping on drop or error.
func (c chainedStage[T]) Transform(in T) (T, bool, error) {
	out, ok, err := c.first.Transform(in)
	if err != nil || !ok {
		return out, false, err
	}
	return c.second.Transform(out)
}

// identityStage passes values through unchanged.
type identityStage[T any] struct{}

// Identity returns a stage that keeps every value as-is.
func Identity[T any]() Stage[T] {
	return identityStage[T]{}
}

func (identityStage[T]) Name() string {
	return "identity"
}

func (identityStage[T]) Transform(in T) (T, bool, error) {
	return in, true, nil
}

// All folds an ordered sequence of stages into a single stage using Chain.
// Calling All with no stages returns the identity stage, so an empty
// configured chain keeps records unchanged rather than failing.
func All[T any](stages ...Stage[T]) Stage[T] {
	if len(stages) == 0 {
		return Identity[T]()
	}
	combined := stages[0]
	for _, stage := range stages[1:] {
		combined = Chain(combined, stage)
	}
	return combined
}
