package core

// Stage is a single transformation step in a chain. Transform receives the
// value produced by the previous stage and returns the value for the next
// one. Returning ok=false drops the value: the chain stops and produces no
// output, which is the designed filtering mechanism and not an error.
// A non-nil error aborts the chain and propagates to the caller.
//
// A Stage must be a pure function of its input and its own configuration.
// The elapsed-time stage is the one documented exception: it owns a
// mutable last-seen timestamp.
type Stage[T any] interface {
	// Name returns the stage type name, used for registry lookups and
	// metric labels.
	Name() string

	// Transform processes a single value.
	Transform(in T) (out T, ok bool, err error)
}

// RecordStage is the stage shape used by the registry and the stock catalog.
type RecordStage = Stage[*Record]

// StageFunc adapts a plain function to the Stage interface. It is the
// cheapest way to build custom filters and test stages.
type StageFunc[T any] struct {
	name string
	fn   func(T) (T, bool, error)
}

// Func wraps fn as a named stage.
func Func[T any](name string, fn func(T) (T, bool, error)) StageFunc[T] {
	return StageFunc[T]{name: name, fn: fn}
}

// Name returns the stage name.
func (s StageFunc[T]) Name() string {
	return s.name
}

// Transform invokes the wrapped function.
func (s StageFunc[T]) Transform(in T) (T, bool, error) {
	return s.fn(in)
}
