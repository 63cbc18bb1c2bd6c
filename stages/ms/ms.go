package ms

import (
	"fmt"
	"sync"
	"time"

	"github.com/mbiondo/logShaper/core"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("ms", NewMsStageFromConfig)
}

// NewMsStageFromConfig creates an elapsed-time stage; it takes no configuration
func NewMsStageFromConfig(_ map[string]any) (any, error) {
	return New(), nil
}

// MsStage writes the milliseconds elapsed since its previous invocation to
// meta["ms"]. This is the one stateful stage: each instance owns its own
// last-seen timestamp, guarded for concurrent callers. The first invocation
// reports "+0ms".
type MsStage struct {
	mu   sync.Mutex
	prev time.Time
	now  func() time.Time
}

// New creates an elapsed-time stage with its own independent timer
func New() *MsStage {
	return &MsStage{
		now: time.Now,
	}
}

// WithClock overrides the time source, for tests
func (s *MsStage) WithClock(now func() time.Time) *MsStage {
	s.now = now
	return s
}

// Name returns the stage type name
func (s *MsStage) Name() string {
	return "ms"
}

// Transform writes "+<n>ms" for the interval since the previous call on
// this instance
func (s *MsStage) Transform(rec *core.Record) (*core.Record, bool, error) {
	curr := s.now()

	s.mu.Lock()
	var elapsed time.Duration
	if !s.prev.IsZero() {
		elapsed = curr.Sub(s.prev)
	}
	s.prev = curr
	s.mu.Unlock()

	if elapsed < 0 {
		elapsed = 0
	}

	out := rec.Clone()
	out.Meta["ms"] = fmt.Sprintf("+%dms", elapsed.Milliseconds())
	return out, true, nil
}
