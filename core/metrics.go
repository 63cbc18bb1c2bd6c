package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

// stageRecordsTotal counts transform outcomes per stage name
var stageRecordsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "logshaper_stage_records_total",
		Help: "Total number of records processed by stage and outcome",
	},
	[]string{"stage", "outcome"},
)

func init() {
	prometheus.MustRegister(stageRecordsTotal)
}

// instrumentedStage wraps a record stage with outcome counters
type instrumentedStage struct {
	inner RecordStage
}

// Instrument wraps a stage so every transform outcome (kept, dropped,
// error) is counted under the stage's name. The wrapped stage behaves
// identically otherwise.
func Instrument(stage RecordStage) RecordStage {
	return &instrumentedStage{inner: stage}
}

// Name returns the inner stage name
func (s *instrumentedStage) Name() string {
	return s.inner.Name()
}

// Transform delegates to the inner stage and records the outcome
func (s *instrumentedStage) Transform(rec *Record) (*Record, bool, error) {
	out, ok, err := s.inner.Transform(rec)

	outcome := "kept"
	switch {
	case err != nil:
		outcome = "error"
	case !ok:
		outcome = "dropped"
	}
	stageRecordsTotal.WithLabelValues(s.inner.Name(), outcome).Inc()

	return out, ok, err
}
