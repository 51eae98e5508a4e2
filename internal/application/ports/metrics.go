package ports

import "time"

// MetricsRecorder receives simulation progress. Implementations must be safe
// for concurrent use since runs execute in parallel.
type MetricsRecorder interface {
	ObserveTimestep(run int, elapsed time.Duration)
	IncRotations(run int)
	IncRunsCompleted()
	IncRunsFailed()
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ObserveTimestep(int, time.Duration) {}
func (NopMetrics) IncRotations(int)                   {}
func (NopMetrics) IncRunsCompleted()                  {}
func (NopMetrics) IncRunsFailed()                     {}
