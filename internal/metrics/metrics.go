// Package metrics provides the MetricsRecorder interface and a noop implementation.
package metrics

import "time"

// MetricsRecorder is the interface for recording operational metrics.
type MetricsRecorder interface {
	RecordOp(op string, chars int)
	RecordError(op string)
	RecordLatency(op string, d time.Duration)
	RecordMemoHit(op string)
	RecordMemoMiss(op string)
}

// Noop is a MetricsRecorder that discards all data.
type Noop struct{}

func (Noop) RecordOp(op string, chars int)            {}
func (Noop) RecordError(op string)                    {}
func (Noop) RecordLatency(op string, d time.Duration) {}
func (Noop) RecordMemoHit(op string)                  {}
func (Noop) RecordMemoMiss(op string)                 {}
