// Package metrics defines observability hooks for conversions.
package metrics

import "time"

// Direction names the conversion direction used as a metric label.
type Direction string

const (
	DirectionToMarkdown Direction = "to_markdown"
	DirectionToBlocks   Direction = "to_blocks"
)

// Outcome enumerates conversion results for counters.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFallback Outcome = "fallback"
	OutcomeFailed   Outcome = "failed"
)

// Recorder receives conversion metrics. Implementations may forward to
// Prometheus or any other backend; converters default to NoopRecorder.
type Recorder interface {
	ObserveConversion(direction Direction, d time.Duration, outcome Outcome)
	IncBlock(direction Direction, blockType string)
	IncFallback(blockType string)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveConversion(Direction, time.Duration, Outcome) {}
func (NoopRecorder) IncBlock(Direction, string)                          {}
func (NoopRecorder) IncFallback(string)                                  {}
