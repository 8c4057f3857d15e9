package metrics

import "time"

// ToolOutcome enumerates tool call result categories for counters.
type ToolOutcome string

const (
	OutcomeOK       ToolOutcome = "ok"
	OutcomeConflict ToolOutcome = "conflict" // already running / not found
	OutcomeError    ToolOutcome = "error"
	OutcomeUnknown  ToolOutcome = "unknown" // unrecognised tool name
)

// Recorder defines observability hooks for timer operations. Implementations
// must tolerate nil receivers.
type Recorder interface {
	IncToolCall(tool string, outcome ToolOutcome)
	ObserveElapsed(d time.Duration)
	IncStoreError(op string)
	SetRunningTimers(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncToolCall(string, ToolOutcome) {}
func (NoopRecorder) ObserveElapsed(time.Duration)    {}
func (NoopRecorder) IncStoreError(string)            {}
func (NoopRecorder) SetRunningTimers(int)            {}
