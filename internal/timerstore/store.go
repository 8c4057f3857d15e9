// Package timerstore persists the set of running timers.
//
// The store is a flat mapping from task name to start time. It is read in
// full at the start of every timer operation and written in full at the end;
// nothing is cached between operations, so the backing file is the single
// source of truth. Load and Save never fail: storage problems are logged and
// the caller proceeds as if no timers exist.
//
// No lock spans a Load/Save pair. Two overlapping operations can lose an
// update; callers are expected to issue operations one at a time.
package timerstore

import (
	"context"
	"maps"
	"sort"
)

// Entry is the recorded start of a running timer.
type Entry struct {
	// StartTime is wall-clock epoch milliseconds.
	StartTime int64 `json:"startTime"`
}

// Timers maps task name to its running entry. A key is present iff the
// timer for that task is running.
type Timers map[string]Entry

// Clone returns an independent copy. A nil receiver yields an empty map.
func (t Timers) Clone() Timers {
	out := make(Timers, len(t))
	maps.Copy(out, t)
	return out
}

// Names returns the task names in sorted order.
func (t Timers) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store loads and saves the complete timer mapping.
type Store interface {
	// Load returns the persisted timers, or an empty mapping when nothing
	// is persisted or the persisted form cannot be read.
	Load(ctx context.Context) Timers

	// Save replaces the persisted timers with t. Failures are reported
	// out of band (logs, metrics) and never to the caller.
	Save(ctx context.Context, t Timers)
}
