// Package history keeps a journal of completed timer sessions.
package history

import (
	"context"
	"time"
)

// Session is one completed start/stop pair.
type Session struct {
	ID        string
	Task      string
	StartedAt time.Time
	StoppedAt time.Time
	ElapsedMS int64
}

// Query filters List results. Zero values mean "no filter".
type Query struct {
	Task  string
	Since time.Time
	Limit int
}

// Journal records completed sessions.
type Journal interface {
	// Record appends s. An empty ID is replaced with a fresh UUID.
	Record(ctx context.Context, s Session) (Session, error)

	// List returns matching sessions, most recently stopped first.
	List(ctx context.Context, q Query) ([]Session, error)

	// Close releases resources.
	Close() error
}

// NopJournal discards everything. It is used when no journal is configured.
type NopJournal struct{}

func (NopJournal) Record(_ context.Context, s Session) (Session, error) { return s, nil }
func (NopJournal) List(context.Context, Query) ([]Session, error)       { return nil, nil }
func (NopJournal) Close() error                                         { return nil }
