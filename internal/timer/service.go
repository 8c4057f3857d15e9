// Package timer implements the start/stop operations over a timerstore.Store.
//
// Every operation loads the full store, mutates the copy, and saves it back.
// Domain conflicts (starting a running timer, stopping a missing one) are
// ordinary text results, not errors. The only error an operation returns is
// a validation failure for an empty task name.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
	"git.home.luguber.info/inful/tasktimer/internal/history"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/metrics"
	"git.home.luguber.info/inful/tasktimer/internal/timerstore"
)

// StartLayout renders start times the way a US-English locale does.
const StartLayout = "1/2/2006, 3:04:05 PM"

// Outcome classifies an operation result.
type Outcome int

const (
	// OutcomeStarted and OutcomeStopped mean the store changed.
	OutcomeStarted Outcome = iota
	OutcomeStopped
	// OutcomeAlreadyRunning and OutcomeNotFound leave the store untouched.
	OutcomeAlreadyRunning
	OutcomeNotFound
)

// Conflict reports whether the outcome is a domain conflict.
func (o Outcome) Conflict() bool {
	return o == OutcomeAlreadyRunning || o == OutcomeNotFound
}

// Result is the outcome of Start or Stop.
type Result struct {
	Outcome Outcome
	Task    string
	// Message is the text returned to the caller.
	Message string
	// StartTime is set for every outcome except OutcomeNotFound.
	StartTime time.Time
	// ElapsedMS is set for OutcomeStopped.
	ElapsedMS int64
}

// Running describes a timer that has not been stopped.
type Running struct {
	Task      string
	StartTime time.Time
	ElapsedMS int64
}

// Service runs timer operations against a store.
type Service struct {
	store    timerstore.Store
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger
	recorder metrics.Recorder
	journal  history.Journal
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone start times are rendered in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder records elapsed times and running counts.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithJournal records every stopped timer as a completed session.
func WithJournal(j history.Journal) Option {
	return func(s *Service) {
		if j != nil {
			s.journal = j
		}
	}
}

// NewService creates a Service over store.
func NewService(store timerstore.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		now:      time.Now,
		location: time.Local,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		journal:  history.NopJournal{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins timing task unless it is already running.
func (s *Service) Start(ctx context.Context, task string) (Result, error) {
	if task == "" {
		return Result{}, terrors.ValidationFailed("taskName", "must be a non-empty string")
	}

	timers := s.store.Load(ctx)
	if entry, ok := timers[task]; ok {
		s.logger.DebugContext(ctx, "Timer already running", logfields.Task(task))
		return Result{
			Outcome:   OutcomeAlreadyRunning,
			Task:      task,
			StartTime: time.UnixMilli(entry.StartTime),
			Message:   fmt.Sprintf("Timer for \"%s\" is already running. Stop it first before starting a new one.", task),
		}, nil
	}

	now := s.now()
	timers[task] = timerstore.Entry{StartTime: now.UnixMilli()}
	s.store.Save(ctx, timers)
	s.recorder.SetRunningTimers(len(timers))

	s.logger.InfoContext(ctx, "Timer started",
		logfields.Task(task),
		logfields.StartTime(now),
		logfields.Running(len(timers)))
	return Result{
		Outcome:   OutcomeStarted,
		Task:      task,
		StartTime: now,
		Message:   fmt.Sprintf("Started timer for \"%s\" at %s", task, now.In(s.location).Format(StartLayout)),
	}, nil
}

// Stop ends the timer for task and reports how long it ran.
func (s *Service) Stop(ctx context.Context, task string) (Result, error) {
	if task == "" {
		return Result{}, terrors.ValidationFailed("taskName", "must be a non-empty string")
	}

	timers := s.store.Load(ctx)
	entry, ok := timers[task]
	if !ok {
		s.logger.DebugContext(ctx, "No timer to stop", logfields.Task(task))
		return Result{
			Outcome: OutcomeNotFound,
			Task:    task,
			Message: fmt.Sprintf("No timer found for \"%s\". Start a timer first.", task),
		}, nil
	}

	now := s.now()
	elapsed := now.UnixMilli() - entry.StartTime
	delete(timers, task)
	s.store.Save(ctx, timers)

	s.recorder.SetRunningTimers(len(timers))
	s.recorder.ObserveElapsed(time.Duration(elapsed) * time.Millisecond)
	s.journalSession(ctx, task, entry, now, elapsed)

	s.logger.InfoContext(ctx, "Timer stopped",
		logfields.Task(task),
		logfields.ElapsedMS(elapsed),
		logfields.Running(len(timers)))
	return Result{
		Outcome:   OutcomeStopped,
		Task:      task,
		StartTime: time.UnixMilli(entry.StartTime),
		ElapsedMS: elapsed,
		Message:   fmt.Sprintf("Stopped timer for \"%s\". Elapsed time: %s", task, FormatElapsed(elapsed)),
	}, nil
}

// Status lists running timers in task-name order without modifying the store.
func (s *Service) Status(ctx context.Context) []Running {
	timers := s.store.Load(ctx)
	nowMS := s.now().UnixMilli()
	out := make([]Running, 0, len(timers))
	for _, name := range timers.Names() {
		entry := timers[name]
		out = append(out, Running{
			Task:      name,
			StartTime: time.UnixMilli(entry.StartTime),
			ElapsedMS: nowMS - entry.StartTime,
		})
	}
	return out
}

func (s *Service) journalSession(ctx context.Context, task string, entry timerstore.Entry, stopped time.Time, elapsed int64) {
	recorded, err := s.journal.Record(ctx, history.Session{
		Task:      task,
		StartedAt: time.UnixMilli(entry.StartTime),
		StoppedAt: stopped,
		ElapsedMS: elapsed,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to journal timer session", logfields.Task(task), logfields.Error(err))
		return
	}
	if recorded.ID != "" {
		s.logger.DebugContext(ctx, "Journaled timer session", logfields.Task(task), logfields.SessionID(recorded.ID))
	}
}
