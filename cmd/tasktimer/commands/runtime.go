package commands

import (
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/tasktimer/internal/config"
	"git.home.luguber.info/inful/tasktimer/internal/history"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/metrics"
	"git.home.luguber.info/inful/tasktimer/internal/timer"
	"git.home.luguber.info/inful/tasktimer/internal/timerstore"
	"git.home.luguber.info/inful/tasktimer/internal/tools"
)

// Runtime is the wired object graph shared by every subcommand.
type Runtime struct {
	Config     *config.Config
	Store      *timerstore.FileStore
	Journal    history.Journal
	Registry   *prom.Registry
	Service    *timer.Service
	Dispatcher *tools.Dispatcher
}

// NewRuntime wires store, journal, metrics, service and dispatcher from cfg.
// A journal that cannot be opened is logged and replaced by a no-op journal:
// the timer tools keep working without history.
func NewRuntime(cfg *config.Config) *Runtime {
	if cfg == nil {
		cfg = config.Default()
	}
	rt := &Runtime{Config: cfg, Journal: history.NopJournal{}}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Metrics.Listen != "" {
		rt.Registry = metrics.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(rt.Registry)
	}

	if cfg.History.Path != "" {
		j, err := history.NewSQLiteJournal(cfg.History.Path)
		if err != nil {
			slog.Warn("History journal disabled", logfields.Path(cfg.History.Path), logfields.Error(err))
		} else {
			rt.Journal = j
		}
	}

	rt.Store = timerstore.NewFileStore(cfg.Store.Path, timerstore.WithRecorder(recorder))
	rt.Service = timer.NewService(rt.Store,
		timer.WithRecorder(recorder),
		timer.WithJournal(rt.Journal))
	rt.Dispatcher = tools.NewDispatcher(rt.Service, tools.WithRecorder(recorder))
	return rt
}

// Close releases the journal.
func (rt *Runtime) Close() {
	if err := rt.Journal.Close(); err != nil {
		slog.Warn("Failed to close history journal", logfields.Error(err))
	}
}
