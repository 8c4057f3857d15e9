package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/tasktimer/internal/config"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
)

// Global carries the process streams into subcommands.
type Global struct {
	Out io.Writer
	In  io.Reader
}

// CLI definition & global flags. Flags left empty fall back to the config
// file, and the config file falls back to defaults.
type CLI struct {
	Config        string           `short:"c" help:"Configuration file path (tasktimer.yaml is used when present)" type:"path"`
	Store         string           `short:"s" help:"Timer store file (overrides store.path)" type:"path"`
	HistoryDB     string           `name:"history-db" help:"Completed-session journal database (overrides history.path)" type:"path"`
	MetricsListen string           `name:"metrics-listen" help:"Address to serve Prometheus metrics on (overrides metrics.listen)"`
	Verbose       bool             `short:"v" help:"Enable verbose logging"`
	Version       kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve      ServeCmd   `cmd:"" default:"1" help:"Serve start_timer and stop_timer over MCP stdio (default)"`
	Start      StartCmd   `cmd:"" help:"Start a timer for a task"`
	Stop       StopCmd    `cmd:"" help:"Stop a task's timer and print the elapsed time"`
	Status     StatusCmd  `cmd:"" help:"List running timers"`
	History    HistoryCmd `cmd:"" name:"history" help:"List completed timer sessions from the journal"`
	Init       InitCmd    `cmd:"" help:"Write an example configuration file"`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Print version information"`

	Resolved *config.Config `kong:"-"`
}

// AfterApply runs after flag parsing; load config and set up logging once.
// An explicit --config must load cleanly. The implicit tasktimer.yaml is
// optional: if it cannot be used the defaults apply and a warning is logged.
func (c *CLI) AfterApply() error {
	path := c.ConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		if c.Config != "" {
			// Log to stderr with defaults so the failure is visible.
			slog.SetDefault(config.Default().Logging.NewLogger(os.Stderr, c.Verbose))
			return err
		}
		cfg = config.Default()
	}
	if c.Store != "" {
		cfg.Store.Path = c.Store
	}
	if c.HistoryDB != "" {
		cfg.History.Path = c.HistoryDB
	}
	if c.MetricsListen != "" {
		cfg.Metrics.Listen = c.MetricsListen
	}
	c.Resolved = cfg

	// Stdout belongs to the tool transport; logs always go to stderr.
	slog.SetDefault(cfg.Logging.NewLogger(os.Stderr, c.Verbose))
	if err != nil {
		slog.Warn("Ignoring unusable configuration file", logfields.Path(path), logfields.Error(err))
	}
	return nil
}

// ConfigPath is --config, or the default file name when the flag is unset.
func (c *CLI) ConfigPath() string {
	if c.Config != "" {
		return c.Config
	}
	return config.DefaultConfigPath
}
