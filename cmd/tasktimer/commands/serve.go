package commands

import (
	"context"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/mcpserver"
	"git.home.luguber.info/inful/tasktimer/internal/metrics"
	"git.home.luguber.info/inful/tasktimer/internal/version"
)

// ServeCmd implements the default 'serve' command.
type ServeCmd struct{}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rt := NewRuntime(root.Resolved)
	defer rt.Close()
	return RunServe(ctx, rt, g.In, g.Out)
}

// RunServe serves the tools on in/out until in closes or ctx is cancelled.
func RunServe(ctx context.Context, rt *Runtime, in io.Reader, out io.Writer) error {
	if rt.Registry != nil {
		go func() {
			if err := metrics.Serve(ctx, rt.Config.Metrics.Listen, rt.Registry); err != nil {
				slog.Error("Metrics endpoint failed", logfields.Addr(rt.Config.Metrics.Listen), logfields.Error(err))
			}
		}()
	}

	slog.Info("Starting task timer server",
		logfields.Version(version.Version),
		logfields.Path(rt.Store.Path()))

	srv := mcpserver.New(rt.Config.Server.Name, version.Version, rt.Dispatcher)
	if err := srv.Serve(ctx, in, out); err != nil {
		return err
	}

	slog.Info("Task timer server stopped")
	return nil
}
