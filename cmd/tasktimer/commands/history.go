package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
	"git.home.luguber.info/inful/tasktimer/internal/history"
	"git.home.luguber.info/inful/tasktimer/internal/timer"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Task  string        `short:"t" help:"Only show sessions for this task"`
	Since time.Duration `help:"Only show sessions stopped within this window (e.g. 24h)"`
	Limit int           `short:"n" help:"Maximum sessions to show" default:"20"`
}

func (c *HistoryCmd) Run(g *Global, root *CLI) error {
	rt := NewRuntime(root.Resolved)
	defer rt.Close()

	q := history.Query{Task: c.Task, Limit: c.Limit}
	if c.Since > 0 {
		q.Since = time.Now().Add(-c.Since)
	}
	return RunHistory(context.Background(), rt, q, g.Out)
}

// RunHistory prints completed sessions as a table.
func RunHistory(ctx context.Context, rt *Runtime, q history.Query, w io.Writer) error {
	if rt.Config.History.Path == "" {
		return terrors.ValidationFailed("history.path", "is not configured; set it or pass --history-db")
	}

	sessions, err := rt.Journal.List(ctx, q)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No completed sessions.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Task", "Started", "Stopped", "Elapsed")
	for _, s := range sessions {
		if err := table.Append([]string{
			s.ID,
			s.Task,
			formatStamp(s.StartedAt),
			formatStamp(s.StoppedAt),
			timer.FormatElapsed(s.ElapsedMS),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
