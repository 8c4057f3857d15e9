package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
	"git.home.luguber.info/inful/tasktimer/internal/timer"
	"git.home.luguber.info/inful/tasktimer/internal/tools"
)

// StartCmd implements the 'start' command.
type StartCmd struct {
	Task string `arg:"" name:"task" help:"Task name"`
}

func (c *StartCmd) Run(g *Global, root *CLI) error {
	rt := NewRuntime(root.Resolved)
	defer rt.Close()
	return RunTool(context.Background(), rt, tools.StartTimer, c.Task, g.Out)
}

// StopCmd implements the 'stop' command.
type StopCmd struct {
	Task string `arg:"" name:"task" help:"Task name"`
}

func (c *StopCmd) Run(g *Global, root *CLI) error {
	rt := NewRuntime(root.Resolved)
	defer rt.Close()
	return RunTool(context.Background(), rt, tools.StopTimer, c.Task, g.Out)
}

// RunTool invokes a tool exactly as a remote caller would and prints its text.
func RunTool(ctx context.Context, rt *Runtime, name tools.ToolName, task string, w io.Writer) error {
	res := rt.Dispatcher.Call(ctx, string(name), map[string]any{tools.ArgTaskName: task})
	if res.IsError {
		return terrors.New(terrors.CategoryTool, terrors.SeverityWarning, res.Text()).
			WithContext("tool", string(name))
	}
	_, err := fmt.Fprintln(w, res.Text())
	return err
}

// StatusCmd implements the 'status' command.
type StatusCmd struct{}

func (c *StatusCmd) Run(g *Global, root *CLI) error {
	rt := NewRuntime(root.Resolved)
	defer rt.Close()
	return RunStatus(context.Background(), rt, g.Out)
}

// RunStatus prints running timers as a table.
func RunStatus(ctx context.Context, rt *Runtime, w io.Writer) error {
	running := rt.Service.Status(ctx)
	if len(running) == 0 {
		_, err := fmt.Fprintln(w, "No timers running.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Task", "Started", "Elapsed")
	for _, r := range running {
		if err := table.Append([]string{
			r.Task,
			formatStamp(r.StartTime),
			timer.FormatElapsed(r.ElapsedMS),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatStamp(t time.Time) string {
	return t.Local().Format(timer.StartLayout)
}
