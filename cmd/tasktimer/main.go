package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/tasktimer/cmd/tasktimer/commands"
	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
	"git.home.luguber.info/inful/tasktimer/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("tasktimer"),
		kong.Description("Named task timers served as MCP tools over stdio."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Out: os.Stdout, In: os.Stdin}
	if err := ctx.Run(global, cli); err != nil {
		terrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
