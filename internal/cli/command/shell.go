package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/repl"
	"github.com/sharepay/sharepay-go/internal/infra/confloader"
)

// ShellCommand starts the interactive shell.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Start an interactive shell",
		Action: shell,
	}
}

func shell(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	if rt.inShell {
		return errors.New("already in the shell")
	}
	rt.inShell = true
	defer func() { rt.inShell = false }()

	var changed atomic.Bool
	if w, err := confloader.NewWatcher(confloader.WithWatcherLogger(rt.Logger.With("component", "watcher"))); err != nil {
		rt.Logger.Warn("config watcher unavailable", "error", err)
	} else {
		w.OnChange(func(string) { changed.Store(true) })
		if err := w.Watch(rt.ConfigPath); err != nil {
			rt.Logger.Debug("config file not watched", "path", rt.ConfigPath, "error", err)
		}
		w.StartAsync()
		defer w.Stop()
	}

	history := repl.NewHistory(rt.Config.History, 0)
	rt.Shutdown.OnClose("history", history.Save)

	app := c.App
	r := repl.New(repl.Config{
		In:       rt.In,
		Out:      rt.Console,
		History:  history,
		Commands: commandPaths(app.Commands, ""),
		Logger:   rt.Logger,
		Execute: func(ctx context.Context, args []string) error {
			if changed.Swap(false) {
				if err := rt.Reload(); err != nil {
					rt.Console.Fail("config not reloaded: " + FormatError(err))
				}
			}
			return app.RunContext(ctx, append([]string{app.Name}, args...))
		},
		OnError: func(w io.Writer, err error) {
			fmt.Fprintln(w, "error: "+FormatError(err))
		},
	})

	fmt.Fprintf(rt.Console, "SharePay shell on %s. Type help, or exit to leave.\n", rt.Config.Server)
	return r.Run(c.Context)
}

// commandPaths lists every command as a space-separated path.
func commandPaths(cmds []*cli.Command, parent string) []string {
	var out []string
	for _, cmd := range cmds {
		if cmd.Hidden || cmd.Name == "shell" {
			continue
		}
		path := strings.TrimSpace(parent + " " + cmd.Name)
		out = append(out, path)
		out = append(out, commandPaths(cmd.Subcommands, path)...)
	}
	sort.Strings(out)
	return out
}
