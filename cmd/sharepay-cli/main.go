package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sharepay/sharepay-go/internal/cli/command"
	"github.com/sharepay/sharepay-go/internal/infra/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	h := shutdown.NewHandler(shutdown.DefaultTimeout)
	ctx, stop := h.NotifyContext(context.Background())
	defer stop()

	app := command.App(command.WithShutdown(h))
	err := app.RunContext(ctx, os.Args)
	if serr := h.Shutdown(); serr != nil {
		fmt.Fprintf(os.Stderr, "warning: cleanup: %v\n", serr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", command.FormatError(err))
	}
	return command.ExitCode(err)
}
