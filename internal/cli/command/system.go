package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/output"
	"github.com/sharepay/sharepay-go/internal/infra/buildinfo"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "Client information",
		Subcommands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "Show build information",
				Action: systemVersion,
			},
			{
				Name:   "metrics",
				Usage:  "Print this process's client metrics in Prometheus text format",
				Action: systemMetrics,
			},
		},
	}
}

func systemVersion(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	info := buildinfo.Get()
	return render(c, rt, info, func(w io.Writer) error {
		t := &output.Table{Headers: []string{"FIELD", "VALUE"}}
		t.AddRow("Version", info.Version)
		t.AddRow("Commit", info.Commit)
		t.AddRow("Built", info.BuildTime)
		t.AddRow("Go", info.GoVersion)
		t.AddRow("Platform", info.Platform)
		return t.Render(w)
	})
}

func systemMetrics(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	if _, err := rt.Store(c.Context); err != nil {
		fmt.Fprintf(rt.Console, "# credential store unavailable: %v\n", err)
	}
	return rt.Metrics.WriteText(rt.Console)
}
