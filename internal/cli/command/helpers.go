package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/output"
	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// pageFunc names the page a command stands for, given its arguments.
type pageFunc func(c *cli.Context) string

func page(path string) pageFunc {
	return func(*cli.Context) string { return path }
}

// tripPage is /trip/<first argument>.
func tripPage(c *cli.Context) string {
	if id := c.Args().First(); id != "" {
		return "/trip/" + id
	}
	return "/trip"
}

// guarded runs the route guard before the command builds any request.
func guarded(pf pageFunc, cmd *cli.Command) *cli.Command {
	cmd.Before = func(c *cli.Context) error {
		rt, err := runtimeFrom(c)
		if err != nil {
			return err
		}
		g, err := rt.Guard(c.Context)
		if err != nil {
			return err
		}
		if !g.Check(c.Context, pf(c)) {
			return domain.ErrLoginRequired
		}
		return nil
	}
	return cmd
}

// withLoading shows a spinner around fn for table output on a terminal.
func withLoading[T any](c *cli.Context, rt *Runtime, msg string, fn func(ctx context.Context) (T, error)) (T, error) {
	if ParseGlobalFlags(c).Output == string(output.FormatTable) {
		hide := rt.Console.ShowLoading(msg)
		defer hide()
	}
	return fn(c.Context)
}

// render prints data in the selected format. table, if non-nil, builds
// the table view; otherwise the generic table formatter is used.
func render(c *cli.Context, rt *Runtime, data any, table func(w io.Writer) error) error {
	flags := ParseGlobalFlags(c)
	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return domain.ErrInvalidArgument.WithDetails(err.Error())
	}
	if format == output.FormatTable && table != nil {
		return table(rt.Console)
	}
	return output.NewFormatter(format, flags.Wide).Format(rt.Console, data)
}

// argID parses the n-th positional argument as a positive id.
func argID(c *cli.Context, n int, name string) (int64, error) {
	s := c.Args().Get(n)
	if s == "" {
		return 0, domain.ErrMissingArgument.WithDetails(name)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("%s %q", name, s))
	}
	return id, nil
}

// prompt reads one line from in after printing label. Flags take
// precedence; prompt is only used for missing values.
func prompt(in io.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label+": ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// flagOrPrompt returns the flag value, prompting when it is empty.
func flagOrPrompt(c *cli.Context, rt *Runtime, name, label string) string {
	if v := c.String(name); v != "" {
		return v
	}
	return prompt(rt.In, rt.Console, label)
}
