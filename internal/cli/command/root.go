package command

import (
	"errors"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/connection"
	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/internal/infra/buildinfo"
	"github.com/sharepay/sharepay-go/internal/infra/shutdown"
	"github.com/sharepay/sharepay-go/internal/storage"
)

// AppOption customises App, mainly for tests and main.
type AppOption func(*appOptions)

type appOptions struct {
	store    *storage.CredentialStore
	shutdown *shutdown.Handler
	connOpts []connection.Option
	out      io.Writer
	errOut   io.Writer
	in       io.Reader
}

// WithStore uses store instead of opening the configured backend.
func WithStore(store *storage.CredentialStore) AppOption {
	return func(o *appOptions) { o.store = store }
}

// WithShutdown registers cleanup hooks on h; the caller runs it.
func WithShutdown(h *shutdown.Handler) AppOption {
	return func(o *appOptions) { o.shutdown = h }
}

// WithConnectionOptions appends dispatcher options.
func WithConnectionOptions(opts ...connection.Option) AppOption {
	return func(o *appOptions) { o.connOpts = append(o.connOpts, opts...) }
}

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) AppOption {
	return func(o *appOptions) {
		o.in, o.out, o.errOut = in, out, errOut
	}
}

// App creates the CLI application.
func App(opts ...AppOption) *cli.App {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}

	app := &cli.App{
		Name:                 buildinfo.Product,
		Usage:                "SharePay trip bill-splitting client",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Metadata:             map[string]any{},
		Commands: []*cli.Command{
			RegisterCommand(),
			LoginCommand(),
			LogoutCommand(),
			StatusCommand(),
			DashboardCommand(),
			TripCommand(),
			PaymentCommand(),
			RequestCommand(),
			ConfigCommand(),
			SystemCommand(),
			ShellCommand(),
		},
	}
	if o.out != nil {
		app.Writer = o.out
	}
	if o.errOut != nil {
		app.ErrWriter = o.errOut
	}
	if o.in != nil {
		app.Reader = o.in
	}

	app.Before = func(c *cli.Context) error {
		if rt, err := runtimeFrom(c); err == nil {
			rt.depth++
			return nil
		}
		rt, err := newRuntime(c, o)
		if err != nil {
			return err
		}
		c.App.Metadata[runtimeKey] = rt
		return nil
	}
	app.After = func(c *cli.Context) error {
		rt, err := runtimeFrom(c)
		if err != nil {
			return nil
		}
		if rt.depth > 0 {
			rt.depth--
			return nil
		}
		delete(c.App.Metadata, runtimeKey)
		if rt.ownsShutdown {
			return rt.Shutdown.Shutdown()
		}
		return nil
	}
	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "SharePay server URL (e.g., http://localhost:8000)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI configuration file",
			EnvVars: []string{"SHAREPAY_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep the session in memory only",
		},
	}
}

// GlobalFlags holds the per-invocation presentation flags.
type GlobalFlags struct {
	Output string
	Wide   bool
}

// ParseGlobalFlags resolves the output format: a flag given on this
// invocation wins over the configured default.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	flags := &GlobalFlags{Output: c.String("output"), Wide: c.Bool("wide")}
	if flags.Output == "" {
		if rt, err := runtimeFrom(c); err == nil {
			flags.Output = rt.Config.Output
		}
	}
	return flags
}

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
	ExitAuth    = 3
	ExitNetwork = 4
)

// ExitCode maps an error returned by App.Run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrAuthExpired),
		errors.Is(err, domain.ErrLoginRequired),
		errors.Is(err, domain.ErrBadLogin),
		errors.Is(err, domain.ErrNoCredential):
		return ExitAuth
	case errors.Is(err, domain.ErrTransport):
		return ExitNetwork
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrMissingArgument),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrEmptySplit):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// FormatError renders err for the terminal.
func FormatError(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		if de.Details != "" {
			return de.Message + ": " + de.Details
		}
		return de.Message
	}
	return err.Error()
}
