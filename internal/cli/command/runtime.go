package command

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/config"
	"github.com/sharepay/sharepay-go/internal/cli/connection"
	"github.com/sharepay/sharepay-go/internal/cli/guard"
	"github.com/sharepay/sharepay-go/internal/cli/output"
	"github.com/sharepay/sharepay-go/internal/cli/repl"
	"github.com/sharepay/sharepay-go/internal/core/service"
	"github.com/sharepay/sharepay-go/internal/infra/buildinfo"
	"github.com/sharepay/sharepay-go/internal/infra/shutdown"
	"github.com/sharepay/sharepay-go/internal/infra/tlsroots"
	"github.com/sharepay/sharepay-go/internal/storage"
	"github.com/sharepay/sharepay-go/internal/storage/memory"
	"github.com/sharepay/sharepay-go/internal/telemetry/logger"
	"github.com/sharepay/sharepay-go/internal/telemetry/metric"
)

const runtimeKey = "runtime"

// Runtime is the state shared by every command of one process. It is
// created by the root Before hook and reused by nested runs from the
// shell.
type Runtime struct {
	Config     *config.CLIConfig
	ConfigPath string
	Logger     logger.Logger
	Console    *output.Console
	Nav        *output.Navigator
	Metrics    *metric.Registry
	Conn       *connection.Manager
	Shutdown   *shutdown.Handler
	In         io.Reader
	Ephemeral  bool

	flags        map[string]any
	store        *storage.CredentialStore
	storeReady   bool
	guard        *guard.Guard
	httpOpts     []connection.Option
	ownsShutdown bool
	depth        int
	inShell      bool
}

// runtimeFrom returns the Runtime stored in the app metadata.
func runtimeFrom(c *cli.Context) (*Runtime, error) {
	if c.App.Metadata != nil {
		if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
			return rt, nil
		}
	}
	return nil, errors.New("command runtime not initialised")
}

// newRuntime loads configuration and builds the presentation layer.
// The credential store and dispatcher are opened on first use.
func newRuntime(c *cli.Context, o *appOptions) (*Runtime, error) {
	path := c.String("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	flags := map[string]any{
		"server": c.String("server"),
		"output": c.String("output"),
	}
	if c.Bool("verbose") {
		flags["log.level"] = "debug"
	}
	cfg, err := config.Load(path, flags)
	if err != nil {
		return nil, err
	}

	errOut := c.App.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: errOut,
	})
	if err != nil {
		return nil, err
	}

	console := output.NewConsole(c.App.Writer)
	rt := &Runtime{
		Config:     cfg,
		ConfigPath: path,
		Logger:     log,
		Console:    console,
		Nav:        output.NewNavigator(console),
		Metrics:    metric.NewRegistry(),
		Conn:       connection.NewManager(),
		Shutdown:   o.shutdown,
		In:         c.App.Reader,
		Ephemeral:  c.Bool("ephemeral"),
		flags:      flags,
		store:      o.store,
		httpOpts:   o.connOpts,
	}
	if rt.In == nil {
		rt.In = os.Stdin
	}
	rt.In = repl.SharedInput(rt.In)
	if rt.Shutdown == nil {
		rt.Shutdown = shutdown.NewHandler(shutdown.DefaultTimeout)
		rt.ownsShutdown = true
	}
	rt.Nav.OnRedirect = rt.Metrics.ObserveRedirect
	return rt, nil
}

// Store opens the credential store on first use. An injected store is
// used as is and left open.
func (rt *Runtime) Store(ctx context.Context) (*storage.CredentialStore, error) {
	if rt.storeReady {
		return rt.store, nil
	}

	store := rt.store
	if store == nil {
		cfg := rt.Config.Storage()
		if rt.Ephemeral {
			cfg.Backend = storage.BackendMemory
		}
		if cfg.Backend == storage.BackendMemory {
			store = storage.NewCredentialStore(memory.New(), storage.WithLogger(rt.Logger))
		} else {
			var err error
			store, err = storage.Open(ctx, cfg, rt.Logger.With("component", "credentials"))
			if err != nil {
				return nil, err
			}
		}
		rt.Shutdown.OnClose("credentials", store.Close)
	}

	present := func() bool { return store.Has(context.Background()) }
	if err := rt.Metrics.Register(metric.NewCredentialCollector(present)); err != nil {
		rt.Logger.Debug("credential collector not registered", "error", err)
	}
	if err := store.RegisterMetrics(rt.Metrics.Registerer()); err != nil {
		rt.Logger.Debug("backend metrics not registered", "error", err)
	}

	rt.store = store
	rt.storeReady = true
	return store, nil
}

// Guard returns the route guard over the credential store.
func (rt *Runtime) Guard(ctx context.Context) (*guard.Guard, error) {
	if rt.guard != nil {
		return rt.guard, nil
	}
	store, err := rt.Store(ctx)
	if err != nil {
		return nil, err
	}
	rt.guard = guard.New(store, rt.Nav)
	return rt.guard, nil
}

// Dispatcher returns the dispatcher for the configured server, connecting
// on first use.
func (rt *Runtime) Dispatcher(ctx context.Context) (*connection.Dispatcher, error) {
	if d, err := rt.Conn.Current(); err == nil {
		return d, nil
	}

	store, err := rt.Store(ctx)
	if err != nil {
		return nil, err
	}
	timeout, err := rt.Config.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	tlsCfg, err := tlsroots.ClientConfig(tlsroots.Options{
		CAFile:   rt.Config.TLS.CAFile,
		CertFile: rt.Config.TLS.CertFile,
		KeyFile:  rt.Config.TLS.KeyFile,
	})
	if err != nil {
		return nil, err
	}

	opts := []connection.Option{
		connection.WithTimeout(timeout),
		connection.WithTLSConfig(tlsCfg),
		connection.WithNavigator(rt.Nav),
		connection.WithObserver(rt.Metrics),
		connection.WithLogger(rt.Logger.With("component", "dispatcher")),
		connection.WithUserAgent(buildinfo.UserAgent()),
	}
	if rt.Config.RateLimit > 0 {
		opts = append(opts, connection.WithRateLimit(rt.Config.RateLimit, rt.Config.RateBurst))
	}
	opts = append(opts, rt.httpOpts...)

	return rt.Conn.Connect(&connection.Profile{
		Server:  rt.Config.Server,
		Store:   store,
		Options: opts,
	})
}

// Services bundles the API services over the current dispatcher.
type Services struct {
	Auth    *service.AuthService
	Trips   *service.TripService
	Payment *service.PaymentService
}

// Services builds the API services.
func (rt *Runtime) Services(ctx context.Context) (*Services, error) {
	d, err := rt.Dispatcher(ctx)
	if err != nil {
		return nil, err
	}
	store, err := rt.Store(ctx)
	if err != nil {
		return nil, err
	}
	return &Services{
		Auth:    service.NewAuthService(d, store, rt.Nav, rt.Logger.With("component", "auth")),
		Trips:   service.NewTripService(d),
		Payment: service.NewPaymentService(d),
	}, nil
}

// Reload re-reads the configuration file under the original command-line
// flags. The next request reconnects with the new server and limits; the
// credential backend is kept.
func (rt *Runtime) Reload() error {
	cfg, err := config.Load(rt.ConfigPath, rt.flags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Credentials != rt.Config.Credentials {
		rt.Logger.Warn("credentials settings changed; restart to apply")
	}
	rt.Config = cfg
	rt.Conn.Disconnect()
	logger.SetLevel(cfg.Log.Level)
	rt.Logger.Info("configuration reloaded", "server", cfg.Server)
	return nil
}
