package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/config"
	"github.com/sharepay/sharepay-go/internal/cli/output"
	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Check the configuration",
				Action: configValidate,
			},
			{
				Name:      "set",
				Usage:     "Set one key in the configuration file",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: configPath,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	cfg := rt.Config
	return render(c, rt, cfg, func(w io.Writer) error {
		fmt.Fprintf(w, "Config file: %s\n\n", rt.ConfigPath)
		t := &output.Table{Headers: []string{"KEY", "VALUE"}}
		for _, kv := range configRows(cfg) {
			t.AddRow(kv[0], kv[1])
		}
		return t.Render(w)
	})
}

func configRows(cfg *config.CLIConfig) [][2]string {
	return [][2]string{
		{"server", cfg.Server},
		{"output", cfg.Output},
		{"timeout", cfg.Timeout},
		{"rate_limit", fmt.Sprint(cfg.RateLimit)},
		{"rate_burst", fmt.Sprint(cfg.RateBurst)},
		{"history", cfg.History},
		{"log.level", cfg.Log.Level},
		{"log.format", cfg.Log.Format},
		{"credentials.backend", cfg.Credentials.Backend},
		{"credentials.path", cfg.Credentials.Path},
		{"credentials.redis.addr", cfg.Credentials.Redis.Addr},
		{"credentials.redis.key", cfg.Credentials.Redis.Key},
		{"tls.ca_file", cfg.TLS.CAFile},
		{"tls.cert_file", cfg.TLS.CertFile},
		{"tls.key_file", cfg.TLS.KeyFile},
	}
}

func configValidate(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	if err := rt.Config.Validate(); err != nil {
		return err
	}
	rt.Console.Success("Configuration is valid")
	return nil
}

func configSet(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	if c.NArg() != 2 {
		return domain.ErrMissingArgument.WithDetails("KEY VALUE")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	cfg, err := config.ReadFile(rt.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg, rt.ConfigPath); err != nil {
		return err
	}
	rt.Console.Success(fmt.Sprintf("%s = %s", key, value))
	return nil
}

func configPath(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(rt.Console, rt.ConfigPath)
	return nil
}
