package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/internal/infra/confloader"
	"github.com/sharepay/sharepay-go/internal/storage"
)

// Keys lists every configuration key, dotted.
var Keys = []string{
	"server",
	"output",
	"timeout",
	"rate_limit",
	"rate_burst",
	"history",
	"log.level",
	"log.format",
	"credentials.backend",
	"credentials.path",
	"credentials.redis.addr",
	"credentials.redis.key",
	"tls.ca_file",
	"tls.cert_file",
	"tls.key_file",
}

// DefaultDir returns ~/.sharepay, or .sharepay when the home directory
// is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sharepay"
	}
	return filepath.Join(home, ".sharepay")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "cli.yaml")
}

// Load reads path (a missing file is fine), the environment and flags,
// in increasing priority. flags holds dotted keys; empty strings are
// ignored.
func Load(path string, flags map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	l := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOptionalFile(),
		confloader.WithDefaults(defaultsMap(Default())),
		confloader.WithKeys(Keys...),
	)

	cfg := &CLIConfig{}
	if err := l.Load(cfg); err != nil {
		return nil, err
	}
	if len(flags) > 0 {
		if err := l.LoadMap(flags); err != nil {
			return nil, err
		}
		if err := l.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	cfg.Credentials.Path = expandHome(cfg.Credentials.Path)
	cfg.History = expandHome(cfg.History)
	cfg.TLS.CAFile = expandHome(cfg.TLS.CAFile)
	cfg.TLS.CertFile = expandHome(cfg.TLS.CertFile)
	cfg.TLS.KeyFile = expandHome(cfg.TLS.KeyFile)
	return cfg, nil
}

// Save writes cfg to path as YAML with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (c *CLIConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server) == "" {
		errs = append(errs, errors.New("server is empty"))
	}
	if !validOutputs[c.Output] {
		errs = append(errs, fmt.Errorf("output %q: want table, json or yaml", c.Output))
	}
	if d, err := c.TimeoutDuration(); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("timeout %q: want a positive duration", c.Timeout))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate_limit must not be negative"))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		errs = append(errs, errors.New("rate_burst must be at least 1"))
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level %q", c.Log.Level))
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, fmt.Errorf("log.format %q", c.Log.Format))
	}

	backend := strings.ToLower(c.Credentials.Backend)
	switch {
	case !validBackends[backend]:
		errs = append(errs, fmt.Errorf("credentials.backend %q", c.Credentials.Backend))
	case backend == "redis" && c.Credentials.Redis.Addr == "":
		errs = append(errs, errors.New("credentials.redis.addr is required for the redis backend"))
	case (backend == "file" || backend == "badger") && c.Credentials.Path == "":
		errs = append(errs, errors.New("credentials.path is empty"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("tls.cert_file and tls.key_file must be set together"))
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return domain.ErrValidation.WithDetails(strings.Join(msgs, "; ")).WithCause(errors.Join(errs...))
	}
	return nil
}

// Storage converts the credentials section for storage.Open.
func (c *CLIConfig) Storage() storage.Config {
	return storage.Config{
		Backend:   c.Credentials.Backend,
		Path:      c.Credentials.Path,
		RedisAddr: c.Credentials.Redis.Addr,
		RedisKey:  c.Credentials.Redis.Key,
	}
}

func defaultsMap(c *CLIConfig) map[string]any {
	return map[string]any{
		"server":              c.Server,
		"output":              c.Output,
		"timeout":             c.Timeout,
		"rate_limit":          c.RateLimit,
		"rate_burst":          c.RateBurst,
		"history":             c.History,
		"log.level":           c.Log.Level,
		"log.format":          c.Log.Format,
		"credentials.backend": c.Credentials.Backend,
		"credentials.path":    c.Credentials.Path,
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
