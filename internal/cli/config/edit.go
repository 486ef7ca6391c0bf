package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// ReadFile loads only the file layer over the defaults, so that saving
// it back does not persist environment or flag overrides.
func ReadFile(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Set assigns one dotted key from its string form.
func (c *CLIConfig) Set(key, value string) error {
	switch key {
	case "server":
		c.Server = value
	case "output":
		c.Output = value
	case "timeout":
		c.Timeout = value
	case "rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return domain.ErrInvalidArgument.WithDetails("rate_limit: " + value)
		}
		c.RateLimit = f
	case "rate_burst":
		n, err := strconv.Atoi(value)
		if err != nil {
			return domain.ErrInvalidArgument.WithDetails("rate_burst: " + value)
		}
		c.RateBurst = n
	case "history":
		c.History = value
	case "log.level":
		c.Log.Level = value
	case "log.format":
		c.Log.Format = value
	case "credentials.backend":
		c.Credentials.Backend = value
	case "credentials.path":
		c.Credentials.Path = value
	case "credentials.redis.addr":
		c.Credentials.Redis.Addr = value
	case "credentials.redis.key":
		c.Credentials.Redis.Key = value
	case "tls.ca_file":
		c.TLS.CAFile = value
	case "tls.cert_file":
		c.TLS.CertFile = value
	case "tls.key_file":
		c.TLS.KeyFile = value
	default:
		return domain.ErrInvalidArgument.WithDetails("unknown key " + key)
	}
	return nil
}
