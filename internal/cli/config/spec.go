package config

import (
	"path/filepath"
	"time"
)

// Output formats accepted by the output key.
var validOutputs = map[string]bool{"table": true, "json": true, "yaml": true}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validLogFormats = map[string]bool{"console": true, "json": true, "text": true}

var validBackends = map[string]bool{"file": true, "memory": true, "badger": true, "redis": true}

// CLIConfig is the configuration for sharepay-cli.
type CLIConfig struct {
	// Server is the SharePay base URL.
	Server string `koanf:"server" yaml:"server"`
	// Output is table, json or yaml.
	Output string `koanf:"output" yaml:"output"`
	// Timeout bounds each HTTP exchange, as a Go duration.
	Timeout string `koanf:"timeout" yaml:"timeout"`
	// RateLimit caps requests per second. Zero disables the limiter.
	RateLimit float64 `koanf:"rate_limit" yaml:"rate_limit"`
	// RateBurst is the limiter burst size.
	RateBurst int `koanf:"rate_burst" yaml:"rate_burst"`
	// History is the REPL history file.
	History string `koanf:"history" yaml:"history"`

	Log         LogConfig         `koanf:"log" yaml:"log"`
	Credentials CredentialsConfig `koanf:"credentials" yaml:"credentials"`
	TLS         TLSConfig         `koanf:"tls" yaml:"tls,omitempty"`
}

// LogConfig selects log verbosity and format.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// CredentialsConfig selects where tokens are kept.
type CredentialsConfig struct {
	Backend string      `koanf:"backend" yaml:"backend"`
	Path    string      `koanf:"path" yaml:"path"`
	Redis   RedisConfig `koanf:"redis" yaml:"redis"`
}

// RedisConfig locates a shared Redis credential store.
type RedisConfig struct {
	Addr string `koanf:"addr" yaml:"addr,omitempty"`
	Key  string `koanf:"key" yaml:"key,omitempty"`
}

// TLSConfig trusts extra CAs and optionally presents a client
// certificate. Empty fields use the system roots and no client cert.
type TLSConfig struct {
	CAFile   string `koanf:"ca_file" yaml:"ca_file,omitempty"`
	CertFile string `koanf:"cert_file" yaml:"cert_file,omitempty"`
	KeyFile  string `koanf:"key_file" yaml:"key_file,omitempty"`
}

// Default values.
const (
	DefaultServer  = "http://localhost:8000"
	DefaultOutput  = "table"
	DefaultTimeout = 30 * time.Second
)

// Default returns the built-in configuration rooted at DefaultDir.
func Default() *CLIConfig {
	dir := DefaultDir()
	return &CLIConfig{
		Server:    DefaultServer,
		Output:    DefaultOutput,
		Timeout:   DefaultTimeout.String(),
		RateBurst: 1,
		History:   filepath.Join(dir, "history"),
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Credentials: CredentialsConfig{
			Backend: "file",
			Path:    filepath.Join(dir, "credentials"),
		},
	}
}

// TimeoutDuration parses Timeout, falling back to DefaultTimeout when unset.
func (c *CLIConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	return time.ParseDuration(c.Timeout)
}
