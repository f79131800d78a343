// Package config holds run configuration for a single invocation: the RPC
// endpoint, block count, timeout, and output switches. Values come from, in
// increasing precedence, built-in defaults, the RPC_URL environment variable,
// an optional YAML config file, and command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PlaceholderRPC is the endpoint used when neither a flag, a config file,
// nor RPC_URL provides one. It will fail the connectivity probe until the
// user substitutes a real key, which is the point: the error names exactly
// what is missing.
const PlaceholderRPC = "https://mainnet.infura.io/v3/YOUR_INFURA_KEY"

// Config is the fully resolved configuration for one run. It is built once
// at startup and passed down explicitly; nothing reads ambient globals after
// this point.
type Config struct {
	RPCURL  string
	Count   int
	Timeout time.Duration
	Workers int
	JSON    bool
	Report  bool
}

// DefaultRPCURL returns the RPC_URL environment variable if set, otherwise
// the placeholder endpoint.
func DefaultRPCURL() string {
	if env := os.Getenv("RPC_URL"); env != "" {
		return env
	}
	return PlaceholderRPC
}

// Validate checks the configuration before any network activity. A failure
// here is a configuration error: the caller reports it and exits with
// status 1 without attempting a connection.
func (c *Config) Validate() error {
	u, err := url.Parse(c.RPCURL)
	if err != nil {
		return fmt.Errorf("invalid RPC URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid RPC URL scheme %q (expected http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid RPC URL (missing host)")
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be >= 1, got %d", c.Count)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", c.Timeout)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	return nil
}

// File is the optional YAML config file shape. Every field is optional;
// unset fields leave the corresponding default untouched, and command-line
// flags override anything set here.
//
// Example:
//
//	rpc: ${RPC_URL}
//	count: 20
//	timeout: 10s
//	workers: 4
type File struct {
	RPC     string        `yaml:"rpc"`
	Count   int           `yaml:"count"`
	Timeout time.Duration `yaml:"timeout"`
	Workers int           `yaml:"workers"`
}

// LoadFile reads and parses a YAML config file. Environment variables in the
// file are expanded with ${VAR} syntax before parsing, so endpoints with API
// keys can stay out of the file itself.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &f, nil
}

// Apply overlays the file's set fields onto the configuration.
func (f *File) Apply(cfg *Config) {
	if f.RPC != "" {
		cfg.RPCURL = f.RPC
	}
	if f.Count != 0 {
		cfg.Count = f.Count
	}
	if f.Timeout != 0 {
		cfg.Timeout = f.Timeout
	}
	if f.Workers != 0 {
		cfg.Workers = f.Workers
	}
}
