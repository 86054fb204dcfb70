package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// History backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

const (
	DefaultServerURL = "http://localhost:8080"
	DefaultTimeout   = 10 * time.Second
)

// Client configures the calc binary.
type Client struct {
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
	History   History       `yaml:"history"`
}

// History selects where the calculation history is kept.
type History struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// DefaultClientPath is $HOME/.config/calc/config.yaml.
func DefaultClientPath() string {
	return filepath.Join(userConfigDir(), "calc", "config.yaml")
}

// LoadClient reads the YAML file at path (a missing file is not an error),
// applies CALC_SERVER_URL, CALC_HISTORY_BACKEND and CALC_HISTORY_PATH on top,
// and fills defaults. The result is not validated: callers apply their own
// overrides first and then call Validate.
func LoadClient(path string) (Client, error) {
	var cfg Client

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Client{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Client{}, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv("CALC_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("CALC_HISTORY_BACKEND"); v != "" {
		cfg.History.Backend = v
	}
	if v := os.Getenv("CALC_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}

	return cfg.withDefaults(), nil
}

func (c Client) withDefaults() Client {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.History.Backend == "" {
		c.History.Backend = BackendFile
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath(c.History.Backend)
	}
	return c
}

// Validate rejects unknown backends and non-positive timeouts.
func (c Client) Validate() error {
	switch c.History.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown history backend %q (want %q or %q)", c.History.Backend, BackendFile, BackendSQLite)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// DefaultHistoryPath is a directory for the file backend and a database
// file for the SQLite backend, both under $HOME/.local/share/calc.
func DefaultHistoryPath(backend string) string {
	dir := filepath.Join(userHomeDir(), ".local", "share", "calc")
	if backend == BackendSQLite {
		return filepath.Join(dir, "calc.db")
	}
	return filepath.Join(dir, "storage")
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
