package app

import (
	"errors"

	"github.com/specialistvlad/blockpaste/internal/config"
)

// StdinPath selects standard input as the HTML source.
const StdinPath = "-"

// Config holds everything an App instance needs to run: the loaded
// configuration plus what the command line selected.
type Config struct {
	config.Config

	// InputPath is the HTML file to import, or StdinPath. Empty means serve.
	InputPath string
}

// NewConfig validates cfg. Either an input path or a serve address is
// required.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" && cfg.Serve.Address == "" {
		return nil, errors.New("an input path or a serve address is required")
	}
	config.ApplyDefaults(&cfg.Config)
	if err := config.Validate(&cfg.Config); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Serving reports whether the app runs the HTTP server instead of a
// one-shot import.
func (c *Config) Serving() bool {
	return c.InputPath == ""
}
