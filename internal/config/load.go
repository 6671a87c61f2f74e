package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration held in memory. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document decodes to io.EOF and means all defaults.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies BLOCKPASTE_* environment variables. Values that
// fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("BLOCKPASTE_PLUGINS_PATH"); val != "" {
		cfg.PluginsPath = val
	}
	if val := os.Getenv("BLOCKPASTE_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv("BLOCKPASTE_LOG_FORMAT"); val != "" {
		cfg.LogFormat = val
	}
	if val := os.Getenv("BLOCKPASTE_MAX_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.MaxDepth = i
		}
	}
	if val := os.Getenv("BLOCKPASTE_SERVE_ADDRESS"); val != "" {
		cfg.Serve.Address = val
	}
	if val := os.Getenv("BLOCKPASTE_SERVE_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Serve.Watch = b
		}
	}
	if val := os.Getenv("BLOCKPASTE_PUBLISH_URL"); val != "" {
		cfg.Publish.URL = val
	}
	if val := os.Getenv("BLOCKPASTE_PUBLISH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Publish.Timeout = d
		}
	}
}
