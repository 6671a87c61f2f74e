package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks cfg and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level must be one of debug, info, warn, error; got %q", cfg.LogLevel))
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log_format must be text or json; got %q", cfg.LogFormat))
	}
	switch cfg.Output {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("output must be json or text; got %q", cfg.Output))
	}
	if cfg.MaxDepth < 1 {
		errs = append(errs, fmt.Sprintf("max_depth must be positive; got %d", cfg.MaxDepth))
	}

	if cfg.Serve.ReadTimeout < 0 || cfg.Serve.WriteTimeout < 0 {
		errs = append(errs, "serve timeouts must not be negative")
	}
	if cfg.Serve.MaxBodyBytes < 0 {
		errs = append(errs, "serve.max_body_bytes must not be negative")
	}
	if cfg.Serve.Watch && cfg.PluginsPath == "" {
		errs = append(errs, "serve.watch requires plugins_path")
	}

	if cfg.Publish.URL != "" {
		u, err := url.Parse(cfg.Publish.URL)
		if err != nil || u.Host == "" {
			errs = append(errs, fmt.Sprintf("publish.url must be an absolute URL; got %q", cfg.Publish.URL))
		}
		if !strings.HasPrefix(cfg.Publish.Namespace, "/") {
			errs = append(errs, fmt.Sprintf("publish.namespace must start with '/'; got %q", cfg.Publish.Namespace))
		}
		if cfg.Publish.Timeout <= 0 {
			errs = append(errs, "publish.timeout must be positive")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
