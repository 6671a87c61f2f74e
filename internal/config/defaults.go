package config

import "time"

// Default values.
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultMaxDepth     = 512
	DefaultOutput       = "json"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	DefaultMaxBodyBytes = 4 << 20
	DefaultPublishPath  = "/socket.io/"
	DefaultNamespace    = "/"
	DefaultEvent        = "blocks:import"
	DefaultAckEvent     = "blocks:imported"
	DefaultTimeout      = 5 * time.Second
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every unset field of cfg with its default.
func ApplyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	if cfg.Serve.ReadTimeout == 0 {
		cfg.Serve.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Serve.WriteTimeout == 0 {
		cfg.Serve.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Serve.MaxBodyBytes == 0 {
		cfg.Serve.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if cfg.Publish.Path == "" {
		cfg.Publish.Path = DefaultPublishPath
	}
	if cfg.Publish.Namespace == "" {
		cfg.Publish.Namespace = DefaultNamespace
	}
	if cfg.Publish.Event == "" {
		cfg.Publish.Event = DefaultEvent
	}
	if cfg.Publish.AckEvent == "" {
		cfg.Publish.AckEvent = DefaultAckEvent
	}
	if cfg.Publish.Timeout == 0 {
		cfg.Publish.Timeout = DefaultTimeout
	}
}
