package config

import "time"

// Config is the complete blockpaste configuration.
type Config struct {
	// PluginsPath is a directory of extra plugin manifests (.hcl), loaded
	// after the built-in ones. Empty means built-ins only.
	PluginsPath string `yaml:"plugins_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// MaxDepth bounds the nesting depth the importer descends into.
	MaxDepth int `yaml:"max_depth"`

	// Output is the CLI output format: json or text.
	Output string `yaml:"output"`

	Serve   ServeConfig   `yaml:"serve"`
	Publish PublishConfig `yaml:"publish"`
}

// ServeConfig configures the HTTP import server.
type ServeConfig struct {
	// Address to listen on. Empty disables the server.
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	// Watch reloads manifests under PluginsPath when they change.
	Watch bool `yaml:"watch"`
}

// PublishConfig configures pushing imported blocks to a socket.io server.
type PublishConfig struct {
	// URL of the socket.io server. Empty disables publishing.
	URL       string        `yaml:"url"`
	Path      string        `yaml:"path"`
	Namespace string        `yaml:"namespace"`
	Event     string        `yaml:"event"`
	AckEvent  string        `yaml:"ack_event"`
	Timeout   time.Duration `yaml:"timeout"`
	Insecure  bool          `yaml:"insecure_skip_verify"`
}
