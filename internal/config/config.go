// Package config loads the runner's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the runner configuration. Every field has a usable zero-value
// default; a missing file yields Default().
type Config struct {
	// Addr is the engine endpoint: host:port for tcp, a ws:// URL for ws.
	Addr string `yaml:"addr"`

	// Transport selects the framing: "tcp" (default) or "ws".
	Transport string `yaml:"transport"`

	// Strategy names the strategy variant; "default" picks by side.
	Strategy string `yaml:"strategy"`

	// ReplayDir, when set, enables match recording into that directory.
	ReplayDir string `yaml:"replay_dir"`

	// DecisionTimeout bounds one strategy call, e.g. "5s"; empty disables.
	DecisionTimeout string `yaml:"decision_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:      "localhost:9000",
		Transport: "tcp",
		Strategy:  "default",
	}
}

// Load reads a config file, filling unset fields from Default. A missing
// file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Transport == "" {
		cfg.Transport = "tcp"
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "default"
	}
	return cfg, nil
}

// Timeout parses DecisionTimeout; empty means zero (no limit).
func (c Config) Timeout() (time.Duration, error) {
	if c.DecisionTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse decision_timeout: %w", err)
	}
	return d, nil
}
