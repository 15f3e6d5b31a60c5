// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// GitPath is the git binary used for diff acquisition.
	GitPath string `yaml:"git_path"`
	// Theme selects a built-in color palette.
	Theme string `yaml:"theme"`
	// Exclude lists doublestar glob patterns; matching file paths are
	// dropped from the review after parsing.
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitPath: "git",
		Theme:   "tokyo-night",
	}
}

// Load reads the config file at path, applying defaults for anything not
// set. A missing file is not an error; the defaults are returned. The
// result is always validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file, defaults apply.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Excluded reports whether the given diff path matches any exclude glob.
// Invalid patterns are rejected by Validate, so matching cannot fail here.
func (c *Config) Excluded(path string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
