package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pmatos/great-review/internal/core/config"
)

// Flags holds global CLI options shared by all commands. Config is loaded
// in the root Before hook and available to every action.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Remote     string

	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "great-review", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's
// state directory. Logging must go to a file: stdout belongs to the TUI.
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "great-review", "great-review.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "great-review", "great-review.log")
	}

	return filepath.Join(home, ".local", "state", "great-review", "great-review.log")
}
