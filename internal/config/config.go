// Package config loads the optional TOML file that controls the
// ambient shells (CLI, REPL, GUI): result precision, REPL prompt and
// history, and whether `ans` survives a failed evaluation. None of
// this touches the core, which knows nothing of formatting or files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds every shell-facing knob the core itself has no opinion
// about.
type Config struct {
	Display struct {
		// Precision is the number of decimal places used to format a
		// result with %.*f. A negative value means "use %g instead".
		Precision int `toml:"precision"`
	} `toml:"display"`

	REPL struct {
		Prompt         string `toml:"prompt"`
		HistoryFile    string `toml:"history_file"`
		KeepAnsOnError bool   `toml:"keep_ans_on_error"`
	} `toml:"repl"`
}

// Default returns the configuration every shell starts from absent a
// config file.
func Default() *Config {
	cfg := &Config{}
	cfg.Display.Precision = -1
	cfg.REPL.Prompt = ">> "
	cfg.REPL.HistoryFile = defaultHistoryFile()
	cfg.REPL.KeepAnsOnError = true
	return cfg
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mathvm_history"
	}
	return filepath.Join(home, ".mathvm_history")
}

// Load reads path, merging it over Default(). A missing file is not an
// error: it just means every shell runs with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// FormatResult renders v the way the Display section asks for.
func (c *Config) FormatResult(v float64) string {
	if c.Display.Precision < 0 {
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%.*f", c.Display.Precision, v)
}
