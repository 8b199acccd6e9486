// Package config provides YAML/TOML application configuration loading for
// the gameland launcher and runtime.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/gameland/internal/core"
)

// Config is the launcher configuration.
type Config struct {
	GamesDir string       `yaml:"games_dir" toml:"games_dir"`
	DBPath   string       `yaml:"db_path" toml:"db_path"`
	Log      LogConfig    `yaml:"log" toml:"log"`
	Engine   EngineConfig `yaml:"engine" toml:"engine"`
	Input    InputConfig  `yaml:"input" toml:"input"`
	SSH      SSHConfig    `yaml:"ssh" toml:"ssh"`
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // text, json, logfmt
}

// EngineConfig holds the startup values of the per-game engine state.
type EngineConfig struct {
	TargetFPS    int    `yaml:"target_fps" toml:"target_fps"`
	Background   [3]int `yaml:"background" toml:"background"`
	ScreenWidth  int    `yaml:"screen_width" toml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height" toml:"screen_height"`
}

// InputConfig tunes the terminal keyboard.
type InputConfig struct {
	// HoldTimeout is how long a key stays held after an auto-repeat press
	// when the terminal reports presses only.
	HoldTimeout time.Duration `yaml:"hold_timeout" toml:"hold_timeout"`

	// RepeatDelay is how long a key stays held after its first press,
	// covering the terminal's delay before auto-repeat starts.
	RepeatDelay time.Duration `yaml:"repeat_delay" toml:"repeat_delay"`
}

// SSHConfig configures `gameland serve`.
type SSHConfig struct {
	Address     string        `yaml:"address" toml:"address"`
	HostKeyPath string        `yaml:"host_key_path" toml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout" toml:"idle_timeout"`
}

// Runtime returns the initial engine state for one game run.
func (c Config) Runtime() core.EngineConfig {
	cfg := core.DefaultEngineConfig()
	cfg.SetTargetFrameRate(c.Engine.TargetFPS)
	cfg.SetBackgroundColor(c.Engine.Background[0], c.Engine.Background[1], c.Engine.Background[2])
	if c.Engine.ScreenWidth > 0 {
		cfg.ScreenW = c.Engine.ScreenWidth
	}
	if c.Engine.ScreenHeight > 0 {
		cfg.ScreenH = c.Engine.ScreenHeight
	}
	return cfg
}

// Validate checks values that have no sensible fallback.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Engine.TargetFPS < core.MinTargetFPS || c.Engine.TargetFPS > core.MaxTargetFPS {
		return fmt.Errorf("config: target_fps %d out of range [%d, %d]",
			c.Engine.TargetFPS, core.MinTargetFPS, core.MaxTargetFPS)
	}
	if c.Engine.ScreenWidth <= 0 || c.Engine.ScreenHeight <= 0 {
		return fmt.Errorf("config: screen size %dx%d must be positive",
			c.Engine.ScreenWidth, c.Engine.ScreenHeight)
	}
	if c.Input.HoldTimeout <= 0 || c.Input.RepeatDelay <= 0 {
		return fmt.Errorf("config: hold_timeout and repeat_delay must be positive")
	}
	return nil
}

// resolvePaths expands ~ and fills in the platform games directory.
func (c *Config) resolvePaths() error {
	var err error
	if c.GamesDir == "" {
		c.GamesDir, err = DefaultGamesDir()
		if err != nil {
			return err
		}
	}
	if c.GamesDir, err = expandHome(c.GamesDir); err != nil {
		return err
	}
	if c.DBPath, err = expandHome(c.DBPath); err != nil {
		return err
	}
	if c.SSH.HostKeyPath, err = expandHome(c.SSH.HostKeyPath); err != nil {
		return err
	}
	return nil
}

// DefaultGamesDir returns <user config dir>/Gameland/games.
func DefaultGamesDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot locate user config directory: %w", err)
	}
	return filepath.Join(dir, "Gameland", "games"), nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
