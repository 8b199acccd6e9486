package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gameland.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches the
// embedded defaults/gameland.yaml.
func DefaultConfig() Config {
	return Config{
		DBPath: "~/.gameland/history.db",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Engine: EngineConfig{
			TargetFPS:    60,
			Background:   [3]int{20, 20, 20},
			ScreenWidth:  800,
			ScreenHeight: 600,
		},
		Input: InputConfig{
			HoldTimeout: 100 * time.Millisecond,
			RepeatDelay: 550 * time.Millisecond,
		},
		SSH: SSHConfig{
			Address:     ":23234",
			HostKeyPath: "~/.gameland/host_key",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
