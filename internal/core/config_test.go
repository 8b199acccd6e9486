package core

import (
	"math"
	"testing"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()

	if cfg.TargetFrameRate != 60 {
		t.Errorf("TargetFrameRate = %d, expected 60", cfg.TargetFrameRate)
	}
	if cfg.BackgroundColor != (RGB{20, 20, 20}) {
		t.Errorf("BackgroundColor = %v, expected rgb(20,20,20)", cfg.BackgroundColor)
	}
	if w, h := cfg.ScreenSize(); w != 800 || h != 600 {
		t.Errorf("ScreenSize() = (%d, %d), expected (800, 600)", w, h)
	}
}

func TestSetTargetFrameRateClamps(t *testing.T) {
	tests := []struct {
		name     string
		in       int
		expected int
	}{
		{"normal", 30, 30},
		{"zero", 0, MinTargetFPS},
		{"negative", -10, MinTargetFPS},
		{"huge", 100000, MaxTargetFPS},
		{"max int", math.MaxInt, MaxTargetFPS},
		{"min int", math.MinInt, MinTargetFPS},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			cfg.SetTargetFrameRate(tc.in)
			if cfg.TargetFrameRate != tc.expected {
				t.Errorf("SetTargetFrameRate(%d) -> %d, expected %d", tc.in, cfg.TargetFrameRate, tc.expected)
			}
		})
	}
}

func TestSetBackgroundColor(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.SetBackgroundColor(300, -1, 7)
	if cfg.BackgroundColor != (RGB{255, 0, 7}) {
		t.Errorf("BackgroundColor = %v, expected rgb(255,0,7)", cfg.BackgroundColor)
	}

	cfg.SetBackgroundColor(math.MaxInt, math.MinInt, 128)
	if cfg.BackgroundColor != (RGB{255, 0, 128}) {
		t.Errorf("BackgroundColor = %v, expected rgb(255,0,128)", cfg.BackgroundColor)
	}
}
