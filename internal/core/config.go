package core

// Canvas defaults. The render surface is a fixed logical canvas; platforms
// scale it to whatever they can display.
const (
	DefaultScreenW   = 800
	DefaultScreenH   = 600
	DefaultTargetFPS = 60

	MinTargetFPS = 1
	MaxTargetFPS = 1000
)

// EngineConfig is the mutable per-run engine state that scripts may change
// through the host API. It is owned by the frame scheduler and shared by
// pointer with the host API; the scheduler reads it once per frame.
type EngineConfig struct {
	TargetFrameRate int // Frames per second the scheduler paces to
	BackgroundColor RGB // Clear color for every frame
	ScreenW         int // Logical canvas width in pixels
	ScreenH         int // Logical canvas height in pixels
}

// DefaultEngineConfig returns an EngineConfig with the runtime's defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TargetFrameRate: DefaultTargetFPS,
		BackgroundColor: ColorBackground,
		ScreenW:         DefaultScreenW,
		ScreenH:         DefaultScreenH,
	}
}

// SetTargetFrameRate stores fps clamped into [MinTargetFPS, MaxTargetFPS].
func (c *EngineConfig) SetTargetFrameRate(fps int) {
	c.TargetFrameRate = Clamp(fps, MinTargetFPS, MaxTargetFPS)
}

// SetBackgroundColor stores the clear color, clamping channels into [0, 255].
func (c *EngineConfig) SetBackgroundColor(r, g, b int) {
	c.BackgroundColor = NewRGB(r, g, b)
}

// ScreenSize returns the logical canvas dimensions.
func (c *EngineConfig) ScreenSize() (int, int) {
	return c.ScreenW, c.ScreenH
}
