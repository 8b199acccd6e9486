// Package engine runs a loaded game: it owns the frame loop that orders
// input, script update, simulation and rendering.
package engine

import (
	"time"

	"github.com/vovakirdan/gameland/internal/core"
)

// Surface is the render target of one frame.
type Surface interface {
	// Clear fills the whole surface with bg.
	Clear(bg core.RGB)

	// FillRect draws a solid rectangle in surface pixels.
	FillRect(r core.Rect, c core.RGB)

	// Present publishes the frame.
	Present()
}

// Platform is the windowing/input collaborator the scheduler drives.
type Platform interface {
	// PollEvents drains raw events observed since the previous call.
	PollEvents() []core.Event

	// KeyPressed reports the current physical state of a key.
	KeyPressed(code core.KeyCode) bool

	// Surface returns the render target.
	Surface() Surface

	// Close releases rendering resources.
	Close() error
}

// Clock abstracts wall time for the scheduler.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is the real-time clock.
var SystemClock Clock = systemClock{}

// FrameBudget returns the wall-clock duration of one frame at fps.
func FrameBudget(fps int) time.Duration {
	fps = core.Clamp(fps, core.MinTargetFPS, core.MaxTargetFPS)
	return time.Second / time.Duration(fps)
}
