// Package headless provides an in-memory platform for tests and CI runs.
// Input is scripted per frame and rendering is recorded instead of shown.
package headless

import (
	"math"

	"github.com/vovakirdan/gameland/internal/core"
	"github.com/vovakirdan/gameland/internal/engine"
)

// Rect is one recorded FillRect call.
type Rect struct {
	Bounds core.Rect
	Color  core.RGB
}

// Canvas records the draw calls of the most recent frame.
type Canvas struct {
	Background core.RGB
	Rects      []Rect
	Presents   int

	pending []Rect
}

// Clear starts a new frame.
func (c *Canvas) Clear(bg core.RGB) {
	c.Background = bg
	c.pending = c.pending[:0]
}

// FillRect records a rectangle.
func (c *Canvas) FillRect(r core.Rect, col core.RGB) {
	c.pending = append(c.pending, Rect{Bounds: r, Color: col})
}

// Present publishes the pending frame.
func (c *Canvas) Present() {
	c.Rects = append(c.Rects[:0], c.pending...)
	c.Presents++
}

// Rasterize paints the presented frame onto a w x h cell screen, scaling
// the canvas of size canvasW x canvasH down to it.
func (c *Canvas) Rasterize(w, h, canvasW, canvasH int) *core.Screen {
	screen := core.NewScreen(w, h)
	screen.Clear(c.Background)
	sx := float64(w) / float64(canvasW)
	sy := float64(h) / float64(canvasH)
	for _, r := range c.Rects {
		b := r.Bounds.Scale(sx, sy)
		x0, x1 := span(b.X, b.Right(), w)
		y0, y1 := span(b.Y, b.Bottom(), h)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				screen.Set(x, y, core.Cell{Rune: '█', FG: r.Color, BG: c.Background})
			}
		}
	}
	return screen
}

// span converts [lo, hi) to cell indices clipped to [0, limit).
func span(lo, hi float64, limit int) (int, int) {
	lo = core.Clamp(math.Floor(lo), 0, float64(limit))
	hi = core.Clamp(math.Ceil(hi), 0, float64(limit))
	return int(lo), int(hi)
}

// Platform is a scripted platform. Actions registered with At run when the
// scheduler polls the matching frame (frames count from 0).
type Platform struct {
	canvas  *Canvas
	held    map[core.KeyCode]bool
	queue   []core.Event
	actions map[int][]func(*Platform)
	frame   int
	closed  bool
}

var _ engine.Platform = (*Platform)(nil)

// New creates an idle headless platform.
func New() *Platform {
	return &Platform{
		canvas:  &Canvas{},
		held:    make(map[core.KeyCode]bool),
		actions: make(map[int][]func(*Platform)),
	}
}

// At schedules fn to run at the start of the given frame's poll.
func (p *Platform) At(frame int, fn func(*Platform)) *Platform {
	p.actions[frame] = append(p.actions[frame], fn)
	return p
}

// QuitAt schedules a quit signal for frame.
func (p *Platform) QuitAt(frame int) *Platform {
	return p.At(frame, func(p *Platform) { p.Queue(core.QuitEvent()) })
}

// Queue appends raw events for the next poll.
func (p *Platform) Queue(events ...core.Event) {
	p.queue = append(p.queue, events...)
}

// Press marks code as held and queues its key-down event.
func (p *Platform) Press(code core.KeyCode) {
	p.held[code] = true
	p.Queue(core.KeyDownEvent(code))
}

// Release clears code and queues its key-up event.
func (p *Platform) Release(code core.KeyCode) {
	delete(p.held, code)
	p.Queue(core.KeyUpEvent(code))
}

// SetHeld changes physical state without producing events.
func (p *Platform) SetHeld(code core.KeyCode, held bool) {
	if held {
		p.held[code] = true
	} else {
		delete(p.held, code)
	}
}

// PollEvents runs the current frame's actions and drains the queue.
func (p *Platform) PollEvents() []core.Event {
	for _, fn := range p.actions[p.frame] {
		fn(p)
	}
	delete(p.actions, p.frame)
	p.frame++

	events := p.queue
	p.queue = nil
	return events
}

// KeyPressed reports the scripted physical state.
func (p *Platform) KeyPressed(code core.KeyCode) bool {
	return p.held[code]
}

// Surface returns the recording canvas.
func (p *Platform) Surface() engine.Surface {
	return p.canvas
}

// Canvas returns the recording canvas.
func (p *Platform) Canvas() *Canvas {
	return p.canvas
}

// Frames returns how many times the platform has been polled.
func (p *Platform) Frames() int {
	return p.frame
}

// Closed reports whether Close was called.
func (p *Platform) Closed() bool {
	return p.closed
}

// Close marks the platform closed.
func (p *Platform) Close() error {
	p.closed = true
	return nil
}
