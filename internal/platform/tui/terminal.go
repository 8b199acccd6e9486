package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameland/internal/core"
	"github.com/vovakirdan/gameland/internal/engine"
)

// Terminal is the engine platform backed by a Bubble Tea program. Key
// messages are fed in by the model between frames; the scheduler polls
// them on the next frame.
type Terminal struct {
	keyboard  *Keyboard
	keyMapper *KeyMapper
	canvas    *Canvas
	now       func() time.Time
	closed    bool
}

var _ engine.Platform = (*Terminal)(nil)

// TerminalOptions configures a terminal platform.
type TerminalOptions struct {
	LogicalW, LogicalH int // Drawing area the game sees
	Cols, Rows         int // Cells available for the canvas
	HoldTimeout        time.Duration
	RepeatDelay        time.Duration
	Now                func() time.Time // Defaults to time.Now
}

// NewTerminal creates a terminal platform.
func NewTerminal(opts TerminalOptions) *Terminal {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Terminal{
		keyboard:  NewKeyboard(opts.HoldTimeout, opts.RepeatDelay),
		keyMapper: NewKeyMapper(),
		canvas:    NewCanvas(opts.LogicalW, opts.LogicalH, opts.Cols, opts.Rows),
		now:       opts.Now,
	}
}

// HandleKey feeds a key message to the keyboard. It reports the codes it
// pressed; Ctrl+C becomes a quit signal.
func (t *Terminal) HandleKey(msg tea.KeyMsg) []core.KeyCode {
	codes, quit := t.keyMapper.MapKey(msg)
	if quit {
		t.keyboard.Quit()
		return nil
	}
	t.keyboard.Press(t.now(), codes...)
	return codes
}

// ReleaseAll releases every held key, e.g. when the terminal loses focus.
func (t *Terminal) ReleaseAll() {
	t.keyboard.ReleaseAll()
}

// Resize changes the canvas cell size.
func (t *Terminal) Resize(cols, rows int) {
	t.canvas.Resize(cols, rows)
}

// Screen returns the last presented frame.
func (t *Terminal) Screen() *core.Screen {
	return t.canvas.Screen()
}

// PollEvents implements engine.Platform.
func (t *Terminal) PollEvents() []core.Event {
	t.keyboard.Expire(t.now())
	return t.keyboard.Drain()
}

// KeyPressed implements engine.Platform.
func (t *Terminal) KeyPressed(code core.KeyCode) bool {
	return t.keyboard.KeyPressed(code)
}

// Surface implements engine.Platform.
func (t *Terminal) Surface() engine.Surface {
	return t.canvas
}

// Close implements engine.Platform.
func (t *Terminal) Close() error {
	t.closed = true
	t.keyboard.ReleaseAll()
	t.keyboard.Drain()
	return nil
}

// Closed reports whether Close has been called.
func (t *Terminal) Closed() bool {
	return t.closed
}
