package tui

import (
	"slices"
	"time"

	"github.com/vovakirdan/gameland/internal/core"
)

// heldKey tracks one key the terminal has reported.
type heldKey struct {
	last     time.Time
	repeated bool
}

// Keyboard turns terminal key presses into physical key state.
// Terminals report presses (and auto-repeats) but never releases, so a
// key counts as held until presses stop arriving; the release is then
// synthesised as a key-up event.
type Keyboard struct {
	holdTimeout time.Duration
	repeatDelay time.Duration
	held        map[core.KeyCode]*heldKey
	events      []core.Event
}

// NewKeyboard creates a keyboard. A key stays held for repeatDelay after
// its first press and for holdTimeout after each auto-repeat.
func NewKeyboard(holdTimeout, repeatDelay time.Duration) *Keyboard {
	return &Keyboard{
		holdTimeout: holdTimeout,
		repeatDelay: repeatDelay,
		held:        make(map[core.KeyCode]*heldKey),
	}
}

// Press records presses at now. A key-down event is queued only when the
// key was not already held.
func (k *Keyboard) Press(now time.Time, codes ...core.KeyCode) {
	for _, code := range codes {
		if h, ok := k.held[code]; ok {
			h.last = now
			h.repeated = true
			continue
		}
		k.held[code] = &heldKey{last: now}
		k.events = append(k.events, core.KeyDownEvent(code))
	}
}

// Quit queues a quit signal.
func (k *Keyboard) Quit() {
	k.events = append(k.events, core.QuitEvent())
}

// Expire releases keys whose hold window has lapsed at now, queueing a
// key-up for each in key-code order.
func (k *Keyboard) Expire(now time.Time) {
	var released []core.KeyCode
	for code, h := range k.held {
		window := k.repeatDelay
		if h.repeated {
			window = k.holdTimeout
		}
		if now.Sub(h.last) > window {
			released = append(released, code)
		}
	}
	slices.Sort(released)
	for _, code := range released {
		delete(k.held, code)
		k.events = append(k.events, core.KeyUpEvent(code))
	}
}

// ReleaseAll releases every held key.
func (k *Keyboard) ReleaseAll() {
	codes := make([]core.KeyCode, 0, len(k.held))
	for code := range k.held {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		delete(k.held, code)
		k.events = append(k.events, core.KeyUpEvent(code))
	}
}

// Drain returns and clears the queued events.
func (k *Keyboard) Drain() []core.Event {
	events := k.events
	k.events = nil
	return events
}

// KeyPressed reports whether code is currently held.
func (k *Keyboard) KeyPressed(code core.KeyCode) bool {
	_, ok := k.held[code]
	return ok
}
