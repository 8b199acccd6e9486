package tui

import (
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/gameland/internal/core"
)

const (
	testHold   = 100 * time.Millisecond
	testRepeat = 500 * time.Millisecond
)

func TestKeyboardPressOnce(t *testing.T) {
	kb := NewKeyboard(testHold, testRepeat)
	t0 := time.Unix(0, 0)

	kb.Press(t0, core.KeyLeft)
	kb.Press(t0.Add(30*time.Millisecond), core.KeyLeft) // auto-repeat

	events := kb.Drain()
	expected := []core.Event{core.KeyDownEvent(core.KeyLeft)}
	if !slices.Equal(events, expected) {
		t.Errorf("Drain() = %v, expected %v", events, expected)
	}
	if !kb.KeyPressed(core.KeyLeft) {
		t.Error("KeyPressed(left) = false, expected true")
	}
	if len(kb.Drain()) != 0 {
		t.Error("Drain() should clear the queue")
	}
}

func TestKeyboardHoldWindows(t *testing.T) {
	t0 := time.Unix(0, 0)

	tests := []struct {
		name     string
		repeats  []time.Duration // offsets of auto-repeat presses
		at       time.Duration
		expected bool
	}{
		{"held within repeat delay", nil, 400 * time.Millisecond, true},
		{"released after repeat delay", nil, 600 * time.Millisecond, false},
		{"held while repeating", []time.Duration{500 * time.Millisecond, 530 * time.Millisecond}, 600 * time.Millisecond, true},
		{"released when repeats stop", []time.Duration{500 * time.Millisecond}, 650 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyboard(testHold, testRepeat)
			kb.Press(t0, core.KeySpace)
			for _, off := range tt.repeats {
				kb.Press(t0.Add(off), core.KeySpace)
			}
			kb.Expire(t0.Add(tt.at))
			if got := kb.KeyPressed(core.KeySpace); got != tt.expected {
				t.Errorf("KeyPressed(space) = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestKeyboardExpireQueuesKeyUp(t *testing.T) {
	kb := NewKeyboard(testHold, testRepeat)
	t0 := time.Unix(0, 0)

	kb.Press(t0, core.KeyRight, core.KeyCode('a'))
	kb.Drain()
	kb.Expire(t0.Add(time.Second))

	events := kb.Drain()
	expected := []core.Event{core.KeyUpEvent(core.KeyCode('a')), core.KeyUpEvent(core.KeyRight)}
	if !slices.Equal(events, expected) {
		t.Errorf("Drain() = %v, expected %v", events, expected)
	}

	// A fresh press after release is a new key-down
	kb.Press(t0.Add(2*time.Second), core.KeyRight)
	if events := kb.Drain(); !slices.Equal(events, []core.Event{core.KeyDownEvent(core.KeyRight)}) {
		t.Errorf("Drain() after re-press = %v, expected one key-down", events)
	}
}

func TestKeyboardQuitAndReleaseAll(t *testing.T) {
	kb := NewKeyboard(testHold, testRepeat)
	t0 := time.Unix(0, 0)

	kb.Press(t0, core.KeyUp)
	kb.Quit()
	kb.ReleaseAll()

	events := kb.Drain()
	expected := []core.Event{
		core.KeyDownEvent(core.KeyUp),
		core.QuitEvent(),
		core.KeyUpEvent(core.KeyUp),
	}
	if !slices.Equal(events, expected) {
		t.Errorf("Drain() = %v, expected %v", events, expected)
	}
	if kb.KeyPressed(core.KeyUp) {
		t.Error("KeyPressed(up) after ReleaseAll = true, expected false")
	}
}
