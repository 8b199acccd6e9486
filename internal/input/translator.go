// Package input translates platform key state into the semantic vocabulary
// scripts consume: a held-key set recomputed every frame, and key-down /
// key-up edge events forwarded as they arrive.
package input

import (
	"sort"
	"strings"

	"github.com/vovakirdan/gameland/internal/core"
)

// Binding maps a semantic key name to a platform key code.
type Binding struct {
	Name string
	Code core.KeyCode
}

// Bindings is the static semantic key table. Keys outside it are never
// reported as held.
var Bindings = []Binding{
	{"left", core.KeyLeft},
	{"right", core.KeyRight},
	{"up", core.KeyUp},
	{"down", core.KeyDown},
	{"w", core.KeyCode('w')},
	{"a", core.KeyCode('a')},
	{"s", core.KeyCode('s')},
	{"d", core.KeyCode('d')},
	{"space", core.KeySpace},
	{"escape", core.KeyEscape},
	{"tab", core.KeyTab},
	{"enter", core.KeyReturn},
	{"shift", core.KeyLShift},
	{"ctrl", core.KeyLCtrl},
	{"alt", core.KeyLAlt},
}

// Keyboard reports current physical key state.
type Keyboard interface {
	KeyPressed(code core.KeyCode) bool
}

// EdgeType distinguishes press and release transitions.
type EdgeType int

const (
	KeyDown EdgeType = iota
	KeyUp
)

// String returns the event type name scripts receive.
func (t EdgeType) String() string {
	if t == KeyUp {
		return "keyUp"
	}
	return "keyDown"
}

// EdgeEvent is a transient key transition notification.
type EdgeEvent struct {
	Type EdgeType
	Key  string // Platform key name
}

// Payload returns a freshly built event payload map.
func (e EdgeEvent) Payload() map[string]any {
	return map[string]any{"key": e.Key}
}

// Dispatcher receives edge events as soon as they are translated.
type Dispatcher func(EdgeEvent)

// Translator owns the held-key set and forwards edge events.
type Translator struct {
	held     map[string]struct{}
	dispatch Dispatcher
}

// NewTranslator creates a translator forwarding edges to dispatch.
// A nil dispatcher drops edge events.
func NewTranslator(dispatch Dispatcher) *Translator {
	return &Translator{
		held:     make(map[string]struct{}, len(Bindings)),
		dispatch: dispatch,
	}
}

// Refresh discards the previous held set and rebuilds it from kb.
func (t *Translator) Refresh(kb Keyboard) {
	clear(t.held)
	for _, b := range Bindings {
		if kb.KeyPressed(b.Code) {
			t.held[b.Name] = struct{}{}
		}
	}
}

// HandleEvent forwards key transitions as edge events. Non-key events are
// ignored; every key is reported regardless of table membership.
func (t *Translator) HandleEvent(ev core.Event) {
	var typ EdgeType
	switch ev.Kind {
	case core.EventKeyDown:
		typ = KeyDown
	case core.EventKeyUp:
		typ = KeyUp
	default:
		return
	}
	if t.dispatch != nil {
		t.dispatch(EdgeEvent{Type: typ, Key: core.KeyName(ev.Code)})
	}
}

// IsKeyDown reports whether the semantic key is in the held set.
// Matching is case-insensitive.
func (t *Translator) IsKeyDown(name string) bool {
	_, ok := t.held[strings.ToLower(name)]
	return ok
}

// Held returns the held semantic names, sorted.
func (t *Translator) Held() []string {
	names := make([]string, 0, len(t.held))
	for name := range t.held {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the platform code bound to a semantic name.
func Lookup(name string) (core.KeyCode, bool) {
	name = strings.ToLower(name)
	for _, b := range Bindings {
		if b.Name == name {
			return b.Code, true
		}
	}
	return core.KeyUnknown, false
}
