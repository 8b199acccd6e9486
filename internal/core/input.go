package core

// KeyCode identifies a physical key. Printable ASCII keys use their
// character code (lower-case for letters); special keys live above 0xFF.
type KeyCode int

// Special and control keys. Letters and digits need no constants: use
// KeyCode('a') or KeyCode('7').
const (
	KeyUnknown   KeyCode = 0
	KeyBackspace KeyCode = 8
	KeyTab       KeyCode = 9
	KeyReturn    KeyCode = 13
	KeyEscape    KeyCode = 27
	KeySpace     KeyCode = 32
	KeyDelete    KeyCode = 127

	KeyUp KeyCode = 0x100 + iota
	KeyDown
	KeyLeft
	KeyRight
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLShift
	KeyLCtrl
	KeyLAlt
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// keyNames holds the platform names of non-printable keys.
var keyNames = map[KeyCode]string{
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyReturn:    "return",
	KeyEscape:    "escape",
	KeySpace:     "space",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyInsert:    "insert",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "page up",
	KeyPageDown:  "page down",
	KeyLShift:    "left shift",
	KeyLCtrl:     "left ctrl",
	KeyLAlt:      "left alt",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// KeyName returns the human-readable platform name of a key code.
// Unknown codes yield "unknown".
func KeyName(code KeyCode) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	if code > KeySpace && code < KeyDelete {
		return string(rune(code))
	}
	return "unknown"
}

// String implements fmt.Stringer.
func (k KeyCode) String() string {
	return KeyName(k)
}

// EventKind classifies raw platform events.
type EventKind int

const (
	EventNone EventKind = iota
	EventQuit           // Window close or explicit quit key
	EventKeyDown        // Physical key transitioned to pressed
	EventKeyUp          // Physical key transitioned to released
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "Quit"
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	default:
		return "None"
	}
}

// Event is a raw platform event drained by the scheduler each frame.
type Event struct {
	Kind EventKind
	Code KeyCode // Set for key events
}

// QuitEvent returns a quit signal event.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// KeyDownEvent returns a key press event for code.
func KeyDownEvent(code KeyCode) Event {
	return Event{Kind: EventKeyDown, Code: code}
}

// KeyUpEvent returns a key release event for code.
func KeyUpEvent(code KeyCode) Event {
	return Event{Kind: EventKeyUp, Code: code}
}
