package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameland/internal/core"
)

// KeyMapper translates Bubble Tea key messages to platform key codes.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// specialKeys maps non-rune terminal keys to key codes. Modified variants
// press the modifier as well.
var specialKeys = map[tea.KeyType][]core.KeyCode{
	tea.KeySpace:          {core.KeySpace},
	tea.KeyEnter:          {core.KeyReturn},
	tea.KeyTab:            {core.KeyTab},
	tea.KeyShiftTab:       {core.KeyLShift, core.KeyTab},
	tea.KeyEsc:            {core.KeyEscape},
	tea.KeyBackspace:      {core.KeyBackspace},
	tea.KeyDelete:         {core.KeyDelete},
	tea.KeyInsert:         {core.KeyInsert},
	tea.KeyHome:           {core.KeyHome},
	tea.KeyEnd:            {core.KeyEnd},
	tea.KeyPgUp:           {core.KeyPageUp},
	tea.KeyPgDown:         {core.KeyPageDown},
	tea.KeyUp:             {core.KeyUp},
	tea.KeyDown:           {core.KeyDown},
	tea.KeyLeft:           {core.KeyLeft},
	tea.KeyRight:          {core.KeyRight},
	tea.KeyShiftUp:        {core.KeyLShift, core.KeyUp},
	tea.KeyShiftDown:      {core.KeyLShift, core.KeyDown},
	tea.KeyShiftLeft:      {core.KeyLShift, core.KeyLeft},
	tea.KeyShiftRight:     {core.KeyLShift, core.KeyRight},
	tea.KeyCtrlUp:         {core.KeyLCtrl, core.KeyUp},
	tea.KeyCtrlDown:       {core.KeyLCtrl, core.KeyDown},
	tea.KeyCtrlLeft:       {core.KeyLCtrl, core.KeyLeft},
	tea.KeyCtrlRight:      {core.KeyLCtrl, core.KeyRight},
	tea.KeyCtrlShiftUp:    {core.KeyLCtrl, core.KeyLShift, core.KeyUp},
	tea.KeyCtrlShiftDown:  {core.KeyLCtrl, core.KeyLShift, core.KeyDown},
	tea.KeyCtrlShiftLeft:  {core.KeyLCtrl, core.KeyLShift, core.KeyLeft},
	tea.KeyCtrlShiftRight: {core.KeyLCtrl, core.KeyLShift, core.KeyRight},
	tea.KeyF1:             {core.KeyF1},
	tea.KeyF2:             {core.KeyF2},
	tea.KeyF3:             {core.KeyF3},
	tea.KeyF4:             {core.KeyF4},
	tea.KeyF5:             {core.KeyF5},
	tea.KeyF6:             {core.KeyF6},
	tea.KeyF7:             {core.KeyF7},
	tea.KeyF8:             {core.KeyF8},
	tea.KeyF9:             {core.KeyF9},
	tea.KeyF10:            {core.KeyF10},
	tea.KeyF11:            {core.KeyF11},
	tea.KeyF12:            {core.KeyF12},
}

// MapKey translates a key message into the key codes it presses.
// Returns isQuit for the quit signal (Ctrl+C), which presses nothing.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (codes []core.KeyCode, isQuit bool) {
	if msg.Type == tea.KeyCtrlC {
		return nil, true
	}

	switch {
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			codes = append(codes, runeCodes(r)...)
		}
	case specialKeys[msg.Type] != nil:
		codes = append(codes, specialKeys[msg.Type]...)
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		// Ctrl+letter arrives as the matching control character
		letter := core.KeyCode('a' + int(msg.Type-tea.KeyCtrlA))
		codes = append(codes, core.KeyLCtrl, letter)
	default:
		return nil, false
	}

	if msg.Alt && len(codes) > 0 {
		codes = append([]core.KeyCode{core.KeyLAlt}, codes...)
	}
	return codes, false
}

// runeCodes maps a typed character; upper-case letters also press shift.
func runeCodes(r rune) []core.KeyCode {
	switch {
	case r == ' ':
		return []core.KeyCode{core.KeySpace}
	case unicode.IsUpper(r) && r < 128:
		return []core.KeyCode{core.KeyLShift, core.KeyCode(unicode.ToLower(r))}
	case r > ' ' && r < 127:
		return []core.KeyCode{core.KeyCode(r)}
	default:
		return nil
	}
}

// MenuKeyMap defines the key bindings for the game picker.
type MenuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	History key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.History, k.Quit},
	}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "quit"),
		),
	}
}
