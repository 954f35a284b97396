package vim

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is what a key press asks the interaction loop to do.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionExpand
	ActionCollapse
	ActionActivate
	ActionEdit
	ActionQuit
	ActionBack
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionExpand:
		return "expand"
	case ActionCollapse:
		return "collapse"
	case ActionActivate:
		return "activate"
	case ActionEdit:
		return "edit"
	case ActionQuit:
		return "quit"
	case ActionBack:
		return "back"
	default:
		return "none"
	}
}

// KeyBinding ties a bubbles binding to an action.
type KeyBinding struct {
	key.Binding
	action Action
}

// Action returns the bound action.
func (kb KeyBinding) Action() Action {
	return kb.action
}

// NewKeyBinding creates a new key binding.
func NewKeyBinding(action Action, keys []string, helpKey, description string) KeyBinding {
	return KeyBinding{
		Binding: key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKey, description),
		),
		action: action,
	}
}

// KeyMap holds key bindings organized by mode.
type KeyMap struct {
	bindings map[Mode][]KeyBinding
	hints    map[Mode][]key.Binding
}

// NewKeyMap creates a new empty key map.
func NewKeyMap() *KeyMap {
	return &KeyMap{
		bindings: make(map[Mode][]KeyBinding),
		hints:    make(map[Mode][]key.Binding),
	}
}

// Register adds a key binding for a mode.
func (km *KeyMap) Register(mode Mode, kb KeyBinding) {
	km.bindings[mode] = append(km.bindings[mode], kb)
}

// Hint adds a footer hint for a mode. Hints are only displayed, never matched
// against input.
func (km *KeyMap) Hint(mode Mode, helpKey, description string) {
	km.hints[mode] = append(km.hints[mode], key.NewBinding(
		key.WithKeys(helpKey),
		key.WithHelp(helpKey, description),
	))
}

// GetBindings returns all bindings for a mode.
func (km *KeyMap) GetBindings(mode Mode) []KeyBinding {
	return km.bindings[mode]
}

// FindBinding finds a matching binding for the given mode and key message.
func (km *KeyMap) FindBinding(mode Mode, msg tea.KeyMsg) (KeyBinding, bool) {
	for _, kb := range km.bindings[mode] {
		if key.Matches(msg, kb.Binding) {
			return kb, true
		}
	}
	return KeyBinding{}, false
}

// ActionFor resolves a key press to an action. Unbound keys yield ActionNone.
func (km *KeyMap) ActionFor(mode Mode, msg tea.KeyMsg) Action {
	kb, ok := km.FindBinding(mode, msg)
	if !ok {
		return ActionNone
	}
	return kb.action
}

// Help returns the footer hints for a mode.
func (km *KeyMap) Help(mode Mode) help.KeyMap {
	return modeHelp{hints: km.hints[mode], bindings: km.bindings[mode]}
}

type modeHelp struct {
	hints    []key.Binding
	bindings []KeyBinding
}

func (h modeHelp) ShortHelp() []key.Binding {
	return h.hints
}

func (h modeHelp) FullHelp() [][]key.Binding {
	all := make([]key.Binding, 0, len(h.bindings))
	for _, kb := range h.bindings {
		all = append(all, kb.Binding)
	}
	return [][]key.Binding{h.hints, all}
}

// DefaultKeyMap returns the bindings of the command browser.
func DefaultKeyMap() *KeyMap {
	km := NewKeyMap()

	km.Register(ModeNormal, NewKeyBinding(ActionUp, []string{"up", "k"}, "↑/k", "up"))
	km.Register(ModeNormal, NewKeyBinding(ActionDown, []string{"down", "j"}, "↓/j", "down"))
	km.Register(ModeNormal, NewKeyBinding(ActionExpand, []string{"right", "l"}, "→/l", "expand"))
	km.Register(ModeNormal, NewKeyBinding(ActionCollapse, []string{"left", "h"}, "←/h", "collapse"))
	km.Register(ModeNormal, NewKeyBinding(ActionActivate, []string{"enter"}, "Enter", "toggle / open"))
	km.Register(ModeNormal, NewKeyBinding(ActionEdit, []string{"e"}, "e", "edit node"))
	km.Register(ModeNormal, NewKeyBinding(ActionQuit, []string{"q", "esc", "ctrl+c"}, "q", "quit"))

	km.Register(ModeEditing, NewKeyBinding(ActionBack, []string{"esc"}, "Esc", "normal"))
	km.Register(ModeEditing, NewKeyBinding(ActionQuit, []string{"ctrl+c"}, "ctrl+c", "quit"))

	km.Hint(ModeNormal, "(q)", "quit")
	km.Hint(ModeNormal, "(e)", "edit node")
	km.Hint(ModeNormal, "(Enter)", "toggle / open")

	// Enter is advertised but saving is not implemented.
	km.Hint(ModeEditing, "(Esc)", "normal")
	km.Hint(ModeEditing, "(Enter)", "save change")

	return km
}
