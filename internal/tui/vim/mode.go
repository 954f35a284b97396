package vim

// Mode represents the state of the interaction loop.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDITING"
	default:
		return "UNKNOWN"
	}
}

// Label is the footer text shown for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeNormal:
		return "Normal Mode"
	case ModeEditing:
		return "Editing Mode"
	default:
		return ""
	}
}

// ModeManager handles mode state and transitions.
type ModeManager struct {
	current  Mode
	previous Mode
}

// NewModeManager creates a new mode manager starting in normal mode.
func NewModeManager() *ModeManager {
	return &ModeManager{
		current:  ModeNormal,
		previous: ModeNormal,
	}
}

// Current returns the current mode.
func (m *ModeManager) Current() Mode {
	return m.current
}

// Previous returns the previous mode.
func (m *ModeManager) Previous() Mode {
	return m.previous
}

// SetMode changes the current mode. It reports whether the mode changed.
func (m *ModeManager) SetMode(mode Mode) bool {
	if mode == m.current {
		return false
	}
	m.previous = m.current
	m.current = mode
	return true
}

// IsNormal returns true if in normal mode.
func (m *ModeManager) IsNormal() bool {
	return m.current == ModeNormal
}

// IsEditing returns true if in editing mode.
func (m *ModeManager) IsEditing() bool {
	return m.current == ModeEditing
}

// Reset returns to normal mode.
func (m *ModeManager) Reset() {
	m.current = ModeNormal
	m.previous = ModeNormal
}
