package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Component is the interface for all TUI components.
type Component interface {
	// Init initializes the component.
	Init() tea.Cmd

	// Update handles messages and returns the updated component.
	Update(msg tea.Msg) (Component, tea.Cmd)

	// View renders the component.
	View() string

	// Title returns the component title.
	Title() string

	// Focused returns true if the component is focused.
	Focused() bool

	// Focus sets the component as focused.
	Focus()

	// Blur removes focus from the component.
	Blur()

	// SetSize sets the component dimensions.
	SetSize(width, height int)

	// Width returns the component width.
	Width() int

	// Height returns the component height.
	Height() int
}

// Panel padding constants
const (
	PanelPaddingV = 0
	PanelPaddingH = 1
)

const ellipsis = "…"

// Palette shared by the panes.
var (
	ColorAccent    = lipgloss.Color("62")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("229")
	ColorCommand   = lipgloss.Color("114")
	ColorWarning   = lipgloss.Color("214")
)

// Styles groups the styles used across components.
type Styles struct {
	Focused   lipgloss.Style
	Unfocused lipgloss.Style
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Command   lipgloss.Style
}

// DefaultStyles returns default styling.
func DefaultStyles() Styles {
	return Styles{
		Focused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent),
		Unfocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight).
			Background(ColorAccent),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Command: lipgloss.NewStyle().
			Foreground(ColorCommand),
	}
}

// RenderTitle renders a title bar.
func RenderTitle(title string, width int, focused bool) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Bold(true)

	if focused {
		style = style.Foreground(ColorHighlight).
			Background(ColorAccent)
	} else {
		style = style.Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))
	}

	return style.Render(Truncate(title, width))
}

// RenderBorder renders content with a border. Width and height are the outer
// dimensions, border included.
func RenderBorder(content string, width, height int, focused bool) string {
	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder())

	if width > 2 {
		style = style.Width(width - 2)
	}
	if height > 2 {
		style = style.Height(height - 2)
	}

	if focused {
		style = style.BorderForeground(ColorAccent)
	} else {
		style = style.BorderForeground(ColorMuted)
	}

	return style.Render(content)
}

// Truncate shortens s to at most width cells, marking the cut with an ellipsis.
// ANSI sequences are preserved.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return truncate.String(s, 1)
	}
	return truncate.StringWithTail(s, uint(width), ellipsis)
}

// PadRight pads s with spaces to width cells, truncating when it is wider.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}
