package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/artpar/ccol/internal/tui"
)

// EditPopup shows the command of the node being edited. Editing is not
// persisted; the popup only displays what was highlighted when it opened.
type EditPopup struct {
	title   string
	focused bool
	width   int
	height  int

	identifier string
	command    string
	group      bool
	styles     tui.Styles
}

// NewEditPopup creates an empty popup.
func NewEditPopup() *EditPopup {
	return &EditPopup{
		title:  "Edit command",
		styles: tui.DefaultStyles(),
	}
}

// Init initializes the component.
func (p *EditPopup) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *EditPopup) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		p.SetSize(msg.Width, msg.Height)
	}
	return p, nil
}

// Open loads the popup with the node being edited. An empty identifier means
// nothing was highlighted; group marks a node that holds no command.
func (p *EditPopup) Open(identifier, command string, group bool) {
	p.identifier = identifier
	p.command = command
	p.group = group
	p.focused = true
}

// Close clears the popup.
func (p *EditPopup) Close() {
	p.identifier = ""
	p.command = ""
	p.group = false
	p.focused = false
}

// Identifier returns the identifier the popup was opened for.
func (p *EditPopup) Identifier() string {
	return p.identifier
}

// Command returns the pre-fetched command text.
func (p *EditPopup) Command() string {
	return p.command
}

// IsGroup reports whether the popup was opened on a group.
func (p *EditPopup) IsGroup() bool {
	return p.group
}

// View renders the popup box. Its outer width is half the available width,
// at least 20 cells.
func (p *EditPopup) View() string {
	boxWidth := p.width / 2
	if boxWidth < 20 {
		boxWidth = 20
	}
	if p.width > 0 && boxWidth > p.width {
		boxWidth = p.width
	}
	inner := boxWidth - 2 - 2*tui.PanelPaddingH
	if inner < 1 {
		inner = 1
	}

	var body string
	switch {
	case p.identifier == "":
		body = p.styles.Muted.Render("No node selected")
	case p.group:
		body = p.styles.Muted.Render(tui.Truncate(p.identifier+" is a group", inner))
	case p.command == "":
		body = p.styles.Muted.Render("(empty command)")
	default:
		body = p.styles.Command.Render(tui.Truncate(p.command, inner))
	}

	lines := []string{
		p.styles.Title.Render(tui.Truncate(p.title, inner)),
		body,
	}
	if p.identifier != "" {
		lines = append(lines, p.styles.Muted.Render(tui.Truncate(p.identifier, inner)))
	}

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(tui.ColorWarning).
		Padding(tui.PanelPaddingV, tui.PanelPaddingH).
		Width(boxWidth - 2)

	return style.Render(strings.Join(lines, "\n"))
}

// Title returns the component title.
func (p *EditPopup) Title() string {
	return p.title
}

// Focused returns true if focused.
func (p *EditPopup) Focused() bool {
	return p.focused
}

// Focus sets the component as focused.
func (p *EditPopup) Focus() {
	p.focused = true
}

// Blur removes focus.
func (p *EditPopup) Blur() {
	p.focused = false
}

// SetSize sets the area the popup is centered in.
func (p *EditPopup) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the width.
func (p *EditPopup) Width() int {
	return p.width
}

// Height returns the height.
func (p *EditPopup) Height() int {
	return p.height
}
