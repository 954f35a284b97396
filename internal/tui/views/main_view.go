package views

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/artpar/ccol/internal/core"
	"github.com/artpar/ccol/internal/logging/events"
	"github.com/artpar/ccol/internal/tui"
	"github.com/artpar/ccol/internal/tui/components"
	"github.com/artpar/ccol/internal/tui/vim"
)

// AppTitle is shown in the title bar.
const AppTitle = "Command Collection"

// MainView runs the interaction loop: a Main mode for browsing and an Editing
// mode that shows the highlighted command in a popup. The loop ends when a
// leaf is committed or the user quits.
type MainView struct {
	width  int
	height int

	modes *vim.ModeManager
	keys  *vim.KeyMap
	help  help.Model

	tree  *components.CommandTree
	popup *components.EditPopup

	result   *core.Selection
	quitting bool
}

// NewMainView creates the view over catalog. A nil catalog is treated as an
// empty collection.
func NewMainView(catalog *core.Catalog) *MainView {
	h := help.New()
	h.ShortSeparator = " | "

	view := &MainView{
		modes: vim.NewModeManager(),
		keys:  vim.DefaultKeyMap(),
		help:  h,
		tree:  components.NewCommandTree(catalog),
		popup: components.NewEditPopup(),
	}
	view.tree.Focus()
	return view
}

// Init initializes the view.
func (v *MainView) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (v *MainView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case components.CommitMsg:
		return v.handleCommit(msg.ID)
	}

	return v, nil
}

func (v *MainView) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	if v.quitting {
		return v, nil
	}

	action := v.keys.ActionFor(v.modes.Current(), msg)

	if v.modes.IsEditing() {
		switch action {
		case vim.ActionBack:
			v.closeEditor()
		case vim.ActionQuit:
			return v, v.quit()
		}
		return v, nil
	}

	switch action {
	case vim.ActionNone:
		return v, nil
	case vim.ActionQuit:
		return v, v.quit()
	case vim.ActionEdit:
		v.openEditor()
		return v, nil
	}

	return v, v.tree.Apply(action)
}

// openEditor switches to Editing with the highlighted node's command loaded.
// With nothing highlighted the popup opens empty.
func (v *MainView) openEditor() {
	node, selected := v.tree.Selected()
	var command string
	if sel, ok := v.tree.Catalog().ResolveCommand(node.ID); ok {
		command = sel.Command
	}
	v.popup.Open(node.ID, command, selected && !node.IsLeaf())
	v.tree.Blur()
	v.setMode(vim.ModeEditing)
}

func (v *MainView) closeEditor() {
	v.popup.Close()
	v.tree.Focus()
	v.setMode(vim.ModeNormal)
}

func (v *MainView) setMode(mode vim.Mode) {
	from := v.modes.Current()
	if v.modes.SetMode(mode) {
		events.Session.Mode(from.String(), mode.String())
	}
}

// handleCommit ends the loop with the committed leaf. An identifier that no
// longer resolves is ignored and the loop keeps running.
func (v *MainView) handleCommit(id string) (tui.Component, tea.Cmd) {
	if v.quitting {
		return v, nil
	}
	sel, ok := v.tree.Catalog().ResolveCommand(id)
	if !ok {
		events.Session.LookupMiss(id)
		return v, nil
	}
	v.result = &sel
	events.Session.Commit(sel.ID, sel.Label)
	return v, v.quit()
}

func (v *MainView) quit() tea.Cmd {
	v.quitting = true
	events.Session.Quit(v.result != nil)
	return tea.Quit
}

func (v *MainView) updatePaneSizes() {
	if v.width == 0 || v.height == 0 {
		return
	}

	// Title bar and footer take one line each.
	treeHeight := v.height - 2
	if treeHeight < 3 {
		treeHeight = 3
	}

	v.tree.SetSize(v.width, treeHeight)
	v.popup.SetSize(v.width, treeHeight)
	v.help.Width = v.width
}

// View renders the view.
func (v *MainView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}

	title := tui.RenderTitle(AppTitle, v.width, true)

	body := v.tree.View()
	if v.modes.IsEditing() {
		body = lipgloss.Place(v.tree.Width(), v.tree.Height(),
			lipgloss.Center, lipgloss.Center, v.popup.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, v.renderFooter())
}

// renderFooter shows the mode label followed by the key hints of the mode.
func (v *MainView) renderFooter() string {
	mode := v.modes.Current()

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("0"))
	if mode == vim.ModeEditing {
		modeStyle = modeStyle.Background(tui.ColorWarning)
	} else {
		modeStyle = modeStyle.Background(tui.ColorCommand)
	}

	label := modeStyle.Render(mode.Label())
	hints := v.help.View(v.keys.Help(mode))
	line := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", hints)

	return tui.Truncate(line, v.width)
}

// Title returns the view title.
func (v *MainView) Title() string {
	return AppTitle
}

// Focused always returns true; the main view is the root.
func (v *MainView) Focused() bool {
	return true
}

// Focus is a no-op.
func (v *MainView) Focus() {}

// Blur is a no-op.
func (v *MainView) Blur() {}

// SetSize sets dimensions.
func (v *MainView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.updatePaneSizes()
}

// Width returns the width.
func (v *MainView) Width() int {
	return v.width
}

// Height returns the height.
func (v *MainView) Height() int {
	return v.height
}

// Mode returns the current interaction mode.
func (v *MainView) Mode() vim.Mode {
	return v.modes.Current()
}

// Result returns the committed selection, nil when the user quit without one.
func (v *MainView) Result() *core.Selection {
	return v.result
}

// Quitting reports whether the loop has ended.
func (v *MainView) Quitting() bool {
	return v.quitting
}

// CommandTree returns the tree pane.
func (v *MainView) CommandTree() *components.CommandTree {
	return v.tree
}

// EditPopup returns the popup shown in Editing mode.
func (v *MainView) EditPopup() *components.EditPopup {
	return v.popup
}

// SetEmptyText sets the placeholder shown when the collection is empty.
func (v *MainView) SetEmptyText(text string) {
	v.tree.SetEmptyText(text)
}
