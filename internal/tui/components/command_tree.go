package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/artpar/ccol/internal/core"
	"github.com/artpar/ccol/internal/logging/events"
	"github.com/artpar/ccol/internal/tui"
	"github.com/artpar/ccol/internal/tui/vim"
)

// CommitMsg is sent when a leaf is chosen with enter.
type CommitMsg struct {
	ID string
}

// CommandTree displays the command collection as a collapsible tree and owns
// the navigation state: the highlighted node and the set of expanded groups.
type CommandTree struct {
	title   string
	focused bool
	width   int
	height  int
	offset  int

	catalog  *core.Catalog
	nodes    []core.Node
	visible  []core.Node
	selected string
	expanded map[string]bool

	keys      *vim.KeyMap
	styles    tui.Styles
	emptyText string
}

// NewCommandTree creates a tree over catalog with every group collapsed and
// nothing highlighted.
func NewCommandTree(catalog *core.Catalog) *CommandTree {
	if catalog == nil {
		catalog, _ = core.NewCatalog(nil)
	}
	c := &CommandTree{
		title:     "Commands",
		catalog:   catalog,
		nodes:     catalog.Nodes(),
		expanded:  make(map[string]bool),
		keys:      vim.DefaultKeyMap(),
		styles:    tui.DefaultStyles(),
		emptyText: "No commands configured",
	}
	c.rebuildItems()
	return c
}

// Init initializes the component.
func (c *CommandTree) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (c *CommandTree) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		return c.handleKeyMsg(msg)
	}
	return c, nil
}

func (c *CommandTree) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	return c, c.Apply(c.keys.ActionFor(vim.ModeNormal, msg))
}

// Apply performs a navigation action. Actions the tree does not own are
// ignored.
func (c *CommandTree) Apply(action vim.Action) tea.Cmd {
	switch action {
	case vim.ActionUp:
		c.moveCursor(-1)
	case vim.ActionDown:
		c.moveCursor(1)
	case vim.ActionExpand:
		c.setExpanded(true)
	case vim.ActionCollapse:
		c.setExpanded(false)
	case vim.ActionActivate:
		return c.handleEnter()
	}
	return nil
}

func (c *CommandTree) moveCursor(delta int) {
	cursor := MoveCursor(c.Cursor(), delta, len(c.visible))
	if cursor < 0 {
		return
	}
	c.selected = c.visible[cursor].ID
	c.offset = AdjustOffset(cursor, c.offset, c.contentHeight())
	events.Session.Cursor(c.selected, cursor)
}

// setExpanded expands or collapses the highlighted group. Leaves and an
// empty selection are left alone.
func (c *CommandTree) setExpanded(expand bool) {
	node, ok := c.Selected()
	if !ok || node.IsLeaf() {
		return
	}
	if c.expanded[node.ID] == expand {
		return
	}
	c.expanded = ToggleExpand(c.expanded, node.ID, expand)
	c.rebuildItems()
	events.Session.Toggle(node.ID, expand)
}

func (c *CommandTree) handleEnter() tea.Cmd {
	node, ok := c.Selected()
	if !ok {
		return nil
	}
	if !node.IsLeaf() {
		c.setExpanded(!c.expanded[node.ID])
		return nil
	}
	id := node.ID
	return func() tea.Msg {
		return CommitMsg{ID: id}
	}
}

func (c *CommandTree) rebuildItems() {
	c.visible = VisibleNodes(c.nodes, c.expanded)
	c.offset = ClampOffset(AdjustOffset(c.Cursor(), c.offset, c.contentHeight()), len(c.visible), c.contentHeight())
}

func (c *CommandTree) contentHeight() int {
	h := c.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the component.
func (c *CommandTree) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}

	innerWidth := c.width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}

	var lines []string
	if len(c.visible) == 0 {
		lines = append(lines, c.styles.Muted.Render(tui.Truncate(c.emptyText, innerWidth)))
	}

	cursor := c.Cursor()
	end := c.offset + c.contentHeight()
	if end > len(c.visible) {
		end = len(c.visible)
	}
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderItem(c.visible[i], i == cursor, innerWidth))
	}

	return tui.RenderBorder(strings.Join(lines, "\n"), c.width, c.height, c.focused)
}

func (c *CommandTree) renderItem(node core.Node, selected bool, width int) string {
	selPrefix := " "
	if selected {
		selPrefix = "→"
	}

	indent := strings.Repeat("  ", node.Depth)

	indicator := "  "
	if !node.IsLeaf() {
		if c.expanded[node.ID] {
			indicator = "▼ "
		} else {
			indicator = "▶ "
		}
	}

	prefix := selPrefix + indent + indicator

	if selected {
		line := tui.PadRight(prefix+node.Text, width)
		if c.focused {
			return c.styles.Selected.Render(line)
		}
		return c.styles.Muted.Render(line)
	}

	text := node.Text
	if node.IsLeaf() {
		command := strings.TrimPrefix(node.Text, node.Label+": ")
		text = node.Label + ": " + c.styles.Command.Render(command)
	}
	return tui.PadRight(prefix+text, width)
}

// Title returns the component title.
func (c *CommandTree) Title() string {
	return c.title
}

// Focused returns true if focused.
func (c *CommandTree) Focused() bool {
	return c.focused
}

// Focus sets the component as focused.
func (c *CommandTree) Focus() {
	c.focused = true
}

// Blur removes focus.
func (c *CommandTree) Blur() {
	c.focused = false
}

// SetSize sets dimensions.
func (c *CommandTree) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.offset = ClampOffset(AdjustOffset(c.Cursor(), c.offset, c.contentHeight()), len(c.visible), c.contentHeight())
}

// Width returns the width.
func (c *CommandTree) Width() int {
	return c.width
}

// Height returns the height.
func (c *CommandTree) Height() int {
	return c.height
}

// SetEmptyText sets the placeholder shown when there is nothing to list.
func (c *CommandTree) SetEmptyText(text string) {
	c.emptyText = text
}

// Catalog returns the catalog being browsed.
func (c *CommandTree) Catalog() *core.Catalog {
	return c.catalog
}

// ItemCount returns the number of nodes in the collection.
func (c *CommandTree) ItemCount() int {
	return len(c.nodes)
}

// VisibleItemCount returns the number of rows currently shown.
func (c *CommandTree) VisibleItemCount() int {
	return len(c.visible)
}

// VisibleIDs returns the identifiers of the rows currently shown.
func (c *CommandTree) VisibleIDs() []string {
	ids := make([]string, len(c.visible))
	for i, n := range c.visible {
		ids[i] = n.ID
	}
	return ids
}

// Cursor returns the row index of the highlighted node, or -1.
func (c *CommandTree) Cursor() int {
	return IndexOf(c.visible, c.selected)
}

// Offset returns the first rendered row.
func (c *CommandTree) Offset() int {
	return c.offset
}

// SelectedID returns the identifier of the highlighted node, empty when
// nothing is highlighted.
func (c *CommandTree) SelectedID() string {
	return c.selected
}

// Selected returns the highlighted node.
func (c *CommandTree) Selected() (core.Node, bool) {
	return c.catalog.Resolve(c.selected)
}

// SelectedPath returns the ancestry of the highlighted node, most specific
// last.
func (c *CommandTree) SelectedPath() []string {
	if c.selected == "" {
		return nil
	}
	return c.catalog.Ancestry(c.selected)
}

// IsExpanded reports whether the group with the given identifier is open.
func (c *CommandTree) IsExpanded(id string) bool {
	return c.expanded[id]
}

// Expanded returns a copy of the expanded set.
func (c *CommandTree) Expanded() map[string]bool {
	out := make(map[string]bool, len(c.expanded))
	for k, v := range c.expanded {
		out[k] = v
	}
	return out
}
