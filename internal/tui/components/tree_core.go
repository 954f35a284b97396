package components

import "github.com/artpar/ccol/internal/core"

// This file contains pure functions for tree operations.
// These functions take values and return values - no mutation, no side effects.

// MoveCursor computes the new cursor position within bounds. A negative cursor
// means nothing is highlighted yet; any move then lands on the first item.
func MoveCursor(cursor, delta, itemCount int) int {
	if itemCount == 0 {
		return -1
	}
	if cursor < 0 {
		return 0
	}
	newCursor := cursor + delta
	if newCursor < 0 {
		return 0
	}
	if newCursor >= itemCount {
		return itemCount - 1
	}
	return newCursor
}

// AdjustOffset ensures cursor is visible within viewport.
func AdjustOffset(cursor, offset, visibleHeight int) int {
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	if cursor < 0 {
		return offset
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visibleHeight {
		return cursor - visibleHeight + 1
	}
	return offset
}

// ClampOffset keeps offset inside the scrollable range for itemCount rows.
func ClampOffset(offset, itemCount, visibleHeight int) int {
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	maxOffset := itemCount - visibleHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	if offset < 0 {
		return 0
	}
	return offset
}

// ToggleExpand returns a new expanded set with id added or removed.
// Collapsed branches are dropped rather than stored as false, so toggling
// twice yields a set equal to the original.
func ToggleExpand(expanded map[string]bool, id string, expand bool) map[string]bool {
	result := make(map[string]bool, len(expanded)+1)
	for k, v := range expanded {
		if v {
			result[k] = true
		}
	}
	if expand {
		result[id] = true
	} else {
		delete(result, id)
	}
	return result
}

// VisibleNodes returns the nodes whose ancestors are all expanded, in display
// order. nodes must be in depth-first pre-order.
func VisibleNodes(nodes []core.Node, expanded map[string]bool) []core.Node {
	visible := make([]core.Node, 0, len(nodes))
	shown := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.Parent != "" && !(shown[n.Parent] && expanded[n.Parent]) {
			continue
		}
		shown[n.ID] = true
		visible = append(visible, n)
	}
	return visible
}

// IndexOf returns the position of id in nodes, or -1.
func IndexOf(nodes []core.Node, id string) int {
	if id == "" {
		return -1
	}
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
