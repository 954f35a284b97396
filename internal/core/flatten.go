package core

import "fmt"

// Node is one addressable entry of a flattened collection tree.
type Node struct {
	// ID is the slash-delimited path from the root, e.g. "/git/branch/delete".
	ID string
	// Label is the last path segment.
	Label string
	// Text is "label: command" for a leaf and the bare label for a group.
	Text string
	// Children lists the IDs of direct children in order. Empty for a leaf.
	Children []string
	// Parent is the ID of the enclosing group, empty at the top level.
	Parent string
	Depth  int
}

// IsLeaf reports whether the node holds a command.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Flatten converts root into a depth-first, pre-order list of nodes whose IDs
// are prefix + "/" + label for every level. Ordering follows the insertion
// order of each branch.
func Flatten(root *Branch, prefix string) ([]Node, error) {
	var nodes []Node
	if _, err := flattenInto(&nodes, root, prefix, "", 0); err != nil {
		return nil, err
	}
	return nodes, nil
}

// flattenInto appends the nodes of branch to out and returns the IDs of its
// direct children.
func flattenInto(out *[]Node, branch *Branch, prefix, parent string, depth int) ([]string, error) {
	if branch == nil {
		return nil, nil
	}
	ids := make([]string, 0, branch.Len())
	for _, label := range branch.labels {
		id := prefix + PathSeparator + label
		switch child := branch.children[label].(type) {
		case Leaf:
			*out = append(*out, Node{
				ID:     id,
				Label:  label,
				Text:   fmt.Sprintf("%s: %s", label, child.Command),
				Parent: parent,
				Depth:  depth,
			})
		case *Branch:
			pos := len(*out)
			*out = append(*out, Node{
				ID:     id,
				Label:  label,
				Text:   label,
				Parent: parent,
				Depth:  depth,
			})
			children, err := flattenInto(out, child, id, id, depth+1)
			if err != nil {
				return nil, err
			}
			(*out)[pos].Children = children
		default:
			return nil, &StructureError{Path: id, Reason: fmt.Sprintf("unsupported node type %T", child)}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
