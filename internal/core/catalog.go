package core

// Selection is a resolved leaf: the command the user picked.
type Selection struct {
	ID      string
	Label   string
	Command string
}

// Catalog pairs a collection tree with its flattened nodes and an index from
// identifier to node. It is immutable once built.
type Catalog struct {
	root  *Branch
	nodes []Node
	byID  map[string]int
}

// NewCatalog flattens root and indexes the result.
func NewCatalog(root *Branch) (*Catalog, error) {
	if root == nil {
		root = NewBranch()
	}
	nodes, err := Flatten(root, "")
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := byID[n.ID]; dup {
			return nil, &StructureError{Path: n.ID, Reason: "duplicate identifier"}
		}
		byID[n.ID] = i
	}
	return &Catalog{root: root, nodes: nodes, byID: byID}, nil
}

// Root returns the source tree.
func (c *Catalog) Root() *Branch {
	return c.root
}

// Nodes returns a copy of the flattened nodes in display order.
func (c *Catalog) Nodes() []Node {
	nodes := make([]Node, len(c.nodes))
	copy(nodes, c.nodes)
	return nodes
}

// Len returns the number of nodes.
func (c *Catalog) Len() int {
	return len(c.nodes)
}

// TopLevel returns the nodes directly under the root.
func (c *Catalog) TopLevel() []Node {
	var top []Node
	for _, n := range c.nodes {
		if n.Parent == "" {
			top = append(top, n)
		}
	}
	return top
}

// Resolve looks up a node by identifier across the whole flattened tree.
// An empty identifier means nothing is selected.
func (c *Catalog) Resolve(identifier string) (Node, bool) {
	if c == nil || identifier == "" {
		return Node{}, false
	}
	i, ok := c.byID[identifier]
	if !ok {
		return Node{}, false
	}
	return c.nodes[i], true
}

// Children returns the direct children of the node with the given identifier.
func (c *Catalog) Children(identifier string) []Node {
	n, ok := c.Resolve(identifier)
	if !ok {
		return nil
	}
	children := make([]Node, 0, len(n.Children))
	for _, id := range n.Children {
		if child, ok := c.Resolve(id); ok {
			children = append(children, child)
		}
	}
	return children
}

// ResolveCommand returns the label and command of the leaf addressed by
// identifier. The command is read from the source tree, not from the
// rendered text. Groups and unknown identifiers report false.
func (c *Catalog) ResolveCommand(identifier string) (Selection, bool) {
	n, ok := c.Resolve(identifier)
	if !ok || !n.IsLeaf() {
		return Selection{}, false
	}
	t, ok := Walk(c.root, identifier)
	if !ok {
		return Selection{}, false
	}
	leaf, ok := t.(Leaf)
	if !ok {
		return Selection{}, false
	}
	return Selection{ID: identifier, Label: n.Label, Command: leaf.Command}, true
}

// Ancestry returns the identifiers from the top level down to identifier,
// most specific last.
func (c *Catalog) Ancestry(identifier string) []string {
	var chain []string
	for id := identifier; id != ""; {
		n, ok := c.Resolve(id)
		if !ok {
			return nil
		}
		chain = append([]string{n.ID}, chain...)
		id = n.Parent
	}
	return chain
}

// Identifiers returns every identifier in display order.
func (c *Catalog) Identifiers() []string {
	ids := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		ids[i] = n.ID
	}
	return ids
}
