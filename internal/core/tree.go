package core

import (
	"fmt"
	"sort"
	"strings"
)

// PathSeparator separates labels inside a node identifier.
const PathSeparator = "/"

// Tree is a node of a command collection: either a Leaf or a *Branch.
type Tree interface {
	isTree()
}

// Leaf holds one literal command. The command is never interpreted.
type Leaf struct {
	Command string
}

func (Leaf) isTree() {}

// Branch is a named group of further trees. Children keep the order in
// which they were added.
type Branch struct {
	labels   []string
	children map[string]Tree
}

func (*Branch) isTree() {}

// NewBranch creates an empty branch.
func NewBranch() *Branch {
	return &Branch{
		children: make(map[string]Tree),
	}
}

// Set adds or replaces the child stored under label. A replaced child keeps
// its original position.
func (b *Branch) Set(label string, child Tree) {
	if _, exists := b.children[label]; !exists {
		b.labels = append(b.labels, label)
	}
	b.children[label] = child
}

// Get returns the child stored under label.
func (b *Branch) Get(label string) (Tree, bool) {
	if b == nil {
		return nil, false
	}
	child, ok := b.children[label]
	return child, ok
}

// Labels returns the child labels in insertion order.
func (b *Branch) Labels() []string {
	if b == nil {
		return nil
	}
	labels := make([]string, len(b.labels))
	copy(labels, b.labels)
	return labels
}

// Len returns the number of children.
func (b *Branch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.labels)
}

// OrderedMap is a string-keyed mapping that remembers key order.
type OrderedMap interface {
	Keys() []string
	Get(key string) (any, bool)
}

// FromValue builds a collection tree from a generic parsed value. The root
// must be a mapping; every nested value must be a string or a mapping.
func FromValue(v any) (*Branch, error) {
	switch root := v.(type) {
	case OrderedMap, map[string]any:
		return branchFromValue(root, "")
	case nil:
		return nil, &StructureError{Path: PathSeparator, Reason: "configuration is empty, expected a mapping"}
	default:
		return nil, &StructureError{Path: PathSeparator, Reason: fmt.Sprintf("root must be a mapping, got %s", describe(v))}
	}
}

func branchFromValue(v any, path string) (*Branch, error) {
	keys, get := mappingAccessors(v)
	branch := NewBranch()
	for _, key := range keys {
		childPath := path + PathSeparator + key
		if err := validateLabel(key, path); err != nil {
			return nil, err
		}
		value, _ := get(key)
		switch child := value.(type) {
		case string:
			branch.Set(key, Leaf{Command: child})
		case OrderedMap, map[string]any:
			sub, err := branchFromValue(child, childPath)
			if err != nil {
				return nil, err
			}
			if sub.Len() == 0 {
				return nil, &StructureError{Path: childPath, Reason: "group has no commands"}
			}
			branch.Set(key, sub)
		default:
			return nil, &StructureError{
				Path:   childPath,
				Reason: fmt.Sprintf("expected a command string or a mapping, got %s", describe(value)),
			}
		}
	}
	return branch, nil
}

// mappingAccessors normalizes both mapping flavours. Plain maps have no
// order, so their keys are sorted to keep flattening reproducible.
func mappingAccessors(v any) ([]string, func(string) (any, bool)) {
	switch m := v.(type) {
	case OrderedMap:
		return m.Keys(), m.Get
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, func(k string) (any, bool) {
			val, ok := m[k]
			return val, ok
		}
	}
	return nil, func(string) (any, bool) { return nil, false }
}

func validateLabel(label, parentPath string) error {
	if label == "" {
		return &StructureError{Path: parentPath + PathSeparator, Reason: "labels must not be empty"}
	}
	if strings.Contains(label, PathSeparator) {
		return &StructureError{
			Path:   parentPath + PathSeparator + label,
			Reason: fmt.Sprintf("label %q must not contain %q", label, PathSeparator),
		}
	}
	return nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case []any:
		return "a list"
	case string:
		return "a string"
	case float64, float32, int, int64, int32, uint, uint64, fmt.Stringer:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Walk follows identifier component by component from root. It reports
// false when a component is missing or a non-final component is a leaf.
func Walk(root *Branch, identifier string) (Tree, bool) {
	if root == nil || !strings.HasPrefix(identifier, PathSeparator) {
		return nil, false
	}
	components := strings.Split(strings.TrimPrefix(identifier, PathSeparator), PathSeparator)

	var current Tree = root
	for _, component := range components {
		branch, ok := current.(*Branch)
		if !ok {
			return nil, false
		}
		next, ok := branch.Get(component)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}
