package statetree

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// StateValue is the canonical description of an active configuration:
// either a bare leaf label naming an active atomic/final child, or a
// mapping from child key to the nested value of that child's subtree.
//
// A compound node's value collapses to a bare leaf label when its active
// child is itself atomic/final; otherwise it nests. The zero value is the
// empty mapping, which is what atomic and final nodes project to (depth is
// dropped at the leaves).
type StateValue struct {
	Leaf     string
	Children map[string]StateValue
}

// LeafValue returns a leaf-label value.
func LeafValue(label string) StateValue {
	return StateValue{Leaf: label}
}

// BranchValue returns a mapping value from child key to nested value.
func BranchValue(children map[string]StateValue) StateValue {
	return StateValue{Children: children}
}

// IsLeaf reports whether v is a bare leaf label.
func (v StateValue) IsLeaf() bool {
	return v.Leaf != ""
}

// IsEmpty reports whether v is the empty mapping (no leaf, no children).
func (v StateValue) IsEmpty() bool {
	return v.Leaf == "" && len(v.Children) == 0
}

// Equal reports structural equality of two values.
func (v StateValue) Equal(other StateValue) bool {
	if v.Leaf != other.Leaf {
		return false
	}
	if len(v.Children) != len(other.Children) {
		return false
	}
	for key, sub := range v.Children {
		osub, ok := other.Children[key]
		if !ok || !sub.Equal(osub) {
			return false
		}
	}
	return true
}

// childValue returns the nested value for key, or the zero value if absent.
func (v StateValue) childValue(key string) StateValue {
	if v.Children == nil {
		return StateValue{}
	}
	return v.Children[key]
}

// sortedKeys returns the mapping keys in lexical order.
func (v StateValue) sortedKeys() []string {
	keys := make([]string, 0, len(v.Children))
	for key := range v.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Paths returns every root-to-leaf label path through the value.
// Branch keys are visited in lexical order for determinism.
func (v StateValue) Paths() [][]string {
	if v.IsLeaf() {
		return [][]string{{v.Leaf}}
	}
	var paths [][]string
	for _, key := range v.sortedKeys() {
		sub := v.Children[key]
		if sub.IsEmpty() {
			paths = append(paths, []string{key})
			continue
		}
		for _, tail := range sub.Paths() {
			path := make([]string, 0, len(tail)+1)
			path = append(path, key)
			path = append(path, tail...)
			paths = append(paths, path)
		}
	}
	return paths
}

// String renders the value in a compact literal form, keys in lexical order.
func (v StateValue) String() string {
	if v.IsLeaf() {
		return v.Leaf
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range v.sortedKeys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(v.Children[key].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// MarshalYAML renders a leaf as a scalar and a branch as a mapping.
func (v StateValue) MarshalYAML() (any, error) {
	if v.IsLeaf() {
		return v.Leaf, nil
	}
	out := make(map[string]StateValue, len(v.Children))
	for key, sub := range v.Children {
		out[key] = sub
	}
	return out, nil
}

// UnmarshalYAML accepts a scalar (leaf) or a mapping (branch).
func (v *StateValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var leaf string
		if err := node.Decode(&leaf); err != nil {
			return err
		}
		*v = LeafValue(leaf)
		return nil
	case yaml.MappingNode:
		children := make(map[string]StateValue)
		if err := node.Decode(&children); err != nil {
			return err
		}
		*v = BranchValue(children)
		return nil
	default:
		return fmt.Errorf("state value must be a scalar or mapping, got yaml kind %d", node.Kind)
	}
}

// MarshalJSON renders a leaf as a string and a branch as an object.
func (v StateValue) MarshalJSON() ([]byte, error) {
	if v.IsLeaf() {
		return json.Marshal(v.Leaf)
	}
	out := make(map[string]StateValue, len(v.Children))
	for key, sub := range v.Children {
		out[key] = sub
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts a string (leaf) or an object (branch).
func (v *StateValue) UnmarshalJSON(data []byte) error {
	var leaf string
	if err := json.Unmarshal(data, &leaf); err == nil {
		*v = LeafValue(leaf)
		return nil
	}
	children := make(map[string]StateValue)
	if err := json.Unmarshal(data, &children); err != nil {
		return fmt.Errorf("state value must be a string or object: %w", err)
	}
	*v = BranchValue(children)
	return nil
}
