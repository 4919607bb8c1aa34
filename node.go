package statetree

import (
	"fmt"
	"strings"
)

// NodeKind defines the possible kinds of nodes in the statechart hierarchy.
type NodeKind string

const (
	KindAtomic   NodeKind = "atomic"
	KindCompound NodeKind = "compound"
	KindParallel NodeKind = "parallel"
	KindFinal    NodeKind = "final"
)

// StateNode is one node of the statechart hierarchy: the immutable structure
// a StateTree is built over. A compound node activates exactly one child at a
// time; a parallel node activates every child (its regions) simultaneously;
// atomic and final nodes are leaves.
type StateNode struct {
	ID       string   // unique node identifier
	Key      string   // key under the parent (empty for the root)
	Kind     NodeKind
	Path     []string // key sequence from the machine root down to this node
	Events   []string // own event names this node reacts to
	DoneData any      // completion data for final nodes (raw value or Expr)
	Initial  string   // default active child key (compound only)

	children map[string]*StateNode
	order    []string // child insertion order, for deterministic traversal
}

// NewStateNode creates a node with an ID and kind. Children are attached
// with AddChild.
func NewStateNode(id string, kind NodeKind) *StateNode {
	return &StateNode{
		ID:   id,
		Kind: kind,
	}
}

// AddChild attaches child under key, wiring its key and path. Returns the
// receiver for chaining. Re-adding an existing key replaces the child.
func (n *StateNode) AddChild(key string, child *StateNode) *StateNode {
	if n.children == nil {
		n.children = make(map[string]*StateNode)
	}
	if _, exists := n.children[key]; !exists {
		n.order = append(n.order, key)
	}
	n.children[key] = child
	child.Key = key
	child.rewirePath(append(append([]string{}, n.Path...), key))
	return n
}

// rewirePath fixes the path of a subtree after it is attached to a parent.
func (n *StateNode) rewirePath(path []string) {
	n.Path = path
	for _, key := range n.order {
		n.children[key].rewirePath(append(append([]string{}, path...), key))
	}
}

// Child returns the child node for key, or nil.
func (n *StateNode) Child(key string) *StateNode {
	return n.children[key]
}

// Descendant walks a key path below n and returns the node it lands on,
// or nil if any segment is missing.
func (n *StateNode) Descendant(path ...string) *StateNode {
	current := n
	for _, key := range path {
		if current == nil {
			return nil
		}
		current = current.Child(key)
	}
	return current
}

// ChildKeys returns the child keys in insertion order.
func (n *StateNode) ChildKeys() []string {
	return n.order
}

// Children returns the child nodes in insertion order.
func (n *StateNode) Children() []*StateNode {
	nodes := make([]*StateNode, 0, len(n.order))
	for _, key := range n.order {
		nodes = append(nodes, n.children[key])
	}
	return nodes
}

// Resolve expands a possibly compact value into its canonical form for this
// node: compound nodes lacking an active child get their default, parallel
// nodes get their full region set, and the expansion recurses to the leaves.
func (n *StateNode) Resolve(value StateValue) StateValue {
	switch n.Kind {
	case KindAtomic, KindFinal:
		return StateValue{}
	case KindCompound:
		key, sub := activeEntry(value)
		if key == "" {
			key = n.Initial
		}
		child := n.Child(key)
		if child == nil {
			return StateValue{}
		}
		return renderChild(key, child, child.Resolve(sub))
	case KindParallel:
		children := make(map[string]StateValue, len(n.order))
		for _, key := range n.order {
			children[key] = n.children[key].Resolve(value.childValue(key))
		}
		return BranchValue(children)
	}
	return StateValue{}
}

// activeEntry extracts the single active child key (and its nested value)
// a compact compound value designates, if any.
func activeEntry(value StateValue) (string, StateValue) {
	if value.IsLeaf() {
		return value.Leaf, StateValue{}
	}
	for _, key := range value.sortedKeys() {
		return key, value.Children[key]
	}
	return "", StateValue{}
}

// renderChild wraps a child's value for its parent: flattened to a bare leaf
// label when the child is atomic/final, nested otherwise.
func renderChild(key string, child *StateNode, sub StateValue) StateValue {
	if child.Kind == KindAtomic || child.Kind == KindFinal {
		return LeafValue(key)
	}
	return BranchValue(map[string]StateValue{key: sub})
}

// Validate performs recursive validation of the node hierarchy, enforcing
// each kind's child-cardinality rule.
func (n *StateNode) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("node ID is required")
	}

	switch n.Kind {
	case KindAtomic, KindFinal:
		if n.Initial != "" {
			return fmt.Errorf("%s node %s cannot have an initial child", n.Kind, n.ID)
		}
		if len(n.order) > 0 {
			return fmt.Errorf("%s node %s cannot have children", n.Kind, n.ID)
		}
	case KindCompound:
		if len(n.order) == 0 {
			return fmt.Errorf("compound node %s requires children", n.ID)
		}
		if n.Initial == "" {
			return fmt.Errorf("compound node %s requires an initial child", n.ID)
		}
		if n.Child(n.Initial) == nil {
			return fmt.Errorf("initial child %q not found in children of %s", n.Initial, n.ID)
		}
	case KindParallel:
		if len(n.order) == 0 {
			return fmt.Errorf("parallel node %s requires regions", n.ID)
		}
		for _, key := range n.order {
			kind := n.children[key].Kind
			if kind == KindAtomic || kind == KindFinal {
				return fmt.Errorf("region %q of parallel node %s must be compound or parallel, got %s", key, n.ID, kind)
			}
		}
	default:
		return fmt.Errorf("invalid node kind %q for node %s", n.Kind, n.ID)
	}

	for _, event := range n.Events {
		if strings.TrimSpace(event) == "" {
			return fmt.Errorf("empty event name on node %s", n.ID)
		}
	}

	for _, key := range n.order {
		if err := n.children[key].Validate(); err != nil {
			return fmt.Errorf("child %q of %s failed validation: %w", key, n.ID, err)
		}
	}

	return nil
}
