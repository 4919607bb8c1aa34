package statetree

// StateTree is the runtime description of what is active: one StateNode paired
// with the subtrees of its currently active children. Trees are immutable once
// built; Resolved and Combine return new trees. The reentry registry is the
// exception: it lives on the root, is shared by every node of the tree, and is
// carried forward across transformations.
type StateTree struct {
	Node  *StateNode
	Nodes map[string]*StateTree

	// Parent is informational metadata; ownership always flows downward and
	// the diff/merge paths never walk it.
	Parent *StateTree

	// IsResolved marks a tree produced by Resolved. Diff requires resolved
	// inputs; its behavior on compact trees is undefined. Combine accepts
	// compact partial trees and is resolved afterwards.
	IsResolved bool

	root    *StateTree
	reentry *reentrySet // populated on the root only
	order   []string    // active child keys in node declaration order
}

// New builds a tree for node from a configuration value. The zero StateValue
// builds an unexpanded placeholder with no children; a bare leaf label builds
// one child tree for that key with no value; a mapping builds one child tree
// per key with its nested value.
func New(node *StateNode, value StateValue) *StateTree {
	t := &StateTree{
		Node:    node,
		reentry: newReentrySet(),
	}
	t.root = t
	t.populate(value)
	return t
}

func (t *StateTree) populate(value StateValue) {
	t.Nodes = make(map[string]*StateTree)

	if value.IsLeaf() {
		t.addChild(value.Leaf, StateValue{})
		return
	}
	// Iterate in node declaration order so region traversal is deterministic.
	for _, key := range t.Node.ChildKeys() {
		if sub, ok := value.Children[key]; ok {
			t.addChild(key, sub)
		}
	}
}

func (t *StateTree) addChild(key string, value StateValue) {
	node := t.Node.Child(key)
	if node == nil {
		return
	}
	child := &StateTree{
		Node:   node,
		Parent: t,
		root:   t.root,
	}
	child.populate(value)
	t.Nodes[key] = child
	t.order = append(t.order, key)
}

// activeChild returns the single active child of a compound tree (or the
// first child otherwise), if any.
func (t *StateTree) activeChild() (string, *StateTree) {
	if len(t.order) == 0 {
		return "", nil
	}
	key := t.order[0]
	return key, t.Nodes[key]
}

// Value projects the canonical configuration value. It is computed, never
// stored: atomic/final drop their depth, parallel maps every region, compound
// flattens to a bare leaf label when its active child is atomic/final.
func (t *StateTree) Value() StateValue {
	switch t.Node.Kind {
	case KindParallel:
		children := make(map[string]StateValue, len(t.order))
		for _, key := range t.order {
			children[key] = t.Nodes[key].Value()
		}
		return BranchValue(children)
	case KindCompound:
		key, child := t.activeChild()
		if child == nil {
			return StateValue{}
		}
		if child.Node.Kind == KindAtomic || child.Node.Kind == KindFinal {
			return LeafValue(key)
		}
		return BranchValue(map[string]StateValue{key: child.Value()})
	default:
		return StateValue{}
	}
}

// AtomicNodes returns the full leaf configuration: every atomic/final node
// reachable in the tree, depth-first in region order.
func (t *StateTree) AtomicNodes() []*StateNode {
	if t.Node.Kind == KindAtomic || t.Node.Kind == KindFinal {
		return []*StateNode{t.Node}
	}
	var nodes []*StateNode
	for _, key := range t.order {
		nodes = append(nodes, t.Nodes[key].AtomicNodes()...)
	}
	return nodes
}

// Paths returns every root-to-leaf label path through the projected value.
func (t *StateTree) Paths() [][]string {
	return t.Value().Paths()
}

// NextEvents returns the deduplicated union of this node's own event names
// and every active descendant's, in first-seen order. It reports which events
// the current configuration can react to.
func (t *StateTree) NextEvents() []string {
	seen := make(map[string]struct{})
	var events []string
	t.collectEvents(&events, seen)
	return events
}

func (t *StateTree) collectEvents(events *[]string, seen map[string]struct{}) {
	for _, event := range t.Node.Events {
		if _, ok := seen[event]; ok {
			continue
		}
		seen[event] = struct{}{}
		*events = append(*events, event)
	}
	for _, key := range t.order {
		t.Nodes[key].collectEvents(events, seen)
	}
}

// Resolved expands the tree's current value into its canonical form via the
// node's resolution rule and rebuilds a fully specified tree from it. The
// source tree's reentry registry is carried onto the result unchanged.
// Callers must resolve a tree before diffing it against another.
func (t *StateTree) Resolved() *StateTree {
	resolved := New(t.Node, t.Node.Resolve(t.Value()))
	resolved.IsResolved = true
	resolved.reentry = t.root.reentry
	return resolved
}

// AddReentryNode registers node for forced exit+reentry on the next diff,
// regardless of structural change. Used for self-transitions and history
// mechanisms. The registration lands on the tree's root and is visible from
// every node of the tree.
func (t *StateTree) AddReentryNode(node *StateNode) {
	t.root.reentry.add(node)
}

// ReentryNodes returns the registered reentry nodes in insertion order.
func (t *StateTree) ReentryNodes() []*StateNode {
	return t.root.reentry.list()
}

func (t *StateTree) inReentry(node *StateNode) bool {
	return t.root.reentry.has(node)
}

// reentrySet is the root-scoped registry of nodes forced to exit+reenter.
// Insertion order is preserved for the bootstrap entry list.
type reentrySet struct {
	ids   map[string]struct{}
	nodes []*StateNode
}

func newReentrySet() *reentrySet {
	return &reentrySet{ids: make(map[string]struct{})}
}

func (s *reentrySet) add(node *StateNode) {
	if node == nil {
		return
	}
	if _, ok := s.ids[node.ID]; ok {
		return
	}
	s.ids[node.ID] = struct{}{}
	s.nodes = append(s.nodes, node)
}

func (s *reentrySet) has(node *StateNode) bool {
	_, ok := s.ids[node.ID]
	return ok
}

func (s *reentrySet) list() []*StateNode {
	return append([]*StateNode(nil), s.nodes...)
}

// union returns a new set holding both inputs' nodes, s's first.
func (s *reentrySet) union(other *reentrySet) *reentrySet {
	merged := newReentrySet()
	for _, node := range s.nodes {
		merged.add(node)
	}
	for _, node := range other.nodes {
		merged.add(node)
	}
	return merged
}
