package statetree

// ChartBuilder provides a fluent API for constructing node hierarchies using
// string keys instead of manual StateNode wiring. Node IDs are derived from
// the chart ID and the dotted key path.
type ChartBuilder struct {
	root *StateNode
}

// NodeBuilder provides fluent methods for configuring individual nodes.
type NodeBuilder struct {
	b    *ChartBuilder
	node *StateNode
}

// NewChart creates a builder whose root is a compound node with the given ID.
func NewChart(id string) *ChartBuilder {
	return &ChartBuilder{root: NewStateNode(id, KindCompound)}
}

// Root returns the builder for the chart's root node.
func (b *ChartBuilder) Root() *NodeBuilder {
	return &NodeBuilder{b: b, node: b.root}
}

// Build validates the hierarchy and returns the root node.
// Compound nodes without an explicit initial child default to their first.
func (b *ChartBuilder) Build() (*StateNode, error) {
	fillDefaults(b.root)
	if err := b.root.Validate(); err != nil {
		return nil, err
	}
	return b.root, nil
}

func fillDefaults(node *StateNode) {
	if node.Kind == KindCompound && node.Initial == "" && len(node.ChildKeys()) > 0 {
		node.Initial = node.ChildKeys()[0]
	}
	for _, child := range node.Children() {
		fillDefaults(child)
	}
}

func (nb *NodeBuilder) child(key string, kind NodeKind) *NodeBuilder {
	child := NewStateNode(nb.node.ID+"."+key, kind)
	nb.node.AddChild(key, child)
	return &NodeBuilder{b: nb.b, node: child}
}

// Compound adds a compound child under key and returns its builder.
func (nb *NodeBuilder) Compound(key string) *NodeBuilder {
	return nb.child(key, KindCompound)
}

// Parallel adds a parallel child under key and returns its builder.
func (nb *NodeBuilder) Parallel(key string) *NodeBuilder {
	return nb.child(key, KindParallel)
}

// Atomic adds an atomic child under key and returns its builder.
func (nb *NodeBuilder) Atomic(key string) *NodeBuilder {
	return nb.child(key, KindAtomic)
}

// Final adds a final child under key and returns its builder.
func (nb *NodeBuilder) Final(key string) *NodeBuilder {
	return nb.child(key, KindFinal)
}

// Initial sets the default active child key for a compound node.
func (nb *NodeBuilder) Initial(key string) *NodeBuilder {
	nb.node.Initial = key
	return nb
}

// Events appends own event names to the node.
func (nb *NodeBuilder) Events(events ...string) *NodeBuilder {
	nb.node.Events = append(nb.node.Events, events...)
	return nb
}

// DoneData sets the completion data for a final node. Pass an Expr to defer
// evaluation to DoneData at completion time.
func (nb *NodeBuilder) DoneData(data any) *NodeBuilder {
	nb.node.DoneData = data
	return nb
}

// Node returns the underlying node being built.
func (nb *NodeBuilder) Node() *StateNode {
	return nb.node
}
