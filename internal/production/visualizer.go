package production

import (
	"bytes"
	"fmt"

	"github.com/comalice/statetree"
)

// DefaultVisualizer renders a node hierarchy with the active configuration
// highlighted.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the hierarchy rooted at root.
// Nodes active in tree are filled; tree may be nil for a plain structure dump.
func (v *DefaultVisualizer) ExportDOT(root *statetree.StateNode, tree *statetree.StateTree) string {
	active := make(map[string]bool)
	if tree != nil {
		collectActive(tree, active)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph StateTree {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	renderNode(&buf, root, active)

	buf.WriteString("}\n")
	return buf.String()
}

func collectActive(tree *statetree.StateTree, active map[string]bool) {
	active[tree.Node.ID] = true
	for _, key := range tree.Node.ChildKeys() {
		if child, ok := tree.Nodes[key]; ok {
			collectActive(child, active)
		}
	}
}

func renderNode(buf *bytes.Buffer, node *statetree.StateNode, active map[string]bool) {
	attrs := fmt.Sprintf("label=%q", node.ID)
	switch node.Kind {
	case statetree.KindFinal:
		attrs += ", peripheries=2"
	case statetree.KindParallel:
		attrs += ", shape=component"
	}
	if active[node.ID] {
		attrs += `, style="rounded,filled", fillcolor=lightblue`
	}
	fmt.Fprintf(buf, "  %q [%s];\n", node.ID, attrs)

	for _, child := range node.Children() {
		fmt.Fprintf(buf, "  %q -> %q [style=dashed];\n", node.ID, child.ID)
		renderNode(buf, child, active)
	}
}
