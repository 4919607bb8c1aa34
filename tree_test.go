package statetree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/statetree"
	"github.com/comalice/statetree/testutil"
)

func runningValue(a, b string) statetree.StateValue {
	return branch(map[string]statetree.StateValue{
		"running": branch(map[string]statetree.StateValue{"a": leaf(a), "b": leaf(b)}),
	})
}

func nodeIDs(nodes []*statetree.StateNode) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func TestTreeConstructionAndProjection(t *testing.T) {
	node := testutil.WorkflowChart(t)

	tests := []struct {
		name  string
		value statetree.StateValue
		want  statetree.StateValue
	}{
		{
			name:  "unexpanded placeholder",
			value: statetree.StateValue{},
			want:  statetree.StateValue{},
		},
		{
			name:  "bare leaf label",
			value: leaf("idle"),
			want:  leaf("idle"),
		},
		{
			name:  "nested parallel",
			value: runningValue("a1", "b1"),
			want:  runningValue("a1", "b1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := statetree.New(node, tt.value)
			got := tree.Value()
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTreeValueFlattening(t *testing.T) {
	node := testutil.WorkflowChart(t)

	// Compound with an atomic active child collapses to a bare leaf label.
	tree := statetree.New(node, leaf("idle"))
	got := tree.Value()
	assert.True(t, got.IsLeaf())
	assert.Equal(t, "idle", got.Leaf)

	// A parallel active child keeps the nesting.
	tree = statetree.New(node, runningValue("a1", "b1"))
	assert.False(t, tree.Value().IsLeaf())
}

func TestTreeResolveRoundTrip(t *testing.T) {
	node := testutil.WorkflowChart(t)

	// For any resolved tree, rebuilding from its projected value yields a
	// tree with an equal projected value.
	values := []statetree.StateValue{
		{},
		leaf("idle"),
		leaf("running"),
		runningValue("a2", "final_b"),
	}
	for _, value := range values {
		resolved := statetree.New(node, value).Resolved()
		rebuilt := statetree.New(node, resolved.Value())
		assert.True(t, resolved.Value().Equal(rebuilt.Value()),
			"round trip of %s: got %s", resolved.Value(), rebuilt.Value())
		assert.True(t, resolved.IsResolved)
	}
}

func TestTreeAtomicNodes(t *testing.T) {
	node := testutil.WorkflowChart(t)

	tree := statetree.New(node, runningValue("a1", "b1"))
	want := []string{"workflow.running.a.a1", "workflow.running.b.b1"}
	if diff := cmp.Diff(want, nodeIDs(tree.AtomicNodes())); diff != "" {
		t.Errorf("AtomicNodes() mismatch (-want +got):\n%s", diff)
	}

	tree = statetree.New(node, statetree.StateValue{}).Resolved()
	assert.Equal(t, []string{"workflow.idle"}, nodeIDs(tree.AtomicNodes()))
}

func TestTreePaths(t *testing.T) {
	node := testutil.WorkflowChart(t)

	tree := statetree.New(node, runningValue("a1", "b1"))
	want := [][]string{
		{"running", "a", "a1"},
		{"running", "b", "b1"},
	}
	if diff := cmp.Diff(want, tree.Paths()); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeNextEvents(t *testing.T) {
	node := testutil.WorkflowChart(t)

	tree := statetree.New(node, statetree.StateValue{}).Resolved()
	assert.Equal(t, []string{"START"}, tree.NextEvents())

	tree = statetree.New(node, runningValue("a1", "b1"))
	assert.Equal(t, []string{"ADVANCE", "FINISH_B"}, tree.NextEvents())
}

func TestTreeNextEventsDeduplicates(t *testing.T) {
	b := statetree.NewChart("dup")
	root := b.Root().Initial("work").Events("CANCEL")
	work := root.Compound("work").Initial("w1").Events("CANCEL", "PAUSE")
	work.Atomic("w1").Events("PAUSE", "STEP")
	node, err := b.Build()
	require.NoError(t, err)

	tree := statetree.New(node, statetree.StateValue{}).Resolved()
	assert.Equal(t, []string{"CANCEL", "PAUSE", "STEP"}, tree.NextEvents())
}

func TestTreeResolvedCarriesReentryRegistry(t *testing.T) {
	node := testutil.WorkflowChart(t)
	idle := node.Child("idle")

	tree := statetree.New(node, leaf("idle"))
	tree.AddReentryNode(idle)

	resolved := tree.Resolved()
	assert.Equal(t, []string{"workflow.idle"}, nodeIDs(resolved.ReentryNodes()))

	// Same registry, not a copy: later additions are visible on both.
	tree.AddReentryNode(node.Child("running"))
	assert.Len(t, resolved.ReentryNodes(), 2)
}

func TestTreeAddReentryNodeFromAnyDepth(t *testing.T) {
	node := testutil.WorkflowChart(t)

	tree := statetree.New(node, runningValue("a1", "b1"))
	region := tree.Nodes["running"].Nodes["a"]
	region.AddReentryNode(region.Node)

	assert.Equal(t, []string{"workflow.running.a"}, nodeIDs(tree.ReentryNodes()))
}
