// Package testutil provides shared chart fixtures for the engine's test
// suites.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comalice/statetree"
)

// TrafficChart builds a flat compound chart: traffic{red, green, yellow}.
func TrafficChart(tb testing.TB) *statetree.StateNode {
	tb.Helper()

	b := statetree.NewChart("traffic")
	root := b.Root().Initial("red")
	root.Atomic("red").Events("TIMER")
	root.Atomic("green").Events("TIMER")
	root.Atomic("yellow").Events("TIMER")

	node, err := b.Build()
	require.NoError(tb, err)
	return node
}

// WorkflowChart builds the nested-parallel workflow chart:
//
//	workflow (compound, initial idle)
//	├── idle (atomic)
//	└── running (parallel)
//	    ├── a (compound, initial a1): a1, a2, final_a
//	    └── b (compound, initial b1): b1, final_b
func WorkflowChart(tb testing.TB) *statetree.StateNode {
	tb.Helper()

	b := statetree.NewChart("workflow")
	root := b.Root().Initial("idle")
	root.Atomic("idle").Events("START")

	running := root.Parallel("running")

	regionA := running.Compound("a").Initial("a1")
	regionA.Atomic("a1").Events("ADVANCE")
	regionA.Atomic("a2").Events("FINISH_A")
	regionA.Final("final_a").DoneData(map[string]any{"track": "a"})

	regionB := running.Compound("b").Initial("b1")
	regionB.Atomic("b1").Events("FINISH_B")
	regionB.Final("final_b")

	node, err := b.Build()
	require.NoError(tb, err)
	return node
}

// EditorChart builds a word-processor style chart with independent toggle
// regions, used for merge tests: editor{toggles(parallel){bold{on,off},
// italic{on,off}, list{none,bullets,numbers}}}.
func EditorChart(tb testing.TB) *statetree.StateNode {
	tb.Helper()

	b := statetree.NewChart("editor")
	root := b.Root().Initial("toggles")
	toggles := root.Parallel("toggles")

	bold := toggles.Compound("bold").Initial("off")
	bold.Atomic("off").Events("TOGGLE_BOLD")
	bold.Atomic("on").Events("TOGGLE_BOLD")

	italic := toggles.Compound("italic").Initial("off")
	italic.Atomic("off").Events("TOGGLE_ITALIC")
	italic.Atomic("on").Events("TOGGLE_ITALIC")

	list := toggles.Compound("list").Initial("none")
	list.Atomic("none").Events("BULLETS", "NUMBERS")
	list.Atomic("bullets").Events("NONE")
	list.Atomic("numbers").Events("NONE")

	node, err := b.Build()
	require.NoError(tb, err)
	return node
}
