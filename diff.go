package statetree

import (
	"errors"
	"fmt"
)

// ErrRootMismatch is returned when two trees being diffed or combined do not
// reference the same node at their roots.
var ErrRootMismatch = errors.New("trees reference different root nodes")

// EntryExitStates computes the ordered node lists for moving from the prev
// configuration to this one: exit deepest-first, entry shallowest-first.
// Executing side effects in list order preserves nested lifecycle semantics;
// reordering breaks correctness (a child's exit action must run before its
// parent's).
//
// A nil prev is the initial activation: entry is the full contents of the
// reentry registry and exit is empty.
func (t *StateTree) EntryExitStates(prev *StateTree) (exit, entry []*StateNode, err error) {
	if prev == nil {
		return nil, t.ReentryNodes(), nil
	}
	if prev.Node != t.Node {
		return nil, nil, fmt.Errorf("%w: %q vs %q", ErrRootMismatch, t.Node.ID, prev.Node.ID)
	}
	exit, entry = t.entryExitStates(prev)
	return exit, entry, nil
}

func (t *StateTree) entryExitStates(prev *StateTree) (exit, entry []*StateNode) {
	switch t.Node.Kind {
	case KindAtomic, KindFinal:
		// Leaves never structurally change on their own.
		if t.inReentry(t.Node) {
			return []*StateNode{t.Node}, []*StateNode{t.Node}
		}
		return nil, nil
	case KindCompound:
		exit, entry = t.compoundDiff(prev)
	case KindParallel:
		// Regions diff independently; results concatenate region-by-region,
		// preserving each region's internal order.
		for _, key := range t.order {
			region := t.Nodes[key]
			prevRegion := prev.Nodes[key]
			if prevRegion == nil {
				entry = append(entry, region.EntryStates()...)
				continue
			}
			regionExit, regionEntry := region.entryExitStates(prevRegion)
			exit = append(exit, regionExit...)
			entry = append(entry, regionEntry...)
		}
	}

	// Reentry of this node wraps the children: exit after them, entry before.
	if t.inReentry(t.Node) {
		exit = append(exit, t.Node)
		entry = append([]*StateNode{t.Node}, entry...)
	}
	return exit, entry
}

func (t *StateTree) compoundDiff(prev *StateTree) (exit, entry []*StateNode) {
	key, child := t.activeChild()
	prevKey, prevChild := prev.activeChild()

	switch {
	case child == nil && prevChild == nil:
		return nil, nil
	case child != nil && prevChild != nil && key == prevKey:
		return child.entryExitStates(prevChild)
	default:
		// Branch switch: tear down the previous child wholesale, rebuild the
		// current one wholesale.
		if prevChild != nil {
			exit = prevChild.ExitStates()
		}
		if child != nil {
			entry = child.EntryStates()
		}
		return exit, entry
	}
}

// EntryStates returns the full pre-order traversal of the tree: every active
// node, each parent before its children. Used when a branch switch rebuilds a
// subtree wholesale.
func (t *StateTree) EntryStates() []*StateNode {
	nodes := []*StateNode{t.Node}
	for _, key := range t.order {
		nodes = append(nodes, t.Nodes[key].EntryStates()...)
	}
	return nodes
}

// ExitStates returns the full post-order traversal of the tree: every active
// node, each child before its parent. Used when a branch switch tears down a
// subtree wholesale.
func (t *StateTree) ExitStates() []*StateNode {
	var nodes []*StateNode
	for _, key := range t.order {
		nodes = append(nodes, t.Nodes[key].ExitStates()...)
	}
	return append(nodes, t.Node)
}
