package statetree

import (
	"errors"
	"fmt"
)

// ErrConflictingChildren is returned when two trees being combined specify
// different active children for the same compound node. A compound node
// cannot have two active children after one step.
var ErrConflictingChildren = errors.New("conflicting active children for compound node")

// Combine merges two trees describing the result of the same machine step,
// as produced by independent concurrent transitions. Regions touched by only
// one side are taken as-is; regions touched by both are merged recursively.
// The result's reentry registry is the union of both inputs'.
func (t *StateTree) Combine(other *StateTree) (*StateTree, error) {
	if other == nil {
		return t, nil
	}
	if other.Node != t.Node {
		return nil, fmt.Errorf("%w: %q vs %q", ErrRootMismatch, t.Node.ID, other.Node.ID)
	}

	value, err := combineValue(t, other)
	if err != nil {
		return nil, err
	}

	merged := New(t.Node, value)
	merged.IsResolved = t.IsResolved && other.IsResolved
	merged.reentry = t.root.reentry.union(other.root.reentry)
	return merged, nil
}

func combineValue(a, b *StateTree) (StateValue, error) {
	switch a.Node.Kind {
	case KindCompound:
		aKey, aChild := a.activeChild()
		bKey, bChild := b.activeChild()
		switch {
		case aChild == nil && bChild == nil:
			return StateValue{}, nil
		case aChild == nil:
			return b.Value(), nil
		case bChild == nil:
			return a.Value(), nil
		case aKey != bKey:
			return StateValue{}, fmt.Errorf("%w: node %q has both %q and %q",
				ErrConflictingChildren, a.Node.ID, aKey, bKey)
		default:
			sub, err := combineValue(aChild, bChild)
			if err != nil {
				return StateValue{}, err
			}
			return renderChild(aKey, aChild.Node, sub), nil
		}
	case KindParallel:
		children := make(map[string]StateValue)
		for _, key := range a.Node.ChildKeys() {
			aRegion, aOK := a.Nodes[key]
			bRegion, bOK := b.Nodes[key]
			switch {
			case aOK && bOK:
				sub, err := combineValue(aRegion, bRegion)
				if err != nil {
					return StateValue{}, err
				}
				children[key] = sub
			case aOK:
				children[key] = aRegion.Value()
			case bOK:
				children[key] = bRegion.Value()
			}
		}
		return BranchValue(children), nil
	default:
		return StateValue{}, nil
	}
}
