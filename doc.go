// Package statetree is the configuration-tree engine for a hierarchical
// statechart interpreter.
//
// A StateTree pairs each active StateNode with the subtrees of its active
// children and answers the questions an interpreter asks about a
// configuration change:
//   - which nodes must exit and enter, in lifecycle order
//     (EntryExitStates: exit deepest-first, entry shallowest-first)
//   - how two partial next-configurations from concurrent transitions
//     merge into one (Combine)
//   - whether the configuration is complete and which completion events
//     fire (Done, DoneEvents), edge-triggered on newly entered nodes
//
// Trees are values: every transformation (Resolved, Combine) returns a new
// tree. The one piece of shared mutable state is the reentry registry,
// owned by a tree's root and carried forward across resolve and combine so
// that forced exit+reenter intent survives tree transformations.
//
// Core invariants:
//   - exit lists run innermost-to-outermost, entry lists outermost-to-innermost
//   - diff and combine require identical root nodes
//   - completion events fire only on entry, never while parked in a done
//     configuration
package statetree
