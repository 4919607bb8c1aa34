package statetree

// Done reports completion, bottom-up: a final node is done; a compound node
// is done iff its active child is final; a parallel node is done iff every
// region is done; an atomic node is never done.
func (t *StateTree) Done() bool {
	switch t.Node.Kind {
	case KindFinal:
		return true
	case KindCompound:
		_, child := t.activeChild()
		return child != nil && child.Node.Kind == KindFinal
	case KindParallel:
		for _, key := range t.order {
			if !t.Nodes[key].Done() {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// DoneData evaluates the completion data of a done compound node whose final
// child carries a completion-data expression. The second return is false
// everywhere else, including for parallel and atomic nodes.
func (t *StateTree) DoneData(ctx *Context, event Event) (any, bool) {
	if t.Node.Kind != KindCompound || !t.Done() {
		return nil, false
	}
	_, child := t.activeChild()
	if child == nil || child.Node.DoneData == nil {
		return nil, false
	}
	return evalExpr(child.Node.DoneData, ctx, event), true
}

// DoneEvents returns every completion event to fire for the nodes newly
// entered this step, bottom-up. Completion is edge-triggered on entry, never
// level-triggered: an empty entered set yields no events even when the tree
// is done, so nothing re-fires while parked in a completed configuration.
func (t *StateTree) DoneEvents(entered []*StateNode) []Event {
	if len(entered) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(entered))
	for _, node := range entered {
		if node != nil {
			set[node.ID] = struct{}{}
		}
	}
	return t.doneEvents(set)
}

func (t *StateTree) doneEvents(entered map[string]struct{}) []Event {
	if t.Node.Kind == KindFinal {
		if _, ok := entered[t.Node.ID]; ok {
			return []Event{NewDoneEvent(t.Node.ID, t.Node.DoneData)}
		}
		return nil
	}

	var events []Event
	for _, key := range t.order {
		events = append(events, t.Nodes[key].doneEvents(entered)...)
	}

	switch t.Node.Kind {
	case KindParallel:
		if len(events) > 0 && t.Done() {
			events = append(events, NewDoneEvent(t.Node.ID, nil))
		}
	case KindCompound:
		if len(events) > 0 && t.Done() {
			// Lone child event passes its data through; multiple simultaneous
			// child completions leave the data undefined.
			var data any
			if len(events) == 1 {
				data = events[0].Data
			}
			events = append(events, NewDoneEvent(t.Node.ID, data))
		}
	}
	return events
}
