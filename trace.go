package statetree

import "go.uber.org/zap"

// StepTracer logs one configuration step in structured form: the ordered exit
// and entry lists and any completion events fired. A nil tracer is a no-op,
// so callers can wire tracing unconditionally.
type StepTracer struct {
	log *zap.Logger
}

// NewStepTracer creates a tracer writing to log.
func NewStepTracer(log *zap.Logger) *StepTracer {
	return &StepTracer{log: log}
}

// Step records a completed configuration step.
func (st *StepTracer) Step(chartID string, next *StateTree, exit, entry []*StateNode, events []Event) {
	if st == nil || st.log == nil {
		return
	}
	eventTypes := make([]string, len(events))
	for i, event := range events {
		eventTypes[i] = event.Type
	}
	st.log.Info("configuration step",
		zap.String("chart", chartID),
		zap.String("value", next.Value().String()),
		zap.Strings("exit", nodeIDs(exit)),
		zap.Strings("entry", nodeIDs(entry)),
		zap.Strings("doneEvents", eventTypes),
		zap.Bool("done", next.Done()),
	)
}

func nodeIDs(nodes []*StateNode) []string {
	ids := make([]string, len(nodes))
	for i, node := range nodes {
		ids[i] = node.ID
	}
	return ids
}
