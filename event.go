// Event provides the immutable event primitive consumed and produced by the
// tree engine. Events are value types; once created they must not be mutated.
package statetree

import "strings"

// DoneStatePrefix is the reserved name prefix for completion events.
const DoneStatePrefix = "done.state."

// Event is an immutable event value with an optional payload.
type Event struct {
	Type string
	Data any
}

// NewEvent creates and returns a new immutable Event.
// Returns Event by value for stack allocation and copy elision.
func NewEvent(eventType string, data any) Event {
	return Event{
		Type: eventType,
		Data: data,
	}
}

// DoneEventType derives the reserved completion-event name for a node ID.
func DoneEventType(id string) string {
	return DoneStatePrefix + id
}

// NewDoneEvent creates the completion event for a node ID, carrying data.
func NewDoneEvent(id string, data any) Event {
	return Event{
		Type: DoneEventType(id),
		Data: data,
	}
}

// IsDoneEvent reports whether e carries a reserved completion-event name.
func IsDoneEvent(e Event) bool {
	return strings.HasPrefix(e.Type, DoneStatePrefix)
}
