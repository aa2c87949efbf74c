package reveal

// EventKind identifies a controller event.
type EventKind uint8

const (
	EventReady        EventKind = iota // initialization ran
	EventCrossing                      // a discrete trigger crossed a boundary
	EventPanelToggled                  // an accordion header was activated
	EventRecalculated                  // trigger ranges were rebuilt
	EventEntranceDone                  // a group's one-time entrance finished
)

// String returns a short name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventCrossing:
		return "crossing"
	case EventPanelToggled:
		return "panelToggled"
	case EventRecalculated:
		return "recalculated"
	case EventEntranceDone:
		return "entranceDone"
	}
	return "unknown"
}

// Event describes something the controller did. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind EventKind

	// EventCrossing, EventEntranceDone
	Group    string
	Crossing Crossing
	Target   Target

	// EventPanelToggled
	Panel string
	Open  bool

	// EventRecalculated
	Reason     string
	Generation uint64

	Scroll float64
}

// EventSink receives controller events in the order they happen.
type EventSink interface {
	Emit(event Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit implements EventSink.
func (f EventSinkFunc) Emit(e Event) {
	f(e)
}
