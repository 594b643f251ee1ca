package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventGrabbedNewHold is published when a character commits to a hold.
	// Data is a GrabEvent.
	EventGrabbedNewHold = "climb.grabbed"
	// EventClimbPhaseChanged carries a PhaseEvent.
	EventClimbPhaseChanged = "climb.phase"
	// EventDetached is published after a character leaves climbing.
	EventDetached = "climb.detached"
)

// GrabEvent describes a committed grab.
type GrabEvent struct {
	Character Entity
	Hold      Entity
	Direction string
	Ledge     bool
}

type PhaseEvent struct {
	Character Entity
	From      string
	To        string
}

// EventQueue is a FIFO of events for the current tick. Subscribers see every
// event still queued when the tick ends.
type EventQueue struct {
	items       []Event
	subscribers map[string][]func(Event)
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Subscribe registers fn for events of the given type.
func (q *EventQueue) Subscribe(eventType string, fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	if q.subscribers == nil {
		q.subscribers = make(map[string][]func(Event))
	}
	q.subscribers[eventType] = append(q.subscribers[eventType], fn)
}

// Pending returns the queued events without removing them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	items := q.items
	q.items = nil
	for _, evt := range items {
		for _, fn := range q.subscribers[evt.Type] {
			fn(evt)
		}
	}
}
