package ecs

type EventType string

const (
	// EventGoalRequested carries a navmesh.Vec2 goal for every nav agent.
	EventGoalRequested EventType = "goal_requested"
	// EventBallSpawned carries the Entity of a ball dropped by the cursor.
	EventBallSpawned EventType = "ball_spawned"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a simple FIFO queue. Events live until the end of the frame
// they were pushed in.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Pending returns the queued events of type t without removing them.
func (q *EventQueue) Pending(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
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
	q.items = nil
}
