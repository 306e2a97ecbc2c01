package ecs

// EventType identifies gameplay notifications raised by systems.
type EventType string

const (
	EventSpeedBoostStarted EventType = "speed_boost_started"
	EventSpeedBoostExpired EventType = "speed_boost_expired"
	EventTeleported        EventType = "teleported"
	EventTeleportBlocked   EventType = "teleport_blocked"
	EventRewindStarted     EventType = "rewind_started"
	EventRewindComplete    EventType = "rewind_complete"
	EventAbilityReady      EventType = "ability_ready"
	EventHardLanding       EventType = "hard_landing"
	EventPlayerDied        EventType = "player_died"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
