package system

import (
	"time"

	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
)

// tick advances a phase timer by one fixed step and reports whether it ran
// out.
func tick(remaining *time.Duration) bool {
	*remaining -= common.Dt
	return *remaining <= 0
}

// AbilityEvent is the payload of ability lifecycle events.
type AbilityEvent struct {
	Ability string
}

func pushEvent(w *ecs.World, typ ecs.EventType, e ecs.Entity, data any) {
	w.Events().Push(ecs.Event{Type: typ, Entity: e, Data: data})
}
