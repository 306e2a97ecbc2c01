package system

import (
	"time"

	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

const abilityRewind = "rewind"

// RewindEvent is the payload of EventRewindStarted and EventRewindComplete.
type RewindEvent struct {
	Samples int
}

// RewindSystem replays the recorded position history newest to oldest with
// player control disabled, then clears the history and starts the cooldown.
type RewindSystem struct{}

func NewRewindSystem() *RewindSystem {
	return &RewindSystem{}
}

func (r *RewindSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := ecs.Query(w,
		component.RewindComponent.Kind(),
		component.PositionHistoryComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		rw, _ := ecs.Get(w, e, component.RewindComponent.Kind())
		hist, _ := ecs.Get(w, e, component.PositionHistoryComponent.Kind())
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if rw == nil || hist == nil || player == nil || transform == nil {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

		switch rw.Phase {
		case component.AbilityCooldown:
			if tick(&rw.Remaining) {
				rw.Phase = component.AbilityIdle
				rw.Remaining = 0
				pushEvent(w, ecs.EventAbilityReady, e, AbilityEvent{Ability: abilityRewind})
			}
		case component.AbilityActive:
			r.play(w, e, rw, hist, player, transform, bodyComp)
			continue
		}

		if rw.Phase != component.AbilityIdle || !player.ControlEnabled {
			continue
		}
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok || !input.RewindPressed {
			continue
		}

		rw.Samples = hist.Samples.Snapshot()
		rw.Index = len(rw.Samples) - 1
		rw.Phase = component.AbilityActive
		player.ControlEnabled = false
		if rw.Index >= 0 {
			placeBody(transform, bodyComp, rw.Samples[rw.Index], true)
			rw.StepRemaining = rewindStep(rw, hist)
		} else {
			rw.StepRemaining = 0
		}
		pushEvent(w, ecs.EventRewindStarted, e, RewindEvent{Samples: len(rw.Samples)})
	}
}

func (r *RewindSystem) play(w *ecs.World, e ecs.Entity, rw *component.Rewind, hist *component.PositionHistory, player *component.Player, transform *component.Transform, bodyComp *component.PhysicsBody) {
	rw.StepRemaining -= common.Dt
	for rw.StepRemaining <= 0 {
		rw.Index--
		if rw.Index < 0 {
			r.finish(w, e, rw, hist, player, transform)
			return
		}
		placeBody(transform, bodyComp, rw.Samples[rw.Index], true)
		rw.StepRemaining += rewindStep(rw, hist)
	}
}

func (r *RewindSystem) finish(w *ecs.World, e ecs.Entity, rw *component.Rewind, hist *component.PositionHistory, player *component.Player, transform *component.Transform) {
	replayed := len(rw.Samples)
	rw.Samples = nil
	rw.Index = 0
	rw.StepRemaining = 0
	rw.Phase = component.AbilityCooldown
	rw.Remaining = rw.Cooldown

	hist.Samples.Clear()
	hist.NextSample = 0

	player.ControlEnabled = true
	player.LastGroundedY = transform.Y

	pushEvent(w, ecs.EventRewindComplete, e, RewindEvent{Samples: replayed})
}

// rewindStep is the simulated time each replayed sample is held. It is never
// zero, so playback always advances.
func rewindStep(rw *component.Rewind, hist *component.PositionHistory) time.Duration {
	step := hist.Interval
	if rw.Speed > 0 {
		step = time.Duration(float64(hist.Interval) / rw.Speed)
	}
	return max(step, time.Nanosecond)
}
