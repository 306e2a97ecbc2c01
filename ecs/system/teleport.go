package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

const abilityTeleport = "teleport"

// TeleportEvent is the payload of EventTeleported and EventTeleportBlocked.
type TeleportEvent struct {
	From cp.Vector
	To   cp.Vector
}

// TeleportSystem moves the player toward the cursor, at most MaxDistance,
// stopping at the first obstacle on the way.
type TeleportSystem struct {
	caster ObstacleCaster
}

func NewTeleportSystem(caster ObstacleCaster) *TeleportSystem {
	return &TeleportSystem{caster: caster}
}

func (t *TeleportSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := ecs.Query(w,
		component.TeleportComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		tp, _ := ecs.Get(w, e, component.TeleportComponent.Kind())
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if tp == nil || player == nil || input == nil || transform == nil {
			continue
		}

		if tp.Phase == component.AbilityCooldown && tick(&tp.Remaining) {
			tp.Phase = component.AbilityIdle
			tp.Remaining = 0
			pushEvent(w, ecs.EventAbilityReady, e, AbilityEvent{Ability: abilityTeleport})
		}

		if tp.Phase != component.AbilityIdle || !player.ControlEnabled || !input.TeleportPressed {
			continue
		}

		view, ok := CameraViewport(w)
		if !ok {
			continue
		}

		from := cp.Vector{X: transform.X, Y: transform.Y}
		cursor := view.ScreenToWorld(input.CursorX, input.CursorY)
		to, hit := TeleportTarget(from, cursor, tp.MaxDistance, t.caster)

		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		placeBody(transform, bodyComp, to, false)
		player.LastGroundedY = to.Y

		tp.LastFrom = from
		tp.LastTo = to
		tp.LastHit = hit
		tp.Phase = component.AbilityCooldown
		tp.Remaining = tp.Cooldown

		evt := ecs.EventTeleported
		if hit {
			evt = ecs.EventTeleportBlocked
		}
		pushEvent(w, evt, e, TeleportEvent{From: from, To: to})
	}
}

// TeleportTarget clamps cursor to maxDistance from from along the same
// direction, then stops at the first obstacle between the two. The bool
// reports an obstacle hit.
func TeleportTarget(from, cursor cp.Vector, maxDistance float64, caster ObstacleCaster) (cp.Vector, bool) {
	delta := cursor.Sub(from)
	dist := delta.Length()
	if dist == 0 {
		return from, false
	}

	target := cursor
	if dist > maxDistance {
		target = from.Add(delta.Mult(maxDistance / dist))
	}

	if caster != nil {
		if point, hit := caster.CastObstacle(from, target); hit {
			return point, true
		}
	}
	return target, false
}
