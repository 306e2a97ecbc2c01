package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// FallEvent is the payload of EventHardLanding.
type FallEvent struct {
	Distance float64
}

type PlayerControllerSystem struct {
	ground GroundQuery
}

func NewPlayerControllerSystem(ground GroundQuery) *PlayerControllerSystem {
	return &PlayerControllerSystem{ground: ground}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := ecs.Query(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok || !player.ControlEnabled {
			continue
		}
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		player.Grounded = p.grounded(w, e, transform)

		if (input.MoveX > 0 && !player.FacingRight) || (input.MoveX < 0 && player.FacingRight) {
			flip(player, transform)
		}

		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if bodyComp != nil && bodyComp.Body != nil {
			vel := bodyComp.Body.Velocity()
			if player.Grounded {
				vel.X = input.MoveX * player.Speed
			} else {
				vel.X = input.MoveX * player.AirSpeed
			}
			if input.JumpPressed && player.Grounded {
				vel.Y = -player.Jump
				player.LastGroundedY = transform.Y
			}
			bodyComp.Body.SetVelocityVector(vel)
		}

		if player.Grounded {
			if drop := transform.Y - player.LastGroundedY; drop > player.FallShakeDistance {
				RequestCameraShake(w, component.CameraShakeRequest{})
				pushEvent(w, ecs.EventHardLanding, e, FallEvent{Distance: drop})
			}
			player.LastGroundedY = transform.Y
		}
	}
}

func (p *PlayerControllerSystem) grounded(w *ecs.World, e ecs.Entity, transform *component.Transform) bool {
	if p.ground == nil {
		return false
	}
	check := component.GroundCheck{}
	if gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind()); ok {
		check = *gc
	}
	return p.ground.Grounded(cp.Vector{X: transform.X, Y: transform.Y}, check)
}

func flip(player *component.Player, transform *component.Transform) {
	player.FacingRight = !player.FacingRight
	scale := math.Abs(transform.ScaleX)
	if scale == 0 {
		scale = 1
	}
	if player.FacingRight {
		transform.ScaleX = scale
	} else {
		transform.ScaleX = -scale
	}
}
