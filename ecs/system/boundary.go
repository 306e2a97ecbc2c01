package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// DeathEvent is the payload of EventPlayerDied.
type DeathEvent struct {
	Position cp.Vector
	Viewport mgl64.Vec2
}

// BoundarySystem kills the player once it touches or leaves the edge of the
// camera view. Death shakes the camera and raises EventPlayerDied; ending the
// session is up to the game.
type BoundarySystem struct{}

func NewBoundarySystem() *BoundarySystem {
	return &BoundarySystem{}
}

func (b *BoundarySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	view, ok := CameraViewport(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, player *component.Player, transform *component.Transform) {
		if player.Dead || !player.ControlEnabled {
			return
		}
		pos := cp.Vector{X: transform.X, Y: transform.Y}
		vp := view.WorldToViewport(pos)
		if !common.Outside(vp) {
			return
		}

		player.Dead = true
		RequestCameraShake(w, component.CameraShakeRequest{})
		pushEvent(w, ecs.EventPlayerDied, e, DeathEvent{Position: pos, Viewport: vp})
	})
}
