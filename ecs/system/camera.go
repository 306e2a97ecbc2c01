package system

import (
	"math/rand/v2"

	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// CameraSystem follows the camera target, if any, and runs the shake. Shake
// jitter lives in the camera offset, never in its Transform, so the rest
// position is restored exactly when the shake ends.
type CameraSystem struct {
	rng          *rand.Rand
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem(seed uint64) *CameraSystem {
	return &CameraSystem{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	cs.consumeShakeRequests(w, cam)
	cs.follow(w, cam, camTransform)

	if cam.ShakeRemaining > 0 {
		cam.OffsetX = (cs.rng.Float64()*2 - 1) * cam.ShakeIntensity
		cam.OffsetY = (cs.rng.Float64()*2 - 1) * cam.ShakeIntensity
		cam.ShakeRemaining -= common.Dt
		return
	}

	cam.ShakeRemaining = 0
	cam.ShakeIntensity = 0
	cam.OffsetX = 0
	cam.OffsetY = 0
}

func (cs *CameraSystem) consumeShakeRequests(w *ecs.World, cam *component.Camera) {
	for _, e := range ecs.Query(w, component.CameraShakeRequestComponent.Kind()) {
		req, ok := ecs.Get(w, e, component.CameraShakeRequestComponent.Kind())
		if !ok {
			continue
		}
		shake := withShakeDefaults(*req, cam)
		if cam.ShakeRemaining <= 0 {
			cam.ShakeIntensity = 0
		}
		cam.ShakeRemaining = max(cam.ShakeRemaining, shake.Duration)
		cam.ShakeIntensity = max(cam.ShakeIntensity, shake.Intensity)
		ecs.Remove(w, e, component.CameraShakeRequestComponent.Kind())
	}
}

// follow centers the rest position on the target, eased by Smoothness and
// kept inside the level bounds.
func (cs *CameraSystem) follow(w *ecs.World, cam *component.Camera, camTransform *component.Transform) {
	if cam.TargetName == "" {
		return
	}
	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	x := target.X - cam.ViewWidth/2
	y := target.Y - cam.ViewHeight/2
	if bounds, ok := levelBounds(w); ok {
		x = clamp(x, 0, bounds.Width-cam.ViewWidth)
		y = clamp(y, 0, bounds.Height-cam.ViewHeight)
	}

	t := cam.Smoothness
	if t <= 0 || t > 1 {
		t = 1
	}
	camTransform.X = common.Lerp(camTransform.X, x, t)
	camTransform.Y = common.Lerp(camTransform.Y, y, t)
}

func levelBounds(w *ecs.World) (*component.LevelBounds, bool) {
	e, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.LevelBoundsComponent.Kind())
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
