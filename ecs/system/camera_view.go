package system

import (
	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// CameraViewport returns the current effective view, shake offset included,
// projected onto the base screen.
func CameraViewport(w *ecs.World) (common.Viewport, bool) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return common.Viewport{}, false
	}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if !ok {
		return common.Viewport{}, false
	}
	transform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return common.Viewport{}, false
	}

	return common.NewViewport(
		transform.X+cam.OffsetX,
		transform.Y+cam.OffsetY,
		cam.ViewWidth,
		cam.ViewHeight,
		common.BaseWidth,
		common.BaseHeight,
	), true
}

// RequestCameraShake queues a shake on the camera. Zero fields take the
// camera defaults; a request already queued this tick is merged by keeping
// the longer duration and the stronger intensity.
func RequestCameraShake(w *ecs.World, req component.CameraShakeRequest) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		req = withShakeDefaults(req, cam)
	}

	if existing, ok := ecs.Get(w, camEntity, component.CameraShakeRequestComponent.Kind()); ok {
		existing.Duration = max(existing.Duration, req.Duration)
		existing.Intensity = max(existing.Intensity, req.Intensity)
		return
	}

	if err := ecs.Add(w, camEntity, component.CameraShakeRequestComponent.Kind(), &req); err != nil {
		panic("camera system: add shake request: " + err.Error())
	}
}

func withShakeDefaults(req component.CameraShakeRequest, cam *component.Camera) component.CameraShakeRequest {
	if req.Duration <= 0 {
		req.Duration = cam.DefaultShakeDuration
	}
	if req.Intensity <= 0 {
		req.Intensity = cam.DefaultShakeIntensity
	}
	return req
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
