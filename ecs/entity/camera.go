package entity

import (
	"fmt"

	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
	"github.com/milk9111/rewinder/prefabs"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}
	return NewCameraFromSpec(w, cameraSpec)
}

// NewCameraFromSpec builds the camera. Its view in world units is the base
// screen divided by pixels per unit and zoom.
func NewCameraFromSpec(w *ecs.World, cameraSpec *prefabs.CameraSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), transformFromSpec(cameraSpec.Transform)); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	smooth := cameraSpec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	zoom := cameraSpec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		TargetName:            cameraSpec.Target,
		Zoom:                  zoom,
		Smoothness:            smooth,
		ViewWidth:             common.BaseWidth / (common.PixelsPerUnit * zoom),
		ViewHeight:            common.BaseHeight / (common.PixelsPerUnit * zoom),
		DefaultShakeDuration:  cameraSpec.Shake.Duration,
		DefaultShakeIntensity: cameraSpec.Shake.Intensity,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}

func NewCameraAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	transform, ok := ecs.Get(w, camera, component.TransformComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("camera: override transform: %w", component.ErrEntityNotAlive)
	}
	transform.X = x
	transform.Y = y
	return camera, nil
}

// ApplyCameraTuning copies zoom and shake defaults from spec onto an existing
// camera. A shake already running is left alone.
func ApplyCameraTuning(w *ecs.World, camera ecs.Entity, cameraSpec *prefabs.CameraSpec) error {
	cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind())
	if !ok {
		return fmt.Errorf("camera: apply tuning: %w", component.ErrEntityNotAlive)
	}
	if cameraSpec.Zoom > 0 {
		cam.Zoom = cameraSpec.Zoom
		cam.ViewWidth = common.BaseWidth / (common.PixelsPerUnit * cam.Zoom)
		cam.ViewHeight = common.BaseHeight / (common.PixelsPerUnit * cam.Zoom)
	}
	if cameraSpec.Smoothness > 0 {
		cam.Smoothness = cameraSpec.Smoothness
	}
	cam.TargetName = cameraSpec.Target
	cam.DefaultShakeDuration = cameraSpec.Shake.Duration
	cam.DefaultShakeIntensity = cameraSpec.Shake.Intensity
	return nil
}
