package component

import "time"

// CameraShakeRequest asks the camera system to apply a short shake effect.
// Intensity is the maximum offset per axis in world units. Zero fields fall
// back to the camera's defaults.
type CameraShakeRequest struct {
	Duration  time.Duration
	Intensity float64
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
