package component

import "time"

// Camera describes the view. The camera's Transform holds the rest top-left
// position in world units; shake offsets are applied on top of it.
type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64

	ViewWidth  float64
	ViewHeight float64

	// Used for shake requests that leave Duration or Intensity zero.
	DefaultShakeDuration  time.Duration
	DefaultShakeIntensity float64

	ShakeRemaining time.Duration
	ShakeIntensity float64
	OffsetX        float64
	OffsetY        float64
}

var CameraComponent = NewComponent[Camera]()
