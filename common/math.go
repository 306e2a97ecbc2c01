package common

import "time"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate. Every system advances by Dt per tick.
	TPS = 50
	Dt  = time.Second / TPS

	PixelsPerUnit = 32.0
	Gravity       = 25.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Seconds converts a simulation duration to float seconds for physics.
func Seconds(d time.Duration) float64 {
	return d.Seconds()
}
