package component

// LevelBounds stores the world-space extent of the loaded level. A following
// camera is clamped to it.
type LevelBounds struct {
	Name   string
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
