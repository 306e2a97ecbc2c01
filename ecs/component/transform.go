package component

// Transform is an entity's placement in world units. ScaleX carries facing:
// a negative value mirrors the actor horizontally.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
