package component

// GroundCheck describes the circle below an actor that must overlap a ground
// shape for the actor to count as grounded. Offsets are relative to the
// body center.
type GroundCheck struct {
	OffsetX float64
	OffsetY float64
	Radius  float64
}

var GroundCheckComponent = NewComponent[GroundCheck]()
