package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// SolidTag marks level geometry. Layer indexes the level layer it came from.
type SolidTag struct {
	Layer int
}

var SolidTagComponent = NewComponent[SolidTag]()
