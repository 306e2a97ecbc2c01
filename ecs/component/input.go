package component

// Input stores per-frame input state for an entity. The *Pressed fields are
// edges: true only on the tick the button went down.
type Input struct {
	MoveX           float64
	Jump            bool
	JumpPressed     bool
	BoostPressed    bool
	TeleportPressed bool
	RewindPressed   bool
	// Cursor position in screen pixels.
	CursorX float64
	CursorY float64
}

var InputComponent = NewComponent[Input]()
