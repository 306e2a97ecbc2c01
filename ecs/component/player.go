package component

type Player struct {
	BaseSpeed float64
	Speed     float64
	// AirSpeed caps horizontal speed while airborne and ignores boosts.
	AirSpeed float64
	BaseJump float64
	Jump     float64

	FacingRight bool
	// Grounded is derived every tick from the ground check overlap.
	Grounded bool
	// LastGroundedY is the height the current fall is measured from.
	LastGroundedY     float64
	FallShakeDistance float64

	// ControlEnabled gates every per-tick input and physics update for the
	// actor. Rewind playback turns it off.
	ControlEnabled bool
	Dead           bool
}

var PlayerComponent = NewComponent[Player]()
