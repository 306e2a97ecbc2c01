package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

// AbilityPhase is the guard state of a timed ability. Only an Idle ability
// may be triggered.
type AbilityPhase int

const (
	AbilityIdle AbilityPhase = iota
	AbilityActive
	AbilityCooldown
)

func (p AbilityPhase) String() string {
	switch p {
	case AbilityIdle:
		return "ready"
	case AbilityActive:
		return "active"
	case AbilityCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// SpeedBoost multiplies speed and jump while Active, then blocks re-trigger
// for Cooldown.
type SpeedBoost struct {
	Phase     AbilityPhase
	Remaining time.Duration

	SpeedMultiplier float64
	JumpMultiplier  float64
	Duration        time.Duration
	Cooldown        time.Duration
}

var SpeedBoostComponent = NewComponent[SpeedBoost]()

// Teleport is instant; its only timed phase is the cooldown.
type Teleport struct {
	Phase     AbilityPhase
	Remaining time.Duration

	MaxDistance float64
	Cooldown    time.Duration

	// LastFrom and LastTo describe the most recent jump, for debug drawing.
	LastFrom cp.Vector
	LastTo   cp.Vector
	LastHit  bool
}

var TeleportComponent = NewComponent[Teleport]()

// Rewind replays PositionHistory newest to oldest while Active, then cools
// down. Speed divides the history sampling interval to get the replay step.
type Rewind struct {
	Phase     AbilityPhase
	Remaining time.Duration

	Speed    float64
	Cooldown time.Duration

	Samples       []cp.Vector
	Index         int
	StepRemaining time.Duration
}

var RewindComponent = NewComponent[Rewind]()
