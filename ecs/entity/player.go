package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
	"github.com/milk9111/rewinder/prefabs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return NewPlayerFromSpec(w, spec)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	spec.Transform.X = x
	spec.Transform.Y = y
	return NewPlayerFromSpec(w, spec)
}

// NewPlayerFromSpec builds the controllable actor with every ability idle,
// control enabled and an empty position history.
func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	player := ecs.CreateEntity(w)

	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		BaseSpeed:         spec.MoveSpeed,
		Speed:             spec.MoveSpeed,
		AirSpeed:          spec.AirSpeed,
		BaseJump:          spec.JumpSpeed,
		Jump:              spec.JumpSpeed,
		FacingRight:       spec.Transform.ScaleX >= 0,
		LastGroundedY:     spec.Transform.Y,
		FallShakeDistance: spec.FallShakeDistance,
		ControlEnabled:    true,
	}); err != nil {
		return 0, fmt.Errorf("player: add player component: %w", err)
	}

	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, player, component.TransformComponent.Kind(), transformFromSpec(spec.Transform)); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Collider.Width,
		Height:     spec.Collider.Height,
		Mass:       spec.Collider.Mass,
		Friction:   spec.Collider.Friction,
		Elasticity: spec.Collider.Elasticity,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}

	if err := ecs.Add(w, player, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryPlayer,
		Mask:     component.CategoryGround | component.CategoryObstacle,
	}); err != nil {
		return 0, fmt.Errorf("player: add collision layer: %w", err)
	}

	if err := ecs.Add(w, player, component.GroundCheckComponent.Kind(), &component.GroundCheck{
		OffsetX: spec.GroundCheck.OffsetX,
		OffsetY: spec.GroundCheck.OffsetY,
		Radius:  spec.GroundCheck.Radius,
	}); err != nil {
		return 0, fmt.Errorf("player: add ground check: %w", err)
	}

	if err := ecs.Add(w, player, component.SpeedBoostComponent.Kind(), &component.SpeedBoost{}); err != nil {
		return 0, fmt.Errorf("player: add speed boost: %w", err)
	}
	if err := ecs.Add(w, player, component.TeleportComponent.Kind(), &component.Teleport{}); err != nil {
		return 0, fmt.Errorf("player: add teleport: %w", err)
	}
	if err := ecs.Add(w, player, component.RewindComponent.Kind(), &component.Rewind{}); err != nil {
		return 0, fmt.Errorf("player: add rewind: %w", err)
	}
	if err := ecs.Add(w, player, component.PositionHistoryComponent.Kind(), &component.PositionHistory{
		Samples: common.NewRing[cp.Vector](spec.History.Capacity),
	}); err != nil {
		return 0, fmt.Errorf("player: add position history: %w", err)
	}

	if err := ApplyPlayerTuning(w, player, spec); err != nil {
		return 0, err
	}

	return player, nil
}

// ApplyPlayerTuning copies tunables from spec onto an existing player without
// touching its runtime state: running timers, phases, position and recorded
// samples are kept. A boost that is active keeps its multiplied values.
func ApplyPlayerTuning(w *ecs.World, player ecs.Entity, spec *prefabs.PlayerSpec) error {
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: apply tuning: %w", component.ErrEntityNotAlive)
	}
	boost, ok := ecs.Get(w, player, component.SpeedBoostComponent.Kind())
	if !ok {
		return fmt.Errorf("player: apply tuning: missing speed boost")
	}
	tp, ok := ecs.Get(w, player, component.TeleportComponent.Kind())
	if !ok {
		return fmt.Errorf("player: apply tuning: missing teleport")
	}
	rw, ok := ecs.Get(w, player, component.RewindComponent.Kind())
	if !ok {
		return fmt.Errorf("player: apply tuning: missing rewind")
	}
	hist, ok := ecs.Get(w, player, component.PositionHistoryComponent.Kind())
	if !ok {
		return fmt.Errorf("player: apply tuning: missing position history")
	}

	p.BaseSpeed = spec.MoveSpeed
	p.AirSpeed = spec.AirSpeed
	p.BaseJump = spec.JumpSpeed
	p.FallShakeDistance = spec.FallShakeDistance

	boost.SpeedMultiplier = spec.SpeedBoost.SpeedMultiplier
	boost.JumpMultiplier = spec.SpeedBoost.JumpMultiplier
	boost.Duration = spec.SpeedBoost.Duration
	boost.Cooldown = spec.SpeedBoost.Cooldown
	if boost.Phase == component.AbilityActive {
		p.Speed = p.BaseSpeed * boost.SpeedMultiplier
		p.Jump = p.BaseJump * boost.JumpMultiplier
	} else {
		p.Speed = p.BaseSpeed
		p.Jump = p.BaseJump
	}

	tp.MaxDistance = spec.Teleport.MaxDistance
	tp.Cooldown = spec.Teleport.Cooldown

	rw.Speed = spec.Rewind.Speed
	rw.Cooldown = spec.Rewind.Cooldown

	hist.Interval = spec.History.Interval
	hist.RecordDuringRewind = spec.History.RecordDuringRewind
	if hist.Samples.Cap() != spec.History.Capacity {
		resized := common.NewRing[cp.Vector](spec.History.Capacity)
		for _, s := range hist.Samples.Snapshot() {
			resized.Push(s)
		}
		hist.Samples = resized
	}

	return nil
}

func transformFromSpec(spec prefabs.TransformSpec) *component.Transform {
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	t.ScaleY = math.Abs(t.ScaleY)
	return t
}
