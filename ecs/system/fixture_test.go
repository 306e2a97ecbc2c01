package system

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// ticks converts a duration into the number of fixed steps it spans.
func ticks(d time.Duration) int {
	return int(d / common.Dt)
}

type groundFunc func(center cp.Vector, check component.GroundCheck) bool

func (f groundFunc) Grounded(center cp.Vector, check component.GroundCheck) bool {
	return f(center, check)
}

type casterFunc func(from, to cp.Vector) (cp.Vector, bool)

func (f casterFunc) CastObstacle(from, to cp.Vector) (cp.Vector, bool) {
	return f(from, to)
}

type fixture struct {
	w      *ecs.World
	player ecs.Entity
	camera ecs.Entity
}

// newFixture builds a camera at the origin viewing 80x45 units and a player
// at (40, 20) with default tunables and no physics body.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	w := ecs.NewWorld()
	f := &fixture{w: w, camera: ecs.CreateEntity(w), player: ecs.CreateEntity(w)}

	mustAdd(t, w, f.camera, component.CameraComponent.Kind(), &component.Camera{
		Zoom:                  0.5,
		ViewWidth:             80,
		ViewHeight:            45,
		DefaultShakeDuration:  time.Second,
		DefaultShakeIntensity: 1,
	})
	mustAdd(t, w, f.camera, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, f.camera, component.CameraTagComponent.Kind(), &component.CameraTag{})

	mustAdd(t, w, f.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, f.player, component.PlayerComponent.Kind(), &component.Player{
		BaseSpeed:         8,
		Speed:             8,
		AirSpeed:          8,
		BaseJump:          10,
		Jump:              10,
		FacingRight:       true,
		LastGroundedY:     20,
		FallShakeDistance: 20,
		ControlEnabled:    true,
	})
	mustAdd(t, w, f.player, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, f.player, component.TransformComponent.Kind(), &component.Transform{X: 40, Y: 20, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, f.player, component.GroundCheckComponent.Kind(), &component.GroundCheck{OffsetY: 1, Radius: 0.2})
	mustAdd(t, w, f.player, component.SpeedBoostComponent.Kind(), &component.SpeedBoost{
		SpeedMultiplier: 3,
		JumpMultiplier:  2,
		Duration:        10 * time.Second,
		Cooldown:        10 * time.Second,
	})
	mustAdd(t, w, f.player, component.TeleportComponent.Kind(), &component.Teleport{
		MaxDistance: 18,
		Cooldown:    14 * time.Second,
	})
	mustAdd(t, w, f.player, component.RewindComponent.Kind(), &component.Rewind{
		Speed:    5,
		Cooldown: 20 * time.Second,
	})
	mustAdd(t, w, f.player, component.PositionHistoryComponent.Kind(), &component.PositionHistory{
		Samples:  common.NewRing[cp.Vector](100),
		Interval: 100 * time.Millisecond,
	})

	return f
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("missing component %T", v)
	}
	return v
}

func (f *fixture) input(t *testing.T) *component.Input {
	return mustGet(t, f.w, f.player, component.InputComponent.Kind())
}

func (f *fixture) playerComp(t *testing.T) *component.Player {
	return mustGet(t, f.w, f.player, component.PlayerComponent.Kind())
}

func (f *fixture) transform(t *testing.T) *component.Transform {
	return mustGet(t, f.w, f.player, component.TransformComponent.Kind())
}

func (f *fixture) history(t *testing.T) *component.PositionHistory {
	return mustGet(t, f.w, f.player, component.PositionHistoryComponent.Kind())
}

// clearEdges drops the one-tick button edges the way the input poller does
// on the next tick.
func (f *fixture) clearEdges(t *testing.T) {
	in := f.input(t)
	in.JumpPressed = false
	in.BoostPressed = false
	in.TeleportPressed = false
	in.RewindPressed = false
}

func (f *fixture) events(typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, evt := range f.w.Events().Drain() {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func nearVec(a, b cp.Vector) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}
