package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

func addSolid(t *testing.T, w *ecs.World, x, y, width, height float64, category uint32) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.SolidTagComponent.Kind(), &component.SolidTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height, Static: true, Friction: 1})
	mustAdd(t, w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category})
	return e
}

// physicsFixture puts a floor with its top at y=40 under the fixture player
// and an obstacle-only wall at x in [60, 61].
func physicsFixture(t *testing.T) (*fixture, *PhysicsSystem) {
	t.Helper()
	f := newFixture(t)
	addSolid(t, f.w, 0, 40, 80, 5, component.CategoryGround)
	addSolid(t, f.w, 60, 0, 1, 40, component.CategoryObstacle)
	mustAdd(t, f.w, f.player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 1, Height: 2, Mass: 1})
	mustAdd(t, f.w, f.player, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.CategoryPlayer,
		Mask:     component.CategoryGround | component.CategoryObstacle,
	})

	ps := NewPhysicsSystem()
	ps.Sync(f.w)
	return f, ps
}

func TestPhysicsSystemFallsAndLands(t *testing.T) {
	f, ps := physicsFixture(t)
	ctrl := NewPlayerControllerSystem(ps)
	tr := f.transform(t)
	gc := mustGet(t, f.w, f.player, component.GroundCheckComponent.Kind())

	if ps.Grounded(cp.Vector{X: tr.X, Y: tr.Y}, *gc) {
		t.Fatal("player should start airborne")
	}

	for i := 0; i < 150; i++ {
		ctrl.Update(f.w)
		ps.Update(f.w)
	}

	if math.Abs(tr.Y-39) > 0.15 {
		t.Fatalf("expected the player to rest on the floor at y=39, got %v", tr.Y)
	}
	if !ps.Grounded(cp.Vector{X: tr.X, Y: tr.Y}, *gc) {
		t.Fatal("expected the player to be grounded on the floor")
	}
	if !f.playerComp(t).Grounded {
		t.Fatal("controller did not record grounded state")
	}
}

func TestPhysicsSystemGroundQueryIgnoresObstacles(t *testing.T) {
	_, ps := physicsFixture(t)
	check := component.GroundCheck{OffsetY: 1, Radius: 0.2}

	cases := []struct {
		name   string
		center cp.Vector
		want   bool
	}{
		{"on_floor", cp.Vector{X: 10, Y: 39}, true},
		{"within_radius", cp.Vector{X: 10, Y: 38.85}, true},
		{"above_floor", cp.Vector{X: 10, Y: 38}, false},
		{"on_obstacle_wall_top", cp.Vector{X: 60.5, Y: -1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ps.Grounded(c.center, check); got != c.want {
				t.Fatalf("grounded = %v, want %v", got, c.want)
			}
		})
	}
}

func TestPhysicsSystemCastObstacle(t *testing.T) {
	_, ps := physicsFixture(t)

	cases := []struct {
		name    string
		from    cp.Vector
		to      cp.Vector
		wantHit bool
		wantX   float64
	}{
		{"hits_wall", cp.Vector{X: 50, Y: 20}, cp.Vector{X: 68, Y: 20}, true, 60},
		{"short_of_wall", cp.Vector{X: 40, Y: 20}, cp.Vector{X: 55, Y: 20}, false, 55},
		{"floor_is_not_obstacle", cp.Vector{X: 10, Y: 30}, cp.Vector{X: 10, Y: 44}, false, 10},
		{"from_the_right", cp.Vector{X: 70, Y: 20}, cp.Vector{X: 55, Y: 20}, true, 61},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, hit := ps.CastObstacle(c.from, c.to)
			if hit != c.wantHit {
				t.Fatalf("hit = %v, want %v", hit, c.wantHit)
			}
			if math.Abs(p.X-c.wantX) > 1e-6 {
				t.Fatalf("point x = %v, want %v", p.X, c.wantX)
			}
		})
	}
}

func TestPhysicsSystemPinsPlayerWithoutControl(t *testing.T) {
	f, ps := physicsFixture(t)
	f.playerComp(t).ControlEnabled = false

	for i := 0; i < 10; i++ {
		ps.Update(f.w)
	}

	tr := f.transform(t)
	if tr.X != 40 || tr.Y != 20 {
		t.Fatalf("gravity moved a player without control to (%v, %v)", tr.X, tr.Y)
	}
}

func TestPhysicsSystemRemovesDestroyedBodies(t *testing.T) {
	f, ps := physicsFixture(t)
	before := len(ps.entities)

	ecs.DestroyEntity(f.w, f.player)
	ps.Sync(f.w)

	if len(ps.entities) != before-1 {
		t.Fatalf("expected %d bodies after destroy, got %d", before-1, len(ps.entities))
	}
}
