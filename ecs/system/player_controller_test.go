package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// withBody gives the fixture player a real dynamic body in its own space.
func withBody(t *testing.T, f *fixture) *cp.Body {
	t.Helper()
	mustAdd(t, f.w, f.player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 1, Height: 2, Mass: 1})
	ps := NewPhysicsSystem()
	ps.Sync(f.w)
	return mustGet(t, f.w, f.player, component.PhysicsBodyComponent.Kind()).Body
}

func constGround(grounded bool) GroundQuery {
	return groundFunc(func(cp.Vector, component.GroundCheck) bool { return grounded })
}

func TestPlayerControllerHorizontalVelocity(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		boosted  bool
		moveX    float64
		wantVX   float64
	}{
		{"grounded_right", true, false, 1, 8},
		{"grounded_left", true, false, -1, -8},
		{"grounded_boosted", true, true, 1, 24},
		{"airborne", false, false, 1, 8},
		{"airborne_boost_ignored", false, true, -1, -8},
		{"idle", true, true, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			body := withBody(t, f)
			if c.boosted {
				f.playerComp(t).Speed = 24
			}
			f.input(t).MoveX = c.moveX

			NewPlayerControllerSystem(constGround(c.grounded)).Update(f.w)

			if got := body.Velocity().X; got != c.wantVX {
				t.Fatalf("vx = %v, want %v", got, c.wantVX)
			}
		})
	}
}

func TestPlayerControllerJump(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		pressed  bool
		jump     float64
		wantVY   float64
	}{
		{"grounded_edge", true, true, 10, -10},
		{"boosted_jump", true, true, 20, -20},
		{"airborne_edge", false, true, 10, 0},
		{"no_edge", true, false, 10, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			body := withBody(t, f)
			f.playerComp(t).Jump = c.jump
			f.transform(t).Y = 17
			f.input(t).JumpPressed = c.pressed

			NewPlayerControllerSystem(constGround(c.grounded)).Update(f.w)

			if got := body.Velocity().Y; got != c.wantVY {
				t.Fatalf("vy = %v, want %v", got, c.wantVY)
			}
			if c.wantVY != 0 && f.playerComp(t).LastGroundedY != 17 {
				t.Fatalf("jump should record the take-off height, got %v", f.playerComp(t).LastGroundedY)
			}
		})
	}
}

func TestPlayerControllerFacing(t *testing.T) {
	steps := []struct {
		moveX      float64
		wantRight  bool
		wantScaleX float64
	}{
		{1, true, 1},
		{0, true, 1},
		{-0.5, false, -1},
		{-1, false, -1},
		{0, false, -1},
		{0.2, true, 1},
	}

	f := newFixture(t)
	sys := NewPlayerControllerSystem(constGround(true))
	for i, s := range steps {
		f.input(t).MoveX = s.moveX
		sys.Update(f.w)
		if p := f.playerComp(t); p.FacingRight != s.wantRight {
			t.Fatalf("step %d: facing right = %v, want %v", i, p.FacingRight, s.wantRight)
		}
		if got := f.transform(t).ScaleX; got != s.wantScaleX {
			t.Fatalf("step %d: scale x = %v, want %v", i, got, s.wantScaleX)
		}
	}
}

func TestPlayerControllerFallShake(t *testing.T) {
	cases := []struct {
		name      string
		drop      float64
		wantShake bool
	}{
		{"short_drop", 15, false},
		{"exactly_threshold", 20, false},
		{"long_drop", 25, true},
		{"going_up", -30, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			grounded := false
			sys := NewPlayerControllerSystem(groundFunc(func(cp.Vector, component.GroundCheck) bool { return grounded }))
			f.playerComp(t).LastGroundedY = 5

			tr := f.transform(t)
			tr.Y = 5 + c.drop/2
			sys.Update(f.w)

			tr.Y = 5 + c.drop
			grounded = true
			sys.Update(f.w)

			shook := ecs.Has(f.w, f.camera, component.CameraShakeRequestComponent.Kind())
			if shook != c.wantShake {
				t.Fatalf("shake = %v, want %v", shook, c.wantShake)
			}
			if got := len(f.events(ecs.EventHardLanding)); got != map[bool]int{true: 1, false: 0}[c.wantShake] {
				t.Fatalf("unexpected hard landing events: %d", got)
			}

			// Standing still afterwards must not shake again.
			ecs.Remove(f.w, f.camera, component.CameraShakeRequestComponent.Kind())
			sys.Update(f.w)
			if ecs.Has(f.w, f.camera, component.CameraShakeRequestComponent.Kind()) {
				t.Fatal("shake repeated while standing")
			}
		})
	}
}

func TestPlayerControllerSkipsWithoutControl(t *testing.T) {
	f := newFixture(t)
	body := withBody(t, f)
	f.playerComp(t).ControlEnabled = false
	f.input(t).MoveX = 1
	f.input(t).JumpPressed = true

	NewPlayerControllerSystem(constGround(true)).Update(f.w)

	if v := body.Velocity(); v.X != 0 || v.Y != 0 {
		t.Fatalf("controller moved a player without control: %v", v)
	}
}
