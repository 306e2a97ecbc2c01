package system

import (
	"testing"
	"time"

	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

func TestCameraShakeRestoresExactly(t *testing.T) {
	f := newFixture(t)
	camTransform := mustGet(t, f.w, f.camera, component.TransformComponent.Kind())
	camTransform.X, camTransform.Y = 3.25, -1.5
	cam := mustGet(t, f.w, f.camera, component.CameraComponent.Kind())

	sys := NewCameraSystem(7)
	RequestCameraShake(f.w, component.CameraShakeRequest{})

	moved := false
	for i := 0; i < ticks(time.Second); i++ {
		sys.Update(f.w)
		if cam.OffsetX < -1 || cam.OffsetX > 1 || cam.OffsetY < -1 || cam.OffsetY > 1 {
			t.Fatalf("tick %d: offset (%v, %v) outside +-1", i, cam.OffsetX, cam.OffsetY)
		}
		if cam.OffsetX != 0 || cam.OffsetY != 0 {
			moved = true
		}
		view, _ := CameraViewport(f.w)
		if view.Left != camTransform.X+cam.OffsetX {
			t.Fatalf("viewport ignores the shake offset")
		}
	}
	if !moved {
		t.Fatal("camera never moved during the shake")
	}

	sys.Update(f.w)
	if cam.OffsetX != 0 || cam.OffsetY != 0 || cam.ShakeRemaining != 0 {
		t.Fatalf("shake did not stop after 1s: offset (%v, %v) remaining %v", cam.OffsetX, cam.OffsetY, cam.ShakeRemaining)
	}
	if camTransform.X != 3.25 || camTransform.Y != -1.5 {
		t.Fatalf("rest position changed to (%v, %v)", camTransform.X, camTransform.Y)
	}
	view, _ := CameraViewport(f.w)
	if view.Left != 3.25 || view.Top != -1.5 {
		t.Fatalf("view not restored: (%v, %v)", view.Left, view.Top)
	}
}

func TestCameraShakeMerge(t *testing.T) {
	cases := []struct {
		name          string
		first         component.CameraShakeRequest
		second        component.CameraShakeRequest
		gap           int
		wantRemaining time.Duration
		wantIntensity float64
	}{
		{
			name:          "same_tick_keeps_max",
			first:         component.CameraShakeRequest{Duration: 500 * time.Millisecond, Intensity: 2},
			second:        component.CameraShakeRequest{Duration: 2 * time.Second, Intensity: 0.5},
			wantRemaining: 2 * time.Second,
			wantIntensity: 2,
		},
		{
			name:          "later_request_extends",
			first:         component.CameraShakeRequest{},
			second:        component.CameraShakeRequest{},
			gap:           25,
			wantRemaining: time.Second,
			wantIntensity: 1,
		},
		{
			name:          "shorter_request_does_not_cut",
			first:         component.CameraShakeRequest{Duration: 2 * time.Second},
			second:        component.CameraShakeRequest{Duration: 100 * time.Millisecond, Intensity: 0.25},
			gap:           10,
			wantRemaining: 2*time.Second - 10*20*time.Millisecond,
			wantIntensity: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			cam := mustGet(t, f.w, f.camera, component.CameraComponent.Kind())
			sys := NewCameraSystem(1)

			RequestCameraShake(f.w, c.first)
			if c.gap > 0 {
				for i := 0; i < c.gap; i++ {
					sys.Update(f.w)
				}
			}
			RequestCameraShake(f.w, c.second)
			sys.Update(f.w)

			// The update consumed the request and spent one tick of it.
			if got := cam.ShakeRemaining + 20*time.Millisecond; got != c.wantRemaining {
				t.Fatalf("remaining = %v, want %v", got, c.wantRemaining)
			}
			if cam.ShakeIntensity != c.wantIntensity {
				t.Fatalf("intensity = %v, want %v", cam.ShakeIntensity, c.wantIntensity)
			}
			if ecs.Has(f.w, f.camera, component.CameraShakeRequestComponent.Kind()) {
				t.Fatal("shake request was not consumed")
			}
		})
	}
}

func TestCameraShakeIsDeterministicPerSeed(t *testing.T) {
	run := func(seed uint64) []float64 {
		f := newFixture(t)
		cam := mustGet(t, f.w, f.camera, component.CameraComponent.Kind())
		sys := NewCameraSystem(seed)
		RequestCameraShake(f.w, component.CameraShakeRequest{})
		var out []float64
		for i := 0; i < 5; i++ {
			sys.Update(f.w)
			out = append(out, cam.OffsetX, cam.OffsetY)
		}
		return out
	}

	a, b := run(42), run(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("offset %d differs between runs with the same seed", i)
		}
	}
}

func TestCameraFollowsTargetWithinBounds(t *testing.T) {
	f := newFixture(t)
	cam := mustGet(t, f.w, f.camera, component.CameraComponent.Kind())
	cam.TargetName = "player"
	cam.Smoothness = 1

	bounds := ecs.CreateEntity(f.w)
	mustAdd(t, f.w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 200, Height: 45})

	camTransform := mustGet(t, f.w, f.camera, component.TransformComponent.Kind())
	tr := f.transform(t)
	sys := NewCameraSystem(1)

	tr.X = 100
	sys.Update(f.w)
	if camTransform.X != 60 || camTransform.Y != 0 {
		t.Fatalf("expected camera at (60, 0), got (%v, %v)", camTransform.X, camTransform.Y)
	}

	tr.X = 195
	sys.Update(f.w)
	if camTransform.X != 120 {
		t.Fatalf("expected camera clamped to 120, got %v", camTransform.X)
	}
}
