package system

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestPositionRecorderSamplesEveryInterval(t *testing.T) {
	cases := []struct {
		name      string
		ticks     int
		wantLen   int
		wantFirst float64
		wantLast  float64
	}{
		{"first_tick", 1, 1, 0, 0},
		{"one_interval", 6, 2, 0, 5},
		{"just_full", 500, 100, 0, 495},
		{"evicts_oldest", 505, 100, 5, 500},
		{"long_run", 1000, 100, 500, 995},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			recordPath(t, f, c.ticks)

			hist := f.history(t)
			if hist.Samples.Len() != c.wantLen {
				t.Fatalf("expected %d samples, got %d", c.wantLen, hist.Samples.Len())
			}
			first, _ := hist.Samples.At(0)
			last, _ := hist.Samples.Newest()
			if first.X != c.wantFirst || last.X != c.wantLast {
				t.Fatalf("expected samples %v..%v, got %v..%v", c.wantFirst, c.wantLast, first.X, last.X)
			}
		})
	}
}

func TestPositionRecorderPausesWithoutControl(t *testing.T) {
	cases := []struct {
		name               string
		recordDuringRewind bool
		wantLen            int
	}{
		{"paused", false, 2},
		{"recording", true, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			f.history(t).RecordDuringRewind = c.recordDuringRewind
			rec := NewPositionRecorderSystem()
			player := f.playerComp(t)
			tr := f.transform(t)

			// Ticks 0..4 sample once, ticks 5..14 have no control, tick 15
			// resumes.
			for i := 0; i < 16; i++ {
				tr.X = float64(i)
				player.ControlEnabled = i < 5 || i >= 15
				rec.Update(f.w)
			}

			hist := f.history(t)
			if hist.Samples.Len() != c.wantLen {
				t.Fatalf("expected %d samples, got %d: %v", c.wantLen, hist.Samples.Len(), hist.Samples.Snapshot())
			}
			last, _ := hist.Samples.Newest()
			if last != (cp.Vector{X: 15, Y: 20}) {
				t.Fatalf("expected an immediate sample on resume, newest is %v", last)
			}
		})
	}
}
