package common

import "testing"

func TestRingFIFO(t *testing.T) {
	cases := []struct {
		name    string
		cap     int
		push    int
		want    []int
		evicted int
	}{
		{"empty", 3, 0, []int{}, 0},
		{"partial", 3, 2, []int{0, 1}, 0},
		{"exactly_full", 3, 3, []int{0, 1, 2}, 0},
		{"overflow_evicts_oldest", 3, 5, []int{2, 3, 4}, 2},
		{"wraps_twice", 2, 7, []int{5, 6}, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRing[int](c.cap)
			evicted := 0
			for i := 0; i < c.push; i++ {
				if r.Push(i) {
					evicted++
				}
			}
			if evicted != c.evicted {
				t.Fatalf("expected %d evictions, got %d", c.evicted, evicted)
			}
			if r.Len() != len(c.want) {
				t.Fatalf("expected len %d, got %d", len(c.want), r.Len())
			}
			got := r.Snapshot()
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("snapshot mismatch at %d: want %v got %v", i, c.want, got)
				}
				if v, ok := r.At(i); !ok || v != c.want[i] {
					t.Fatalf("At(%d) = %v,%v want %v", i, v, ok, c.want[i])
				}
			}
		})
	}
}

func TestRingHundredSamples(t *testing.T) {
	r := NewRing[int](100)
	for i := 0; i < 100; i++ {
		r.Push(i)
	}
	if oldest, _ := r.At(0); oldest != 0 {
		t.Fatalf("expected oldest 0 before overflow, got %d", oldest)
	}

	r.Push(100)
	if r.Len() != 100 {
		t.Fatalf("length must stay at capacity, got %d", r.Len())
	}
	if oldest, _ := r.At(0); oldest != 1 {
		t.Fatalf("expected sample 0 evicted, oldest is %d", oldest)
	}
	if newest, _ := r.Newest(); newest != 100 {
		t.Fatalf("expected newest 100, got %d", newest)
	}
}

func TestRingClear(t *testing.T) {
	r := NewRing[int](4)
	r.Push(1)
	r.Push(2)
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("expected empty ring, got %d", r.Len())
	}
	if _, ok := r.Newest(); ok {
		t.Fatal("expected no newest value after clear")
	}
	r.Push(9)
	if v, _ := r.At(0); v != 9 {
		t.Fatalf("expected 9 after reuse, got %d", v)
	}
}
