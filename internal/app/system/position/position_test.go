package position

import "testing"

func TestAppend(t *testing.T) {
	tests := []struct {
		name string
		max  float64
		step float64
		want float64
	}{
		{"empty container", 0, DefaultStep, 1000},
		{"after one sibling", 1000, DefaultStep, 2000},
		{"after midpoint key", 1500, DefaultStep, 2500},
		{"zero step falls back to default", 2000, 0, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Append(tt.max, tt.step); got != tt.want {
				t.Errorf("Append(%v, %v) = %v, want %v", tt.max, tt.step, got, tt.want)
			}
		})
	}
}

func TestBetween(t *testing.T) {
	got := Between(1000, 2000)
	if got != 1500 {
		t.Errorf("Between(1000, 2000) = %v, want 1500", got)
	}
	if got <= 1000 || got >= 2000 {
		t.Errorf("midpoint %v not strictly between neighbors", got)
	}
}

func TestBetween_SwappedArguments(t *testing.T) {
	if got := Between(2000, 1000); got != 1500 {
		t.Errorf("Between(2000, 1000) = %v, want 1500", got)
	}
}

func TestBetween_StrictlyBetweenUntilExhausted(t *testing.T) {
	// Repeated same-slot insertion must stay inside the gap until float64
	// precision runs out, and Exhausted must flag that point.
	lo, hi := 1000.0, 2000.0
	for i := 0; i < 200; i++ {
		if Exhausted(lo, hi) {
			return // flagged before producing an out-of-gap key
		}
		mid := Between(lo, hi)
		if mid <= lo || mid >= hi {
			t.Fatalf("iteration %d: midpoint %v escaped gap (%v, %v)", i, mid, lo, hi)
		}
		lo = mid
	}
	t.Fatal("gap never exhausted after 200 splits; expected precision loss")
}

func TestSequence(t *testing.T) {
	keys := Sequence(3, DefaultStep)
	want := []float64{1000, 2000, 3000}
	if len(keys) != len(want) {
		t.Fatalf("len = %d, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}

func TestSequence_Empty(t *testing.T) {
	if keys := Sequence(0, DefaultStep); len(keys) != 0 {
		t.Errorf("expected empty sequence, got %v", keys)
	}
}
