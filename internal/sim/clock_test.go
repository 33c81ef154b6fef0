package sim

import (
	"testing"
	"time"
)

func fakeClock(maxDt float64, times ...time.Time) *Clock {
	c := NewClock(maxDt)
	i := 0
	c.now = func() time.Time {
		t := times[i]
		i++
		return t
	}
	return c
}

func TestClock_Tick(t *testing.T) {
	base := time.Unix(1000, 0)
	c := fakeClock(0,
		base,
		base.Add(16*time.Millisecond),
		base.Add(10*time.Millisecond),
		base.Add(1010*time.Millisecond),
	)

	tests := []struct {
		name string
		want float64
	}{
		{"baseline", 0},
		{"16ms", 0.016},
		{"backwards clamps", 0},
		{"one second", 1.0},
	}

	for _, tt := range tests {
		if got := c.Tick(); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("%s: Tick() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClock_MaxDt(t *testing.T) {
	base := time.Unix(0, 0)
	c := fakeClock(0.05, base, base.Add(time.Second))

	c.Tick()
	if got := c.Tick(); got != 0.05 {
		t.Errorf("Tick() = %v, want 0.05", got)
	}
}

func TestClock_Reset(t *testing.T) {
	base := time.Unix(0, 0)
	c := fakeClock(0, base, base.Add(time.Second), base.Add(2*time.Second))

	c.Tick()
	c.Reset()
	if got := c.Tick(); got != 0 {
		t.Errorf("Tick() after Reset = %v, want 0", got)
	}
}
