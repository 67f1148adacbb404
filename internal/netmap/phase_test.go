package netmap

import (
	"math"
	"testing"
)

func TestRecoverPhase_ReproducesDelta(t *testing.T) {
	cases := []struct {
		delta, amp, freq, t float64
	}{
		{0.1, 0.32, 0.51, 12.7},
		{-0.2, 0.24, 0.73, 3.1},
		{0, 0.18, 0.34, 99.9},
		{0.18, 0.18, 0.34, 0.01}, // delta exactly at the envelope
	}
	for _, c := range cases {
		p := recoverPhase(c.delta, c.amp, c.freq, c.t)
		got := c.amp * math.Sin(c.t*c.freq+p)
		if math.Abs(got-c.delta) > 1e-9 {
			t.Fatalf("recoverPhase(%v,%v,%v,%v): re-evaluates to %v, want %v",
				c.delta, c.amp, c.freq, c.t, got, c.delta)
		}
	}
}

func TestRecoverPhase_ClampsBeyondEnvelope(t *testing.T) {
	// Snapshots outside the orbit envelope land on the nearest envelope
	// point rather than producing NaN.
	p := recoverPhase(1.0, 0.3, 0.5, 4.2)
	got := 0.3 * math.Sin(4.2*0.5+p)
	if math.IsNaN(p) || math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("clamped recovery got %v (phase %v), want 0.3", got, p)
	}
}

func TestRecoverPhase_ZeroAmplitude(t *testing.T) {
	p := recoverPhase(0.5, 0, 0.7, 2.0)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		t.Fatalf("zero amplitude produced %v", p)
	}
	// Whatever the phase, a zero-amplitude axis contributes no offset.
	if got := 0.0 * math.Sin(2.0*0.7+p); got != 0 {
		t.Fatalf("expected zero offset, got %v", got)
	}
}
