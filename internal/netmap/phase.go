package netmap

import "math"

// recoverPhase solves for a phase offset p such that
//
//	amp * sin(t*freq + p) == delta
//
// evaluated at the current time t. It is used on the Paused→Active
// transition so a module node resumes its orbit from wherever the hover
// froze it instead of jumping back onto the old track. The ratio is
// clamped to [-1, 1], so when the snapshot drifted outside the orbit
// envelope the recovered position lands on the nearest envelope point;
// position stays continuous within that clamp, velocity is allowed to
// jump.
func recoverPhase(delta, amp, freq, t float64) float64 {
	if amp <= 0 {
		return -t * freq
	}
	ratio := clamp(delta/amp, -1, 1)
	return math.Asin(ratio) - t*freq
}
