package netmap

import "math"

// driftBaseFreq is the per-axis base oscillation frequency for
// background nodes. Each node skews it by its own phase offsets so no
// two nodes move in lockstep.
var driftBaseFreq = [3]float64{0.9, 1.1, 0.7}

// glowPulseFreq drives module glow pulsation, rad/s.
const glowPulseFreq = 2.4

// Step advances every node and edge to scene time t. It is the only
// writer of Node.Pos, Scale, Glow and Edge.Opacity, and it touches no
// renderer state, so the whole animation is unit-testable headless.
// Positions of unhovered nodes are pure functions of (base, phase, t).
func (s *Scene) Step(t float64) {
	if !s.generated {
		return
	}
	dt := 0.0
	if s.hasTime {
		// Cap dt so a stalled frame does not teleport eased values.
		dt = clamp(t-s.lastTime, 0, 0.1)
	}
	s.lastTime = t
	s.hasTime = true

	a := s.cfg.Animation
	for _, n := range s.nodes {
		switch n.Class {
		case ClassSmall:
			n.Pos = n.Base.Add(driftOffset(n.Phase, t, a.SmallAmplitude))
		case ClassMedium:
			n.Pos = n.Base.Add(driftOffset(n.Phase, t, a.MediumAmplitude))
			n.GlowAngle += a.GlowSpin * dt
		case ClassModule:
			s.stepModule(n, t, dt)
		}
	}
	s.stepEdges(t)
}

// driftOffset is the background-node oscillation: independent per-axis
// sinusoids whose frequency is skewed by the node's own phase offsets.
func driftOffset(phase [3]float64, t, amp float64) Vec3 {
	var off [3]float64
	for i := 0; i < 3; i++ {
		freq := driftBaseFreq[i] * (0.8 + 0.4*phase[i]/(2*math.Pi))
		off[i] = amp * math.Sin(t*freq+phase[i])
	}
	return Vec3{off[0], off[1], off[2]}
}

// orbitOffset is the module-node orbital: distinct per-axis frequencies
// and amplitudes give a slow lissajous wander around the anchor.
func orbitOffset(phase [3]float64, t float64, a AnimationConfig) Vec3 {
	return Vec3{
		X: a.ModuleAmplitude[0] * math.Sin(t*a.ModuleFrequency[0]+phase[0]),
		Y: a.ModuleAmplitude[1] * math.Sin(t*a.ModuleFrequency[1]+phase[1]),
		Z: a.ModuleAmplitude[2] * math.Sin(t*a.ModuleFrequency[2]+phase[2]),
	}
}

// stepModule runs the hover state machine for one module node.
//
// Transitions happen here, inside frame dispatch, by comparing the
// caller-fed hovered id against the node's current motion state:
//
//	Active → Paused  snapshot position and time, freeze there
//	Paused → Active  recover phases so the orbit re-evaluates to the
//	                 snapshot at the current time, then resume
func (s *Scene) stepModule(n *Node, t, dt float64) {
	a := s.cfg.Animation
	hovered := s.hovered == n.ModuleID && n.ModuleID != ""

	switch {
	case hovered && n.Motion.Kind == motionActive:
		n.Motion = MotionState{Kind: motionPaused, Snapshot: n.Pos, SnapshotTime: t}
	case !hovered && n.Motion.Kind == motionPaused:
		delta := n.Motion.Snapshot.Sub(n.Base)
		n.Phase[0] = recoverPhase(delta.X, a.ModuleAmplitude[0], a.ModuleFrequency[0], t)
		n.Phase[1] = recoverPhase(delta.Y, a.ModuleAmplitude[1], a.ModuleFrequency[1], t)
		n.Phase[2] = recoverPhase(delta.Z, a.ModuleAmplitude[2], a.ModuleFrequency[2], t)
		n.Motion = MotionState{Kind: motionActive}
	}

	if n.Motion.Kind == motionPaused {
		n.Pos = n.Motion.Snapshot
		n.Scale = easeToward(n.Scale, a.HoverScale, a.EaseRate, dt)
		n.Glow = a.GlowBase + a.GlowHoverPulse*math.Sin(t*glowPulseFreq+n.Phase[0])
	} else {
		n.Pos = n.Base.Add(orbitOffset(n.Phase, t, a))
		n.Scale = easeToward(n.Scale, 1, a.EaseRate, dt)
		n.Glow = a.GlowBase + a.GlowPulse*math.Sin(t*glowPulseFreq+n.Phase[0])
	}
}

// easeToward is exponential smoothing with a constant rate: the same
// easing in both directions, never a snap.
func easeToward(cur, target, rate, dt float64) float64 {
	return cur + (target-cur)*(1-math.Exp(-rate*dt))
}

// stepEdges refreshes edge opacity from the cached baseline plus a flow
// pulse. The pulse phase walks with the edge index; edges touching a
// module run the pulse in the opposite direction, reading as data
// flowing inward.
func (s *Scene) stepEdges(t float64) {
	g := s.cfg.Graph
	rate := s.cfg.Animation.EdgeFlowRate
	for i, e := range s.edges {
		sign := 1.0
		if e.TouchesModule() {
			sign = -1
		}
		pulse := math.Sin(sign * (t*rate + float64(i)*0.7))
		e.Opacity = clamp(e.BaseOpacity*0.5+pulse*0.3, g.MinOpacity, g.MaxOpacity)
	}
}
