package netmap

import (
	"math"
	"testing"
)

func TestStep_PositionsPureFunctionOfTime(t *testing.T) {
	ts := NewTestScene(WithSeed(5))
	ts.Scene.Step(5.0)
	want := make([]Vec3, 0)
	for _, n := range ts.Scene.Nodes() {
		want = append(want, n.Pos)
	}

	// Evaluate at a different time, then back at t=5: with no hover
	// ever triggered, positions must be identical.
	ts.Scene.Step(2.0)
	ts.Scene.Step(5.0)
	for i, n := range ts.Scene.Nodes() {
		if n.Pos != want[i] {
			t.Fatalf("node %d position not reproducible at t=5: %+v vs %+v", i, n.Pos, want[i])
		}
	}
}

func TestDriftOffset_BoundedByAmplitude(t *testing.T) {
	phase := [3]float64{0.3, 2.1, 4.4}
	for _, tt := range []float64{0, 0.7, 13.9, 111.1} {
		off := driftOffset(phase, tt, 0.06)
		for _, v := range []float64{off.X, off.Y, off.Z} {
			if math.Abs(v) > 0.06+1e-12 {
				t.Fatalf("drift offset %v exceeds amplitude at t=%v", v, tt)
			}
		}
	}
}

func TestModule_HoverFreezesPosition(t *testing.T) {
	ts := NewTestScene(WithSeed(2))
	ts.RunFrames(60, 1.0/60)

	n := ts.Scene.ModuleNode("music")
	if n == nil {
		t.Fatal("default config should have a music module")
	}
	ts.Scene.SetHovered("music")
	ts.RunFrames(1, 1.0/60)
	frozen := n.Pos
	if n.Motion.Kind != motionPaused {
		t.Fatal("expected paused motion state while hovered")
	}

	ts.RunFrames(120, 1.0/60)
	if n.Pos != frozen {
		t.Fatalf("paused module moved: %+v vs %+v", n.Pos, frozen)
	}
}

func TestModule_ScaleEasesWithoutSnapping(t *testing.T) {
	cfg := DefaultConfig()
	ts := NewTestScene(WithConfig(cfg), WithSeed(2))
	ts.RunFrames(30, 1.0/60)

	n := ts.Scene.ModuleNode("music")
	ts.Scene.SetHovered("music")

	prev := n.Scale
	for i := 0; i < 120; i++ {
		ts.RunFrames(1, 1.0/60)
		if n.Scale < prev-1e-9 {
			t.Fatal("scale should grow monotonically toward the hover target")
		}
		if step := n.Scale - prev; step > 0.2 {
			t.Fatalf("scale snapped by %.3f in one frame", step)
		}
		prev = n.Scale
	}
	if math.Abs(n.Scale-cfg.Animation.HoverScale) > 0.02 {
		t.Fatalf("scale should settle near %.2f, got %.3f", cfg.Animation.HoverScale, n.Scale)
	}

	// Releasing eases back down with the same smoothing, never a snap.
	ts.Scene.SetHovered("")
	ts.RunFrames(1, 1.0/60)
	if diff := prev - n.Scale; diff > 0.2 {
		t.Fatalf("scale snapped down by %.3f on release", diff)
	}
}

func TestModule_ResumeReproducesSnapshot(t *testing.T) {
	ts := NewTestScene(WithSeed(8))
	ts.RunFrames(45, 1.0/60)

	n := ts.Scene.ModuleNode("maps")
	ts.Scene.SetHovered("maps")
	ts.RunFrames(90, 1.0/60)
	snapshot := n.Pos

	ts.Scene.SetHovered("")
	ts.RunFrames(1, 1e-4)
	if d := n.Pos.Dist(snapshot); d > 1e-6 {
		t.Fatalf("resume position %.9f from snapshot, want continuity", d)
	}
	if n.Motion.Kind != motionActive {
		t.Fatal("expected active motion state after release")
	}
}

func TestEdges_OpacityStaysClamped(t *testing.T) {
	cfg := DefaultConfig()
	ts := NewTestScene(WithConfig(cfg), WithSeed(4))
	for f := 0; f < 300; f++ {
		ts.RunFrames(1, 1.0/60)
		for _, e := range ts.Scene.Edges() {
			if e.Opacity < cfg.Graph.MinOpacity-1e-9 || e.Opacity > cfg.Graph.MaxOpacity+1e-9 {
				t.Fatalf("edge opacity %.3f outside [%.3f, %.3f]",
					e.Opacity, cfg.Graph.MinOpacity, cfg.Graph.MaxOpacity)
			}
		}
	}
}

func TestMedium_GlowAngleAdvances(t *testing.T) {
	ts := NewTestScene(WithSeed(6))
	var medium *Node
	for _, n := range ts.Scene.Nodes() {
		if n.Class == ClassMedium {
			medium = n
			break
		}
	}
	if medium == nil {
		t.Skip("no medium node generated for this seed")
	}
	ts.RunFrames(1, 1.0/60)
	before := medium.GlowAngle
	ts.RunFrames(60, 1.0/60)
	if medium.GlowAngle <= before {
		t.Fatal("medium glow angle should advance continuously")
	}
}
