package netmap

import "testing"

// centredModule builds a one-module scene with the module on the view
// axis so it projects to the surface centre.
func centredModule(id string, z float64) Module {
	return Module{ID: id, Label: id, Pos: Vec3{0, 0, z}, Color: 0xffffff}
}

func TestPointer_ThrottleDropsRapidMoves(t *testing.T) {
	ts := NewTestScene(WithSeed(1))
	ts.Scene.PointerMove(100, 100, 0.000)
	ts.Scene.PointerMove(102, 101, 0.005) // inside the throttle window
	if got := ts.Scene.HitTests(); got != 1 {
		t.Fatalf("expected exactly 1 hit test, got %d", got)
	}
	ts.Scene.PointerMove(104, 102, 0.020)
	if got := ts.Scene.HitTests(); got != 2 {
		t.Fatalf("expected 2 hit tests after the window passed, got %d", got)
	}
}

func TestPointer_ModuleCentreHovers(t *testing.T) {
	ts := NewTestScene(WithSeed(1), WithModules(centredModule("core", 0)))
	if !ts.MoveOverModule("core") {
		t.Fatal("module should project onto the surface")
	}
	if ts.LastHover() != "core" {
		t.Fatalf("expected hover event for core, got %q", ts.LastHover())
	}
	if !ts.Scene.CursorInteractive() {
		t.Fatal("cursor affordance should switch to interactive on hover")
	}
}

func TestPointer_MissClearsHover(t *testing.T) {
	ts := NewTestScene(WithSeed(1), WithModules(centredModule("core", 0)))
	ts.MoveOverModule("core")
	ts.Time += pointerThrottle
	ts.MoveTo(1, 1) // corner, far from the projected module
	if ts.LastHover() != "" {
		t.Fatalf("expected hover-cleared event, got %q", ts.LastHover())
	}
	if ts.Scene.CursorInteractive() {
		t.Fatal("cursor affordance should revert on miss")
	}
}

func TestPointer_BackgroundNodesNeverHover(t *testing.T) {
	// Module far left; everything near the surface centre is background
	// only. Casting there must never report a hover.
	ts := NewTestScene(WithSeed(3), WithModules(Module{ID: "west", Pos: Vec3{-4, 0, 0}, Color: 0xffffff}))
	ts.MoveOverModule("west")
	if ts.LastHover() != "west" {
		t.Fatalf("sanity: expected west hover, got %q", ts.LastHover())
	}
	ts.Time += pointerThrottle
	ts.MoveTo(900, 360) // right half: background nodes only
	if ts.LastHover() != "" {
		t.Fatalf("ray over background nodes must clear hover, got %q", ts.LastHover())
	}
}

func TestPointer_NearestModuleWins(t *testing.T) {
	// Two modules stacked on the view axis; the one nearer the camera
	// (larger z) must win the cast.
	ts := NewTestScene(WithSeed(1), WithModules(
		centredModule("near", 1),
		centredModule("far", -1),
	))
	ts.MoveOverModule("far") // same pixel as "near"
	if ts.LastHover() != "near" {
		t.Fatalf("expected nearest module to win, got %q", ts.LastHover())
	}
}

func TestPointer_ClickUsesLastKnownPosition(t *testing.T) {
	ts := NewTestScene(WithSeed(1), WithModules(centredModule("core", 0)))
	ts.MoveOverModule("core")
	// A throttled (dropped) move still updates the pointer position,
	// and the click casts there, unthrottled.
	n := ts.Scene.ModuleNode("core")
	sx, sy, _ := ts.Scene.Camera().Project(n.Pos, 1280, 720)
	ts.Scene.PointerMove(1, 1, ts.Time+0.001) // dropped by the throttle
	ts.Scene.Click()
	if len(ts.ClickEvents) != 0 {
		t.Fatalf("click at empty corner should not select, got %v", ts.ClickEvents)
	}

	ts.Scene.PointerMove(sx, sy, ts.Time+1)
	ts.Scene.Click()
	if len(ts.ClickEvents) != 1 || ts.ClickEvents[0] != "core" {
		t.Fatalf("expected core click, got %v", ts.ClickEvents)
	}
}

func TestPointer_ZeroModulesIsNoop(t *testing.T) {
	ts := NewTestScene(WithSeed(1), WithModules())
	ts.MoveTo(640, 360)
	ts.Time += pointerThrottle
	ts.MoveTo(642, 361)
	if len(ts.HoverEvents) != 0 {
		t.Fatalf("no modules: expected no hover events, got %v", ts.HoverEvents)
	}
	ts.Scene.Click()
	if len(ts.ClickEvents) != 0 {
		t.Fatalf("no modules: expected no click events, got %v", ts.ClickEvents)
	}
}
