package netmap

// TestScene is a headless scene harness used by tests and the report
// command. It has no Ebiten dependency: it drives the scene with an
// explicit clock, records every hover/click callback, and closes the
// hover feedback loop the way a real caller would.
type TestScene struct {
	Scene   *Scene
	Factory *CountingFactory

	// Callback log, in arrival order. Hover entries are the hovered id
	// or "" for hover-cleared.
	HoverEvents []string
	ClickEvents []string

	Time float64
}

type sceneParams struct {
	cfg        Config
	tier       Tier
	seed       int64
	w, h       int
	modules    []Module
	modulesSet bool
}

// SceneOption configures a TestScene before construction.
type SceneOption func(*sceneParams)

// WithConfig replaces the whole scene config.
func WithConfig(cfg Config) SceneOption {
	return func(p *sceneParams) { p.cfg = cfg }
}

// WithTier sets the initial breakpoint tier.
func WithTier(t Tier) SceneOption {
	return func(p *sceneParams) { p.tier = t }
}

// WithSeed sets the generation RNG seed for deterministic layouts.
func WithSeed(seed int64) SceneOption {
	return func(p *sceneParams) { p.seed = seed }
}

// WithSurfaceSize sets the initial surface size. Zero defers generation.
func WithSurfaceSize(w, h int) SceneOption {
	return func(p *sceneParams) { p.w, p.h = w, h }
}

// WithModules overrides the module list; an empty (non-nil call) list
// exercises the zero-module degradation paths.
func WithModules(modules ...Module) SceneOption {
	return func(p *sceneParams) {
		p.modules = modules
		p.modulesSet = true
	}
}

// NewTestScene builds a generated headless scene: desktop tier,
// 1280×720 surface, seed 1 and the default module set unless options
// say otherwise.
func NewTestScene(opts ...SceneOption) *TestScene {
	p := sceneParams{
		cfg:  DefaultConfig(),
		tier: TierDesktop,
		seed: 1,
		w:    1280,
		h:    720,
	}
	for _, o := range opts {
		o(&p)
	}

	ts := &TestScene{Factory: &CountingFactory{}}
	ts.Scene = NewScene(p.cfg, p.tier, p.seed, ts.Factory, Callbacks{
		OnNodeHover: func(id string, ok bool) {
			ts.HoverEvents = append(ts.HoverEvents, id)
			// Feed the hover back in, as the embedding page does.
			ts.Scene.SetHovered(id)
		},
		OnNodeClick: func(id string) {
			ts.ClickEvents = append(ts.ClickEvents, id)
		},
	})
	if p.modulesSet {
		ts.Scene.SetModules(p.modules)
	}
	ts.Scene.SetSurfaceSize(p.w, p.h)
	return ts
}

// RunFrames advances the scene clock by n frames of dt seconds each.
func (ts *TestScene) RunFrames(n int, dt float64) {
	for i := 0; i < n; i++ {
		ts.Time += dt
		ts.Scene.Step(ts.Time)
	}
}

// MoveTo feeds one pointer-move at the current scene time.
func (ts *TestScene) MoveTo(x, y float64) {
	ts.Scene.PointerMove(x, y, ts.Time)
}

// MoveOverModule positions the pointer on a module node's projected
// centre and runs a hit test. Returns false when the module is unknown
// or projects off-surface.
func (ts *TestScene) MoveOverModule(id string) bool {
	n := ts.Scene.moduleNode(id)
	if n == nil {
		return false
	}
	sx, sy, ok := ts.Scene.Camera().Project(n.Pos, ts.Scene.w, ts.Scene.h)
	if !ok {
		return false
	}
	// Step past the throttle window so the test always runs.
	ts.Time += pointerThrottle
	ts.Scene.PointerMove(sx, sy, ts.Time)
	return true
}

// LastHover returns the most recent hover event, or "" when none fired.
func (ts *TestScene) LastHover() string {
	if len(ts.HoverEvents) == 0 {
		return ""
	}
	return ts.HoverEvents[len(ts.HoverEvents)-1]
}
