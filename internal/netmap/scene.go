package netmap

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Callbacks are the scene's only outputs. The caller is expected to
// store the hovered id and feed it back through SetHovered, closing the
// loop that drives the hover pause state machine.
type Callbacks struct {
	OnNodeHover func(id string, ok bool) // ok=false means hover cleared, id empty
	OnNodeClick func(id string)
}

// Scene owns the generated field, the derived edge set, and all
// per-frame animation state. Everything runs on the host's frame
// callback: no goroutines, no locks — single ownership by construction.
// Rebuilds are synchronous full replacements, so the picker and
// animator never observe a half-built field.
type Scene struct {
	cfg       Config
	tier      Tier
	modules   []Module
	seed      int64
	factory   ResourceFactory
	callbacks Callbacks

	cam       Camera
	w, h      int
	generated bool

	nodes       []*Node // background nodes followed by module nodes
	moduleNodes []*Node
	edges       []*Edge
	resources   []Resource

	// Animator clock.
	lastTime float64
	hasTime  bool

	// Hover feedback from the caller.
	hovered string

	// Pointer state (see picker.go).
	pointerX, pointerY float64
	hasPointer         bool
	lastHitTest        float64
	hasHitTest         bool
	hitTests           int
	reportedHover      string
	cursorInteractive  bool
}

// NewScene builds an empty scene; nothing is generated until a valid
// surface size arrives through SetSurfaceSize.
func NewScene(cfg Config, tier Tier, seed int64, factory ResourceFactory, cb Callbacks) *Scene {
	if factory == nil {
		factory = &CountingFactory{}
	}
	return &Scene{
		cfg:       cfg,
		tier:      tier,
		modules:   cfg.ModuleList(),
		seed:      seed,
		factory:   factory,
		callbacks: cb,
	}
}

// SetSurfaceSize records the render-surface size and recomputes the
// camera aspect. The first valid size triggers generation; later
// resizes only update the projection. A zero size tears the scene down
// until a valid size is observed again.
func (s *Scene) SetSurfaceSize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	if w <= 0 || h <= 0 {
		s.teardown()
		return
	}
	s.cam.Aspect = float64(w) / float64(h)
	if !s.generated {
		s.rebuild()
		return
	}
	s.cam = Camera{FOV: s.cfg.Field.FOV, Aspect: s.cam.Aspect, Dist: s.tier.Distance()}
}

// SetTier switches the breakpoint tier. The camera distance changes
// with the tier and the generation-time frustum bound depends on it, so
// any change forces a full rebuild.
func (s *Scene) SetTier(t Tier) {
	if t == s.tier {
		return
	}
	s.tier = t
	s.rebuild()
}

// SetModules replaces the module list and rebuilds. Hover state
// survives only when the hovered id still exists.
func (s *Scene) SetModules(modules []Module) {
	s.modules = modules
	s.rebuild()
}

// SetHovered is the caller's hover feedback. An empty id clears it.
func (s *Scene) SetHovered(id string) {
	s.hovered = id
}

// Teardown disposes all render resources. Call on unmount.
func (s *Scene) Teardown() {
	s.teardown()
}

func (s *Scene) teardown() {
	for _, r := range s.resources {
		r.Dispose()
	}
	s.resources = nil
	s.nodes = nil
	s.moduleNodes = nil
	s.edges = nil
	s.generated = false
	s.hasTime = false
}

// rebuild regenerates the whole scene for the current configuration:
// dispose everything, place module nodes, sample the background field,
// derive edges, allocate render resources. The edge set is never
// patched incrementally.
func (s *Scene) rebuild() {
	s.teardown()
	if s.w <= 0 || s.h <= 0 {
		return
	}
	s.cam = Camera{
		FOV:    s.cfg.Field.FOV,
		Aspect: float64(s.w) / float64(s.h),
		Dist:   s.tier.Distance(),
	}

	rng := rand.New(rand.NewSource(s.seed)) // #nosec G404 -- layout generation, reproducibility wanted
	s.moduleNodes = ModuleNodes(rng, s.modules)
	background := GenerateField(rng, s.cfg.Field, s.cam, s.modules)
	s.nodes = append(background, s.moduleNodes...)
	s.edges = BuildEdges(s.nodes, s.cfg.Graph)

	for _, n := range s.nodes {
		s.resources = append(s.resources, s.factory.NodeResource(n))
	}
	for _, e := range s.edges {
		s.resources = append(s.resources, s.factory.EdgeResource(e))
	}
	s.generated = true

	if s.hovered != "" && s.moduleNode(s.hovered) == nil {
		s.hovered = ""
	}
	// Stale hover reports do not survive a rebuild either.
	s.reportedHover = ""
	s.cursorInteractive = false
}

// ModuleNode returns the node for a module id, nil when unknown.
func (s *Scene) ModuleNode(id string) *Node {
	return s.moduleNode(id)
}

func (s *Scene) moduleNode(id string) *Node {
	for _, n := range s.moduleNodes {
		if n.ModuleID == id {
			return n
		}
	}
	return nil
}

// Accessors. The returned slices are live engine state: read-only for
// callers, valid until the next rebuild.

func (s *Scene) Nodes() []*Node          { return s.nodes }
func (s *Scene) Edges() []*Edge          { return s.edges }
func (s *Scene) ModuleNodes() []*Node    { return s.moduleNodes }
func (s *Scene) Camera() Camera          { return s.cam }
func (s *Scene) Tier() Tier              { return s.tier }
func (s *Scene) Generated() bool         { return s.generated }
func (s *Scene) Hovered() string         { return s.hovered }
func (s *Scene) CursorInteractive() bool { return s.cursorInteractive }

// HitTests returns the number of pointer hit tests run so far. Useful
// for verifying the pointer-move throttle.
func (s *Scene) HitTests() int { return s.hitTests }

// NodeCount returns the number of nodes of the given class.
func (s *Scene) NodeCount(class NodeClass) int {
	c := 0
	for _, n := range s.nodes {
		if n.Class == class {
			c++
		}
	}
	return c
}

// DebugReport summarises the current scene for diagnostics; the viewer
// copies it to the clipboard on demand.
func (s *Scene) DebugReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- netmap scene report ---\n")
	fmt.Fprintf(&b, "seed=%d tier=%s dist=%.1f surface=%dx%d generated=%v\n",
		s.seed, s.tier, s.tier.Distance(), s.w, s.h, s.generated)
	fmt.Fprintf(&b, "nodes: small=%d/%d medium=%d/%d module=%d\n",
		s.NodeCount(ClassSmall), s.cfg.Field.Small.Count,
		s.NodeCount(ClassMedium), s.cfg.Field.Medium.Count,
		len(s.moduleNodes))
	fmt.Fprintf(&b, "edges=%d threshold=%.2f\n", len(s.edges), s.cfg.Graph.ConnectThreshold)
	fmt.Fprintf(&b, "hover=%q hit_tests=%d cursor_interactive=%v\n",
		s.hovered, s.hitTests, s.cursorInteractive)

	ids := make([]string, 0, len(s.moduleNodes))
	for _, n := range s.moduleNodes {
		ids = append(ids, n.ModuleID)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := s.moduleNode(id)
		state := "active"
		if n.Motion.Kind == motionPaused {
			state = fmt.Sprintf("paused@%.2fs", n.Motion.SnapshotTime)
		}
		fmt.Fprintf(&b, "  %-12s pos=(%.2f,%.2f,%.2f) scale=%.2f %s\n",
			id, n.Pos.X, n.Pos.Y, n.Pos.Z, n.Scale, state)
	}
	return b.String()
}
