package netmap

import "image/color"

// NodeClass partitions nodes into the two decorative background classes
// and the interactive module class.
type NodeClass int

const (
	ClassSmall NodeClass = iota
	ClassMedium
	ClassModule
)

func (c NodeClass) String() string {
	switch c {
	case ClassSmall:
		return "small"
	case ClassMedium:
		return "medium"
	case ClassModule:
		return "module"
	}
	return "unknown"
}

// Connectable reports whether nodes of this class take part in edge
// generation. Small background nodes never connect.
func (c NodeClass) Connectable() bool {
	return c == ClassMedium || c == ClassModule
}

// RGB is a packed 24-bit colour (0xRRGGBB).
type RGB uint32

// RGBA expands the packed colour with the given alpha.
func (c RGB) RGBA(a uint8) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: a,
	}
}

// Module is a caller-owned interactive anchor. Identity (ID) persists
// across rebuilds; the engine never mutates it.
type Module struct {
	ID    string
	Label string
	Pos   Vec3
	Color RGB
}

// motionKind tags the module-node motion state machine.
type motionKind int

const (
	motionActive motionKind = iota
	motionPaused
)

// MotionState is the per-module-node motion state: either orbiting with
// the node's phase offsets, or frozen at a snapshot taken when the node
// became hovered.
type MotionState struct {
	Kind         motionKind
	Snapshot     Vec3    // valid when Kind == motionPaused
	SnapshotTime float64 // scene time of the Active→Paused transition
}

// Node is one element of the rendered field. Base is immutable after
// creation; Pos is derived from Base every frame and must never be
// written outside the animator.
type Node struct {
	Class NodeClass
	Base  Vec3
	Pos   Vec3
	Phase [3]float64 // per-axis oscillation phase offsets

	// Module-class fields.
	ModuleID string
	Motion   MotionState

	Color RGB

	// Animated visual attributes.
	Scale     float64 // eased toward scaleTarget, 1.0 at rest
	Glow      float64 // pulse intensity in [0,1]
	GlowAngle float64 // medium-node glow sub-shape rotation, radians
}

// Edge connects two connectable nodes. It holds live pointers so the
// renderer always sees the animated endpoint positions; BaseOpacity is
// cached once when the edge set is built.
type Edge struct {
	A, B        *Node
	BaseOpacity float64
	Opacity     float64
}

// TouchesModule reports whether either endpoint is a module node. Edge
// flow pulses run inward on these edges (sign-flipped phase).
func (e *Edge) TouchesModule() bool {
	return e.A.Class == ClassModule || e.B.Class == ClassModule
}
