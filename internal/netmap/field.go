package netmap

import (
	"math"
	"math/rand"
)

// placeAttempts caps candidate draws per node. Exhausting the cap skips
// the node: under tight clearances the field simply comes out sparser
// than requested, which is the intended degradation, not an error.
const placeAttempts = 50

// GenerateField places the decorative background nodes for the current
// camera. Candidates are drawn in a polar band around the origin with
// class-specific radii and depth jitter, and accepted only when they sit
// inside the frustum bound at their own depth and keep the class
// clearance from every module anchor. The returned slice holds at most
// Small.Count+Medium.Count nodes.
func GenerateField(rng *rand.Rand, cfg FieldConfig, cam Camera, modules []Module) []*Node {
	nodes := make([]*Node, 0, cfg.Small.Count+cfg.Medium.Count)
	nodes = appendClass(nodes, rng, ClassSmall, cfg.Small, cfg.FrustumMargin, cam, modules)
	nodes = appendClass(nodes, rng, ClassMedium, cfg.Medium, cfg.FrustumMargin, cam, modules)
	return nodes
}

func appendClass(nodes []*Node, rng *rand.Rand, class NodeClass, cc ClassConfig, margin float64, cam Camera, modules []Module) []*Node {
	for i := 0; i < cc.Count; i++ {
		base, ok := placeOne(rng, cc, margin, cam, modules)
		if !ok {
			continue // cap exhausted, accept a sparser field
		}
		n := &Node{
			Class: class,
			Base:  base,
			Pos:   base,
			Phase: [3]float64{
				rng.Float64() * 2 * math.Pi,
				rng.Float64() * 2 * math.Pi,
				rng.Float64() * 2 * math.Pi,
			},
			Scale:     1,
			GlowAngle: rng.Float64() * 2 * math.Pi,
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// placeOne draws candidates until one satisfies both constraints or the
// attempt cap runs out.
func placeOne(rng *rand.Rand, cc ClassConfig, margin float64, cam Camera, modules []Module) (Vec3, bool) {
	for attempt := 0; attempt < placeAttempts; attempt++ {
		theta := rng.Float64() * 2 * math.Pi
		radius := cc.RadiusMin + rng.Float64()*(cc.RadiusMax-cc.RadiusMin)
		p := Vec3{
			X: math.Cos(theta) * radius,
			Y: math.Sin(theta) * radius,
			Z: (rng.Float64()*2 - 1) * cc.DepthJitter,
		}
		if !cam.Contains(p, margin) {
			continue
		}
		if !clearsModules(p, cc.Clearance, modules) {
			continue
		}
		return p, true
	}
	return Vec3{}, false
}

func clearsModules(p Vec3, clearance float64, modules []Module) bool {
	for _, m := range modules {
		if p.Dist(m.Pos) < clearance {
			return false
		}
	}
	return true
}

// ModuleNodes builds the interactive node for each anchor. Module nodes
// keep their configured base position exactly; only the animator moves
// them, and only while unhovered.
func ModuleNodes(rng *rand.Rand, modules []Module) []*Node {
	out := make([]*Node, 0, len(modules))
	for _, m := range modules {
		out = append(out, &Node{
			Class:    ClassModule,
			Base:     m.Pos,
			Pos:      m.Pos,
			ModuleID: m.ID,
			Color:    m.Color,
			Phase: [3]float64{
				rng.Float64() * 2 * math.Pi,
				rng.Float64() * 2 * math.Pi,
				rng.Float64() * 2 * math.Pi,
			},
			Scale:  1,
			Motion: MotionState{Kind: motionActive},
		})
	}
	return out
}
