package netmap

import (
	"fmt"
	"math"
)

// Tier is one of the five discrete responsive breakpoints. The camera
// distance is looked up per tier, never interpolated; a tier change
// therefore forces a full field rebuild because the frustum bound at
// generation time depends on it.
type Tier int

const (
	TierPhone Tier = iota
	TierPhablet
	TierTablet
	TierLaptop
	TierDesktop

	tierCount = 5
)

// tierDistances maps each breakpoint tier to its camera distance.
// Smaller surfaces pull the camera back so the full field stays in view.
var tierDistances = [tierCount]float64{14, 12, 10, 9, 8}

func (t Tier) String() string {
	switch t {
	case TierPhone:
		return "phone"
	case TierPhablet:
		return "phablet"
	case TierTablet:
		return "tablet"
	case TierLaptop:
		return "laptop"
	case TierDesktop:
		return "desktop"
	}
	return "unknown"
}

// Distance returns the camera distance for the tier. Out-of-range values
// clamp to the desktop tier.
func (t Tier) Distance() float64 {
	if t < 0 || int(t) >= tierCount {
		return tierDistances[tierCount-1]
	}
	return tierDistances[t]
}

// TierForWidth picks a breakpoint tier from a surface pixel width. This
// stands in for the responsive-detection collaborator that owns the
// breakpoint decision in the full application.
func TierForWidth(w int) Tier {
	switch {
	case w < 480:
		return TierPhone
	case w < 768:
		return TierPhablet
	case w < 1024:
		return TierTablet
	case w < 1440:
		return TierLaptop
	default:
		return TierDesktop
	}
}

// ParseTier parses a tier name as printed by Tier.String.
func ParseTier(s string) (Tier, error) {
	for t := Tier(0); t < tierCount; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q (want phone|phablet|tablet|laptop|desktop)", s)
}

// Camera is a perspective camera on the +Z axis looking at the origin.
// All of its math is pure so generation and picking run headless.
type Camera struct {
	FOV    float64 // vertical field of view, degrees
	Aspect float64 // width / height
	Dist   float64 // distance from the origin along +Z
}

func NewCamera(fov float64, tier Tier) Camera {
	return Camera{FOV: fov, Aspect: 1, Dist: tier.Distance()}
}

// tanHalfFOV is the half-height of the view volume at unit depth.
func (c Camera) tanHalfFOV() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

// FrustumBound returns the visible half-width and half-height of the
// view frustum at world depth z, shrunk by the inward safety margin so
// generated nodes do not hug the surface edge.
func (c Camera) FrustumBound(z, margin float64) (halfW, halfH float64) {
	depth := c.Dist - z
	if depth <= 0 {
		return 0, 0
	}
	halfH = c.tanHalfFOV() * depth * margin
	halfW = halfH * c.Aspect
	return halfW, halfH
}

// Contains reports whether p lies inside the frustum bound at its own
// depth, with the given inward margin.
func (c Camera) Contains(p Vec3, margin float64) bool {
	halfW, halfH := c.FrustumBound(p.Z, margin)
	if halfW <= 0 {
		return false
	}
	return math.Abs(p.X) <= halfW && math.Abs(p.Y) <= halfH
}

// Project maps a world point to surface pixel coordinates. ok is false
// when the point is behind the camera.
func (c Camera) Project(p Vec3, w, h int) (sx, sy float64, ok bool) {
	depth := c.Dist - p.Z
	if depth <= 1e-6 {
		return 0, 0, false
	}
	th := c.tanHalfFOV()
	ndcX := p.X / (depth * th * c.Aspect)
	ndcY := p.Y / (depth * th)
	sx = (ndcX + 1) / 2 * float64(w)
	sy = (1 - (ndcY+1)/2) * float64(h)
	return sx, sy, true
}

// Ray is a half-line from the camera through a surface pixel.
type Ray struct {
	Origin Vec3
	Dir    Vec3 // unit length
}

// ScreenRay builds the pick ray through pixel (sx, sy) on a w×h surface.
func (c Camera) ScreenRay(sx, sy float64, w, h int) Ray {
	ndcX := 2*sx/float64(w) - 1
	ndcY := 1 - 2*sy/float64(h)
	th := c.tanHalfFOV()
	dir := Vec3{
		X: ndcX * th * c.Aspect,
		Y: ndcY * th,
		Z: -1,
	}.Normalize()
	return Ray{Origin: Vec3{Z: c.Dist}, Dir: dir}
}

// HitSphere returns the nearest positive ray parameter at which the ray
// enters a sphere of radius r centred on centre. The bool is false when
// the ray misses.
func (r Ray) HitSphere(centre Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(centre)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
