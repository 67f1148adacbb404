package netmap

// pointerThrottle is the minimum interval between pointer-move hit
// tests, seconds. Moves arriving sooner update the remembered pointer
// position but run no cast.
const pointerThrottle = 0.016

// moduleHitRadius is the pick-sphere radius around a module node at
// scale 1. Background nodes are never pickable.
const moduleHitRadius = 0.45

// PointerMove feeds a pointer position in surface pixels at scene time
// now. Hit tests are throttled; hover callbacks fire only when the
// hovered module actually changes.
func (s *Scene) PointerMove(x, y, now float64) {
	s.pointerX, s.pointerY = x, y
	s.hasPointer = true
	if s.hasHitTest && now-s.lastHitTest < pointerThrottle {
		return
	}
	s.lastHitTest = now
	s.hasHitTest = true
	s.runHitTest()
}

// Click re-casts at the last known pointer position, unthrottled, and
// reports a hit module as selected. Clicks are rare enough that the
// extra cast costs nothing.
func (s *Scene) Click() {
	if !s.hasPointer {
		return
	}
	id, ok := s.castPointer()
	if ok && s.callbacks.OnNodeClick != nil {
		s.callbacks.OnNodeClick(id)
	}
}

func (s *Scene) runHitTest() {
	s.hitTests++
	id, ok := s.castPointer()
	s.cursorInteractive = ok
	switch {
	case ok && id != s.reportedHover:
		s.reportedHover = id
		if s.callbacks.OnNodeHover != nil {
			s.callbacks.OnNodeHover(id, true)
		}
	case !ok && s.reportedHover != "":
		s.reportedHover = ""
		if s.callbacks.OnNodeHover != nil {
			s.callbacks.OnNodeHover("", false)
		}
	}
}

// castPointer intersects the pick ray with module-class nodes only and
// returns the nearest hit. With no modules, or before generation, every
// cast is a miss.
func (s *Scene) castPointer() (string, bool) {
	if !s.generated || len(s.moduleNodes) == 0 || s.w <= 0 || s.h <= 0 {
		return "", false
	}
	ray := s.cam.ScreenRay(s.pointerX, s.pointerY, s.w, s.h)
	bestID := ""
	bestT := 0.0
	for _, n := range s.moduleNodes {
		t, hit := ray.HitSphere(n.Pos, moduleHitRadius*n.Scale)
		if !hit {
			continue
		}
		if bestID == "" || t < bestT {
			bestID, bestT = n.ModuleID, t
		}
	}
	return bestID, bestID != ""
}
