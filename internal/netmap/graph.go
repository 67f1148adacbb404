package netmap

// BuildEdges derives the edge set over the connectable nodes: one edge
// per unordered pair whose base-position distance is under the connect
// threshold. The set is always built from scratch; rebuild-on-change is
// the only mutation model, so edges never need patching.
func BuildEdges(nodes []*Node, cfg GraphConfig) []*Edge {
	connectable := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Class.Connectable() {
			connectable = append(connectable, n)
		}
	}

	var edges []*Edge
	for i := 0; i < len(connectable); i++ {
		for j := i + 1; j < len(connectable); j++ {
			a, b := connectable[i], connectable[j]
			d := a.Base.Dist(b.Base)
			if d >= cfg.ConnectThreshold {
				continue
			}
			base := baseOpacity(d, cfg)
			edges = append(edges, &Edge{
				A:           a,
				B:           b,
				BaseOpacity: base,
				Opacity:     base,
			})
		}
	}
	return edges
}

// baseOpacity fades linearly with distance and floors at the configured
// minimum so long edges stay faintly visible instead of vanishing.
func baseOpacity(dist float64, cfg GraphConfig) float64 {
	o := 1 - dist/cfg.ConnectThreshold
	if o < cfg.MinBaseOpacity {
		o = cfg.MinBaseOpacity
	}
	return o
}
