package netmap

// Resource is a handle to renderer-owned memory tied to one generation
// pass (shapes, materials, offscreen sprites). The scene allocates
// exactly one per node and one per edge when it rebuilds, and disposes
// every one of them on every teardown path — tier change, module-list
// change, unmount. A missed dispose is a graphics-memory leak, so the
// balance is asserted in tests rather than checked at runtime.
type Resource interface {
	Dispose()
}

// ResourceFactory allocates render resources during a generation pass.
// The interactive viewer backs this with real sprite images; headless
// callers use a CountingFactory.
type ResourceFactory interface {
	NodeResource(n *Node) Resource
	EdgeResource(e *Edge) Resource
}

// CountingFactory allocates no real memory; it only tracks the
// alloc/dispose balance so tests and the headless report can verify the
// teardown invariant.
type CountingFactory struct {
	Allocs   int
	Disposes int
}

func (f *CountingFactory) NodeResource(*Node) Resource {
	f.Allocs++
	return countedResource{f}
}

func (f *CountingFactory) EdgeResource(*Edge) Resource {
	f.Allocs++
	return countedResource{f}
}

// Balanced reports whether every allocation has been disposed.
func (f *CountingFactory) Balanced() bool {
	return f.Allocs == f.Disposes
}

type countedResource struct {
	f *CountingFactory
}

func (r countedResource) Dispose() {
	r.f.Disposes++
}
