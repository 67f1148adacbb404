package netmap

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const glowSpriteSize = 64

// spriteFactory is the viewer's ResourceFactory: it allocates a white
// radial glow sprite for every medium and module node and tracks every
// allocation in a ledger so the teardown invariant stays checkable in
// the interactive build too. Small nodes and edges are drawn with plain
// vector shapes, so their resources carry no image.
type spriteFactory struct {
	ledger  CountingFactory
	sprites map[*Node]*ebiten.Image
}

func newSpriteFactory() *spriteFactory {
	return &spriteFactory{sprites: map[*Node]*ebiten.Image{}}
}

func (f *spriteFactory) NodeResource(n *Node) Resource {
	f.ledger.Allocs++
	if n.Class == ClassSmall {
		return &spriteResource{f: f}
	}
	img := newGlowSprite()
	f.sprites[n] = img
	return &spriteResource{f: f, node: n, img: img}
}

func (f *spriteFactory) EdgeResource(*Edge) Resource {
	f.ledger.Allocs++
	return &spriteResource{f: f}
}

// sprite returns the glow image for a node, nil for classes without one.
func (f *spriteFactory) sprite(n *Node) *ebiten.Image {
	return f.sprites[n]
}

type spriteResource struct {
	f    *spriteFactory
	node *Node
	img  *ebiten.Image
}

func (r *spriteResource) Dispose() {
	r.f.ledger.Disposes++
	if r.img != nil {
		delete(r.f.sprites, r.node)
		r.img.Deallocate()
	}
}

// newGlowSprite renders a soft white radial falloff once; the viewer
// tints and scales it per frame with a ColorScale.
func newGlowSprite() *ebiten.Image {
	img := ebiten.NewImage(glowSpriteSize, glowSpriteSize)
	centre := float32(glowSpriteSize) / 2
	steps := 12
	for i := steps; i >= 1; i-- {
		frac := float32(i) / float32(steps)
		a := uint8(230 * (1 - frac)) // brighter toward the centre
		vector.FillCircle(img, centre, centre, centre*frac,
			color.RGBA{R: a, G: a, B: a, A: a}, true)
	}
	return img
}
