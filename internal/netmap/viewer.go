package netmap

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// World-space draw radii per node class at scale 1.
const (
	smallRadius  = 0.05
	mediumRadius = 0.12
	moduleRadius = 0.30
)

// Viewer hosts a Scene inside an Ebiten window. It is the stand-in for
// the embedding page: it owns the render loop, feeds pointer input to
// the scene, closes the hover feedback loop, and maps window width to a
// breakpoint tier on resize.
type Viewer struct {
	scene  *Scene
	logger *log.Logger
	start  time.Time

	w, h           int
	selected       string
	prevMouseLeft  bool
	prevKeys       map[ebiten.Key]bool
	prevMX, prevMY int
	sprites        *spriteFactory
}

func NewViewer(cfg Config, seed int64, logger *log.Logger) *Viewer {
	v := &Viewer{
		logger:   logger,
		start:    time.Now(),
		prevKeys: map[ebiten.Key]bool{},
		prevMX:   -1,
		prevMY:   -1,
		sprites:  newSpriteFactory(),
	}
	v.scene = NewScene(cfg, TierDesktop, seed, v.sprites, Callbacks{
		OnNodeHover: func(id string, ok bool) {
			v.scene.SetHovered(id)
			if ok {
				logger.Debug("hover", "module", id)
			}
		},
		OnNodeClick: func(id string) {
			v.selected = id
			logger.Info("module selected", "module", id)
		},
	})
	return v
}

func (v *Viewer) Update() error {
	now := time.Since(v.start).Seconds()

	mx, my := ebiten.CursorPosition()
	if mx != v.prevMX || my != v.prevMY {
		v.scene.PointerMove(float64(mx), float64(my), now)
		v.prevMX, v.prevMY = mx, my
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !v.prevMouseLeft {
		v.scene.Click()
	}
	v.prevMouseLeft = left

	// Edge-triggered keys.
	currentKeys := map[ebiten.Key]bool{}
	currentKeys[ebiten.KeyC] = ebiten.IsKeyPressed(ebiten.KeyC)
	if currentKeys[ebiten.KeyC] && !v.prevKeys[ebiten.KeyC] {
		if err := clipboard.WriteAll(v.scene.DebugReport()); err != nil {
			v.logger.Warn("clipboard copy failed", "err", err)
		} else {
			v.logger.Info("scene report copied to clipboard")
		}
	}
	currentKeys[ebiten.KeyEscape] = ebiten.IsKeyPressed(ebiten.KeyEscape)
	if currentKeys[ebiten.KeyEscape] && !v.prevKeys[ebiten.KeyEscape] {
		v.selected = ""
	}
	v.prevKeys = currentKeys

	if v.scene.CursorInteractive() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}

	v.scene.Step(now)
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 10, B: 16, A: 255})
	if !v.scene.Generated() {
		return
	}
	cam := v.scene.Camera()

	// Edges first, under everything.
	for _, e := range v.scene.Edges() {
		ax, ay, okA := cam.Project(e.A.Pos, v.w, v.h)
		bx, by, okB := cam.Project(e.B.Pos, v.w, v.h)
		if !okA || !okB {
			continue
		}
		a := uint8(clamp(e.Opacity, 0, 1) * 255)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by),
			1, color.RGBA{R: 120, G: 160, B: 210, A: a}, true)
	}

	// Nodes back to front.
	for _, n := range depthSorted(v.scene.Nodes()) {
		sx, sy, ok := cam.Project(n.Pos, v.w, v.h)
		if !ok {
			continue
		}
		r := v.screenRadius(n, cam)
		switch n.Class {
		case ClassSmall:
			vector.FillCircle(screen, float32(sx), float32(sy), r,
				color.RGBA{R: 110, G: 130, B: 160, A: 200}, true)
		case ClassMedium:
			v.drawMedium(screen, n, sx, sy, r)
		case ClassModule:
			v.drawModule(screen, n, sx, sy, r)
		}
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tier=%s  nodes=%d  edges=%d  fps=%.0f",
		v.scene.Tier(), len(v.scene.Nodes()), len(v.scene.Edges()), ebiten.ActualFPS()), 8, 8)
	if v.selected != "" {
		ebitenutil.DebugPrintAt(screen, "selected: "+v.selected+"  (esc to clear)", 8, 24)
	}
}

func (v *Viewer) drawMedium(screen *ebiten.Image, n *Node, sx, sy float64, r float32) {
	if img := v.sprites.sprite(n); img != nil {
		drawSprite(screen, img, sx, sy, r*2.6, 1, 1, 1, 0.22)
	}
	vector.FillCircle(screen, float32(sx), float32(sy), r,
		color.RGBA{R: 150, G: 180, B: 215, A: 230}, true)
	// Rotating glow tick around the core.
	tick := orbitTick(sx, sy, float64(r), n.GlowAngle)
	vector.StrokeLine(screen, tick[0], tick[1], tick[2], tick[3],
		1.5, color.RGBA{R: 200, G: 225, B: 255, A: 160}, true)
}

func (v *Viewer) drawModule(screen *ebiten.Image, n *Node, sx, sy float64, r float32) {
	c := n.Color.RGBA(255)
	if img := v.sprites.sprite(n); img != nil {
		drawSprite(screen, img, sx, sy, r*3.2,
			float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(clamp(n.Glow, 0, 1)))
	}
	vector.FillCircle(screen, float32(sx), float32(sy), r, c, true)
	hovered := v.scene.Hovered() == n.ModuleID
	if hovered || v.selected == n.ModuleID {
		vector.StrokeCircle(screen, float32(sx), float32(sy), r*1.35, 1.5,
			color.RGBA{R: 255, G: 255, B: 255, A: 220}, true)
	}

	label := v.labelFor(n.ModuleID)
	if label == "" {
		return
	}
	face := basicfont.Face7x13
	lw := len(label) * 7
	lc := color.RGBA{R: 170, G: 185, B: 205, A: 255}
	if hovered {
		lc = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	text.Draw(screen, label, face, int(sx)-lw/2, int(sy)+int(r)+16, lc)
}

func (v *Viewer) labelFor(id string) string {
	for _, m := range v.scene.modules {
		if m.ID == id {
			return m.Label
		}
	}
	return id
}

// screenRadius converts a node's world draw radius to surface pixels at
// its current depth.
func (v *Viewer) screenRadius(n *Node, cam Camera) float32 {
	world := smallRadius
	switch n.Class {
	case ClassMedium:
		world = mediumRadius
	case ClassModule:
		world = moduleRadius
	}
	world *= n.Scale
	depth := cam.Dist - n.Pos.Z
	if depth <= 1e-6 {
		return 0
	}
	px := world / (depth * cam.tanHalfFOV()) * float64(v.h) / 2
	return float32(px)
}

// depthSorted orders nodes far to near so the painter's pass
// composites correctly. The camera looks down +Z, so far means small Z.
func depthSorted(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	sort.Slice(out, func(i, j int) bool { return out[i].Pos.Z < out[j].Pos.Z })
	return out
}

func orbitTick(sx, sy, r, angle float64) [4]float32 {
	in := r * 1.5
	out := r * 2.1
	c, s := math.Cos(angle), math.Sin(angle)
	return [4]float32{
		float32(sx + in*c), float32(sy + in*s),
		float32(sx + out*c), float32(sy + out*s),
	}
}

// Layout is the resize coordinator: it tracks the surface size, derives
// the breakpoint tier from the width, and lets the scene decide whether
// that forces a rebuild.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.w || outsideHeight != v.h {
		v.w, v.h = outsideWidth, outsideHeight
		v.scene.SetTier(TierForWidth(outsideWidth))
		v.scene.SetSurfaceSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Shutdown releases all scene resources. Call after RunGame returns.
func (v *Viewer) Shutdown() {
	v.scene.Teardown()
}

func drawSprite(screen, img *ebiten.Image, cx, cy float64, radiusPx, cr, cg, cb, ca float32) {
	if radiusPx <= 0 {
		return
	}
	b := img.Bounds()
	scale := float64(radiusPx) * 2 / float64(b.Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.Scale(cr, cg, cb, ca)
	screen.DrawImage(img, op)
}
