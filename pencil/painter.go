package pencil

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/dreamscape"
)

// Stroke styling.
const (
	textureAlpha  = 0.6 // straight second pass under a sketch line
	petalAlpha    = 0.8
	petalWidth    = 1
	cloudFill     = 0.8
	cloudWidth    = 1.5
	birdWidth     = 2
	boltWidth     = 2
	boltGlowWidth = 8
	boltGlowAlpha = 0.25
)

// Painter draws a dreamscape.Scene onto an ebiten image in pencil style. It
// implements dreamscape.Canvas. The wobble of every stroke comes from its own
// random source so that rendering never disturbs the simulation.
type Painter struct {
	dst       *ebiten.Image
	rng       *rand.Rand
	roughness float64
	w, h      float32
}

var _ dreamscape.Canvas = (*Painter)(nil)

// NewPainter returns a painter whose stroke jitter is seeded by seed.
func NewPainter(seed uint64) *Painter {
	return &Painter{rng: dreamscape.NewRand(seed)}
}

// Begin targets dst for the following Canvas calls, with stroke wobble taken
// from the texture strength.
func (p *Painter) Begin(dst *ebiten.Image, params dreamscape.Params) {
	p.dst = dst
	b := dst.Bounds()
	p.w, p.h = float32(b.Dx()), float32(b.Dy())
	p.roughness = Roughness(params.TextureStrength)
}

// Tint implements dreamscape.Canvas.
func (p *Painter) Tint(c dreamscape.Color, alpha float64) {
	vector.DrawFilledRect(p.dst, 0, 0, p.w, p.h, c.WithAlpha(alpha), false)
}

// Flash implements dreamscape.Canvas.
func (p *Painter) Flash(alpha float64) {
	vector.DrawFilledRect(p.dst, 0, 0, p.w, p.h, dreamscape.ColorWhite.WithAlpha(alpha), false)
}

// Lightning implements dreamscape.Canvas.
func (p *Painter) Lightning(x, y, height float64) {
	main, branches := LightningPath(dreamscape.Vec2{X: x, Y: y}, height, p.rng)
	glow := dreamscape.ColorBolt.WithAlpha(boltGlowAlpha)
	p.path(main, boltGlowWidth, glow)
	p.path(main, boltWidth, dreamscape.ColorBolt)
	for _, s := range branches {
		p.segment(s.A, s.B, boltWidth, dreamscape.ColorBolt)
	}
}

// SketchLine implements dreamscape.Canvas.
func (p *Painter) SketchLine(x1, y1, x2, y2 float64, c dreamscape.Color, width float64) {
	a, b := dreamscape.Vec2{X: x1, Y: y1}, dreamscape.Vec2{X: x2, Y: y2}
	p.path(SketchLine(a, b, p.roughness, p.rng), width, c)
	p.segment(a, b, width*0.5, c.WithAlpha(c.A*textureAlpha))
}

// Flower implements dreamscape.Canvas.
func (p *Painter) Flower(x, y, radius float64, petals int, c dreamscape.Color, alpha float64) {
	center := dreamscape.Vec2{X: x, Y: y}
	stroke := c.WithAlpha(petalAlpha * alpha)
	for _, petal := range Petals(center, radius, petals, p.rng) {
		p.path(petal, petalWidth, stroke)
	}
	r := float32(FlowerCenter(radius))
	vector.DrawFilledCircle(p.dst, float32(x), float32(y), r, dreamscape.ColorYellow.WithAlpha(alpha), true)
}

// Cloud implements dreamscape.Canvas.
func (p *Painter) Cloud(x, y, radius, complexity, alpha float64) {
	center := dreamscape.Vec2{X: x, Y: y}
	fill := dreamscape.ColorWhite.WithAlpha(cloudFill * alpha)
	for _, puff := range Puffs(center, radius, complexity, p.rng) {
		vector.DrawFilledCircle(p.dst, float32(puff.Center.X), float32(puff.Center.Y), float32(puff.R), fill, true)
	}
	line := dreamscape.ColorGraphite.WithAlpha(alpha)
	for _, arc := range CloudOutline(center, radius, complexity, p.rng) {
		p.path(arc, cloudWidth, line)
	}
}

// Bird implements dreamscape.Canvas.
func (p *Painter) Bird(x, y, phase float64, c dreamscape.Color, perched bool) {
	for _, s := range BirdShape(dreamscape.Vec2{X: x, Y: y}, phase, perched) {
		p.path(s, birdWidth, c)
	}
}

func (p *Painter) path(pts Path, width float64, c dreamscape.Color) {
	for i := 1; i < len(pts); i++ {
		p.segment(pts[i-1], pts[i], width, c)
	}
}

func (p *Painter) segment(a, b dreamscape.Vec2, width float64, c dreamscape.Color) {
	vector.StrokeLine(p.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
}
