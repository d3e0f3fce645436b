package pencil

import (
	"image"
	"math"

	"github.com/aquilax/go-perlin"
)

// Paper grain noise parameters.
const (
	grainAlpha = 2.0
	grainBeta  = 2.0
	grainOct   = 3
	grainScale = 0.08 // noise units per pixel
	grainMax   = 90   // alpha at full texture strength
)

// Grain is a static paper-fibre texture generated from Perlin noise.
type Grain struct {
	noise *perlin.Perlin
}

// NewGrain returns a grain generator for seed.
func NewGrain(seed int64) *Grain {
	return &Grain{noise: perlin.NewPerlin(grainAlpha, grainBeta, grainOct, seed)}
}

// Alpha returns the grain darkness at pixel (x, y) for a texture strength in
// [0, 1].
func (g *Grain) Alpha(x, y int, strength float64) uint8 {
	if strength <= 0 {
		return 0
	}
	n := g.noise.Noise2D(float64(x)*grainScale, float64(y)*grainScale)
	return uint8(math.Min(math.Abs(n), 1) * strength * grainMax)
}

// Image renders a w x h grain layer: graphite specks with alpha from Alpha.
func (g *Grain) Image(w, h int, strength float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			i := img.PixOffset(x, y)
			img.Pix[i] = 0x3B
			img.Pix[i+1] = 0x3B
			img.Pix[i+2] = 0x3B
			img.Pix[i+3] = g.Alpha(x, y, strength)
		}
	}
	return img
}
