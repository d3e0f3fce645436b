package dreamscape

import (
	"math/rand/v2"
	"strconv"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to an image package.
type Color struct {
	R, G, B, A float64
}

// RGBA implements color.Color, returning premultiplied 16-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A) * 0xffff)
	r = uint32(clamp01(c.R*c.A) * 0xffff)
	g = uint32(clamp01(c.G*c.A) * 0xffff)
	b = uint32(clamp01(c.B*c.A) * 0xffff)
	return
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Hex parses "#RRGGBB" (or "RRGGBB") into an opaque Color. Malformed input
// yields opaque black.
func Hex(s string) Color {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return Color{A: 1}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{A: 1}
	}
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}
}

// Pencil palette.
var (
	ColorGraphite = Hex("#3B3B3B")
	ColorBlue     = Hex("#8EB7E0")
	ColorPaper    = Hex("#F8F1E3")
	ColorYellow   = Hex("#F2C94C")
	ColorBolt     = Hex("#FFF9E3")
	ColorUmber    = Hex("#AA9988")
	ColorWhite    = Color{1, 1, 1, 1}
)

// FlowerColors is the palette new flowers draw from.
var FlowerColors = []Color{
	Hex("#F6A7C1"), // pink
	Hex("#FFBC9A"), // peach
	Hex("#FFE873"), // soft yellow
	Hex("#A8E6CF"), // mint green
	Hex("#C7B8E0"), // lilac
	Hex("#8EB7E0"), // sky blue
}

// Vec2 is a 2D vector used for positions and velocities in screen space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// NewRand returns a deterministic PCG-backed source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
