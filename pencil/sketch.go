package pencil

import (
	"math"
	"math/rand/v2"

	"github.com/phanxgames/dreamscape"
)

// Path is an open polyline.
type Path []dreamscape.Vec2

// Segment is a single straight stroke.
type Segment struct {
	A, B dreamscape.Vec2
}

// Puff is one filled circle of a cloud body.
type Puff struct {
	Center dreamscape.Vec2
	R      float64
}

// Stroke geometry constants, in pixels.
const (
	sketchStep     = 5
	baseRoughness  = 1.5
	curveSegments  = 12
	petalStrokes   = 4
	petalJitter    = 0.2 // of flower radius
	flowerCenter   = 0.2 // of flower radius
	puffOffsetX    = 0.5
	puffOffsetY    = 0.3
	puffMin        = 0.4
	puffSpan       = 0.3
	puffJitterX    = 10
	puffJitterY    = 5
	outlineStep    = 0.5 // radians
	outlineJitter  = 2
	wingSpan       = 15
	wingLift       = 10
	perchedHalf    = 8
	boltStepMin    = 10
	boltStepSpan   = 30
	boltSwing      = 60
	boltBranchOdds = 0.3
	boltBranchDrop = 30
	boltBranchLean = 40
)

// Roughness is the line jitter amplitude for a texture strength in [0, 1].
// The default strength of 0.5 gives the classic 1.5px wobble.
func Roughness(texture float64) float64 {
	return baseRoughness * 2 * texture
}

// jitter returns a value in [-amp/2, amp/2).
func jitter(rng *rand.Rand, amp float64) float64 {
	return (rng.Float64() - 0.5) * amp
}

// SketchLine breaks a→b into roughly 5px steps and wobbles every point after
// the first by up to roughness/2 on each axis.
func SketchLine(a, b dreamscape.Vec2, roughness float64, rng *rand.Rand) Path {
	steps := max(1, int(math.Floor(dreamscape.Distance(a, b)/sketchStep)))
	p := make(Path, 0, steps+1)
	p = append(p, a)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p = append(p, dreamscape.Vec2{
			X: dreamscape.Lerp(a.X, b.X, t) + jitter(rng, roughness),
			Y: dreamscape.Lerp(a.Y, b.Y, t) + jitter(rng, roughness),
		})
	}
	return p
}

// Quad flattens a quadratic Bézier into n segments.
func Quad(p0, c, p1 dreamscape.Vec2, n int) Path {
	p := make(Path, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		p[i] = dreamscape.Vec2{
			X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
			Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
		}
	}
	return p
}

// Cubic flattens a cubic Bézier into n segments.
func Cubic(p0, c1, c2, p1 dreamscape.Vec2, n int) Path {
	p := make(Path, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		p[i] = dreamscape.Vec2{
			X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
			Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
		}
	}
	return p
}

// Petals returns the scribbled petal curves of a flower: petalStrokes loops
// per petal, each leaving the centre, reaching out to the petal tip and
// curling back.
func Petals(center dreamscape.Vec2, radius float64, petals int, rng *rand.Rand) []Path {
	out := make([]Path, 0, petals*petalStrokes)
	jit := radius * petalJitter
	for i := range petals {
		angle := 2 * math.Pi * float64(i) / float64(petals)
		tip := dreamscape.Vec2{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
		for range petalStrokes {
			c1 := dreamscape.Vec2{X: tip.X*0.5 + jitter(rng, jit), Y: tip.Y*0.5 + jitter(rng, jit)}
			c2 := dreamscape.Vec2{X: tip.X + jitter(rng, jit), Y: tip.Y + jitter(rng, jit)}
			end := dreamscape.Vec2{X: tip.X * 0.2, Y: tip.Y * 0.2}
			out = append(out, Cubic(center, center.Add(c1), center.Add(c2), center.Add(end), curveSegments))
		}
	}
	return out
}

// FlowerCenter is the radius of the filled centre of a flower.
func FlowerCenter(radius float64) float64 {
	return radius * flowerCenter
}

// PuffCount is the number of puffs a cloud has at the given complexity.
func PuffCount(complexity float64) int {
	return 3 + int(math.Floor(complexity*5))
}

// Puffs lays out the filled body of a cloud around center.
func Puffs(center dreamscape.Vec2, size, complexity float64, rng *rand.Rand) []Puff {
	n := PuffCount(complexity)
	out := make([]Puff, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Puff{
			Center: dreamscape.Vec2{
				X: center.X + math.Cos(angle)*size*puffOffsetX + jitter(rng, puffJitterX),
				Y: center.Y + math.Sin(angle)*size*puffOffsetY + jitter(rng, puffJitterY),
			},
			R: size * (puffMin + rng.Float64()*puffSpan),
		}
	}
	return out
}

// CloudOutline returns the wobbly arcs drawn over a cloud body.
func CloudOutline(center dreamscape.Vec2, size, complexity float64, rng *rand.Rand) []Path {
	n := PuffCount(complexity)
	out := make([]Path, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) / float64(n)
		o := dreamscape.Vec2{
			X: center.X + math.Cos(angle)*size*puffOffsetX,
			Y: center.Y + math.Sin(angle)*size*puffOffsetY,
		}
		r := size * (puffMin + rng.Float64()*puffSpan)
		p := Path{{X: o.X + r, Y: o.Y}}
		for a := 0.0; a < 2*math.Pi; a += outlineStep {
			p = append(p, dreamscape.Vec2{
				X: o.X + math.Cos(a)*r + jitter(rng, outlineJitter),
				Y: o.Y + math.Sin(a)*r + jitter(rng, outlineJitter),
			})
		}
		out[i] = p
	}
	return out
}

// BirdShape returns the strokes of a bird at pos. A flying bird's wingtips
// swing by sin(phase)·10; a perched bird is a folded arc with a tail.
func BirdShape(pos dreamscape.Vec2, phase float64, perched bool) []Path {
	if perched {
		l := pos.Add(dreamscape.Vec2{X: -perchedHalf})
		r := pos.Add(dreamscape.Vec2{X: perchedHalf})
		return []Path{
			Quad(l, pos.Add(dreamscape.Vec2{Y: -12}), r, curveSegments),
			{l, pos.Add(dreamscape.Vec2{Y: 5}), r},
		}
	}
	wingY := math.Sin(phase) * wingLift
	return []Path{
		Quad(pos.Add(dreamscape.Vec2{X: -wingSpan, Y: wingY}), pos.Add(dreamscape.Vec2{X: -5, Y: -5}), pos, curveSegments),
		Quad(pos.Add(dreamscape.Vec2{X: wingSpan, Y: wingY}), pos.Add(dreamscape.Vec2{X: 5, Y: -5}), pos, curveSegments),
	}
}

// LightningPath walks a jagged bolt down from origin until it has fallen
// height pixels. Each step drops 10 to 40px and swings up to 30px sideways;
// three steps in ten sprout a short branch.
func LightningPath(origin dreamscape.Vec2, height float64, rng *rand.Rand) (Path, []Segment) {
	main := Path{origin}
	var branches []Segment
	cur := origin
	for cur.Y < origin.Y+height {
		cur.Y += boltStepMin + rng.Float64()*boltStepSpan
		cur.X += jitter(rng, boltSwing)
		main = append(main, cur)
		if rng.Float64() < boltBranchOdds {
			branches = append(branches, Segment{
				A: cur,
				B: dreamscape.Vec2{X: cur.X + jitter(rng, boltBranchLean), Y: cur.Y + boltBranchDrop},
			})
		}
	}
	return main, branches
}
