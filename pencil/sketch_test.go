package pencil

import (
	"math"
	"testing"

	"github.com/phanxgames/dreamscape"
)

func TestRoughness(t *testing.T) {
	if r := Roughness(0.5); r != 1.5 {
		t.Errorf("Roughness(0.5) = %v, want 1.5", r)
	}
	if r := Roughness(0); r != 0 {
		t.Errorf("Roughness(0) = %v, want 0", r)
	}
}

func TestSketchLineSteps(t *testing.T) {
	rng := dreamscape.NewRand(1)
	a, b := dreamscape.Vec2{X: 0, Y: 0}, dreamscape.Vec2{X: 52, Y: 0}
	p := SketchLine(a, b, 1.5, rng)
	if len(p) != 11 {
		t.Fatalf("points = %d, want 11 (one every 5px)", len(p))
	}
	if p[0] != a {
		t.Errorf("first point = %v, want %v", p[0], a)
	}
	for i, pt := range p[1:] {
		wantX := 52 * float64(i+1) / 10
		if math.Abs(pt.X-wantX) > 0.75 || math.Abs(pt.Y) > 0.75 {
			t.Errorf("point %d = %v strays more than 0.75px from (%v, 0)", i+1, pt, wantX)
		}
	}

	short := SketchLine(a, dreamscape.Vec2{X: 2, Y: 1}, 0, rng)
	if len(short) != 2 || short[1] != (dreamscape.Vec2{X: 2, Y: 1}) {
		t.Errorf("short line = %v, want a single straight step", short)
	}
}

func TestBezierEndpoints(t *testing.T) {
	p0, c1, c2, p1 := dreamscape.Vec2{X: 0, Y: 0}, dreamscape.Vec2{X: 5, Y: 10}, dreamscape.Vec2{X: 15, Y: 10}, dreamscape.Vec2{X: 20, Y: 0}
	q := Quad(p0, c1, p1, 8)
	if len(q) != 9 || q[0] != p0 || q[8] != p1 {
		t.Errorf("Quad endpoints = %v .. %v (%d points)", q[0], q[len(q)-1], len(q))
	}
	c := Cubic(p0, c1, c2, p1, 8)
	if len(c) != 9 || c[0] != p0 || c[8] != p1 {
		t.Errorf("Cubic endpoints = %v .. %v (%d points)", c[0], c[len(c)-1], len(c))
	}
	if mid := c[4]; math.Abs(mid.X-10) > 1e-9 || math.Abs(mid.Y-7.5) > 1e-9 {
		t.Errorf("Cubic midpoint = %v, want (10, 7.5)", mid)
	}
}

func TestPetals(t *testing.T) {
	rng := dreamscape.NewRand(2)
	center := dreamscape.Vec2{X: 100, Y: 100}
	paths := Petals(center, 40, 6, rng)
	if len(paths) != 6*petalStrokes {
		t.Fatalf("paths = %d, want %d", len(paths), 6*petalStrokes)
	}
	for i, p := range paths {
		if p[0] != center {
			t.Errorf("petal stroke %d starts at %v, want the centre", i, p[0])
		}
		if d := dreamscape.Distance(center, p[len(p)-1]); math.Abs(d-8) > 1e-9 {
			t.Errorf("petal stroke %d ends %v from the centre, want 8", i, d)
		}
	}
	if FlowerCenter(40) != 8 {
		t.Errorf("FlowerCenter(40) = %v, want 8", FlowerCenter(40))
	}
}

func TestCloudGeometry(t *testing.T) {
	tests := []struct {
		complexity float64
		want       int
	}{
		{0.1, 3},
		{0.5, 5},
		{1, 8},
	}
	for _, tt := range tests {
		if got := PuffCount(tt.complexity); got != tt.want {
			t.Errorf("PuffCount(%v) = %d, want %d", tt.complexity, got, tt.want)
		}
	}

	rng := dreamscape.NewRand(3)
	puffs := Puffs(dreamscape.Vec2{X: 500, Y: 100}, 150, 0.5, rng)
	if len(puffs) != 5 {
		t.Fatalf("puffs = %d, want 5", len(puffs))
	}
	for _, p := range puffs {
		if p.R < 150*puffMin || p.R >= 150*(puffMin+puffSpan) {
			t.Errorf("puff radius %v out of range", p.R)
		}
	}
	outline := CloudOutline(dreamscape.Vec2{X: 500, Y: 100}, 150, 0.5, rng)
	if len(outline) != 5 {
		t.Errorf("outline arcs = %d, want 5", len(outline))
	}
}

func TestBirdShape(t *testing.T) {
	pos := dreamscape.Vec2{X: 50, Y: 50}
	flying := BirdShape(pos, math.Pi/2, false)
	if len(flying) != 2 {
		t.Fatalf("flying strokes = %d, want 2", len(flying))
	}
	left, right := flying[0][0], flying[1][0]
	if left != (dreamscape.Vec2{X: 35, Y: 60}) || right != (dreamscape.Vec2{X: 65, Y: 60}) {
		t.Errorf("wingtips = %v %v, want (35,60) (65,60)", left, right)
	}
	if end := flying[0][len(flying[0])-1]; end != pos {
		t.Errorf("wing ends at %v, want the body %v", end, pos)
	}

	perched := BirdShape(pos, 0, true)
	if len(perched) != 2 || perched[0][0] != (dreamscape.Vec2{X: 42, Y: 50}) {
		t.Errorf("perched shape = %v", perched)
	}
}

func TestLightningPath(t *testing.T) {
	rng := dreamscape.NewRand(4)
	origin := dreamscape.Vec2{X: 640, Y: 0}
	main, branches := LightningPath(origin, 400, rng)
	if main[0] != origin {
		t.Fatalf("bolt starts at %v, want %v", main[0], origin)
	}
	if last := main[len(main)-1]; last.Y < 400 {
		t.Errorf("bolt stops at y=%v, want at least 400", last.Y)
	}
	for i := 1; i < len(main); i++ {
		dy := main[i].Y - main[i-1].Y
		dx := main[i].X - main[i-1].X
		if dy < boltStepMin || dy >= boltStepMin+boltStepSpan || math.Abs(dx) > boltSwing/2 {
			t.Errorf("step %d = (%v, %v) out of range", i, dx, dy)
		}
	}
	for _, b := range branches {
		if math.Abs(b.B.Y-b.A.Y-boltBranchDrop) > 1e-9 {
			t.Errorf("branch drops %v, want %v", b.B.Y-b.A.Y, boltBranchDrop)
		}
	}
}
