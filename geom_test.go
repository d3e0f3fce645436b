package dreamscape

import "testing"

func TestDistance(t *testing.T) {
	if d := Distance(Vec2{0, 0}, Vec2{3, 4}); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if d := Distance(Vec2{1, 1}, Vec2{1, 1}); d != 0 {
		t.Errorf("Distance to self = %v, want 0", d)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{10, 20, 0.05, 10.5},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); !approx(got, tt.want, 1e-12) {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestAngleDeg(t *testing.T) {
	tests := []struct {
		b    Vec2
		want float64
	}{
		{Vec2{1, 0}, 0},
		{Vec2{0, 1}, 90},
		{Vec2{-1, 0}, 180},
		{Vec2{0, -1}, -90},
	}
	for _, tt := range tests {
		if got := AngleDeg(Vec2{}, tt.b); !approx(got, tt.want, 1e-9) {
			t.Errorf("AngleDeg(0, %v) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestMapRangeUnclamped(t *testing.T) {
	if got := MapRange(27.5, 10, 45, 0, 1); !approx(got, 0.5, 1e-12) {
		t.Errorf("MapRange mid = %v, want 0.5", got)
	}
	if got := MapRange(80, 10, 45, 0, 1); got <= 1 {
		t.Errorf("MapRange should not clamp, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.3, 0, 1) != 0.3 {
		t.Error("Clamp out of range")
	}
}

func TestHex(t *testing.T) {
	c := Hex("#FF8000")
	if c.R != 1 || !approx(c.G, 128.0/255, 1e-12) || c.B != 0 || c.A != 1 {
		t.Errorf("Hex = %+v", c)
	}
	if bad := Hex("nope"); bad != (Color{A: 1}) {
		t.Errorf("Hex malformed = %+v, want opaque black", bad)
	}
}

func TestRangeRandomWithinBounds(t *testing.T) {
	rng := NewRand(3)
	r := Range{2, 5}
	for range 1000 {
		v := r.Random(rng)
		if v < 2 || v >= 5 {
			t.Fatalf("Random = %v out of [2, 5)", v)
		}
	}
	if v := (Range{4, 4}).Random(rng); v != 4 {
		t.Errorf("degenerate Random = %v, want 4", v)
	}
}
