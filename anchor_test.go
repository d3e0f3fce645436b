package dreamscape

import "testing"

func TestBuildAnchorsMirrorsAndGates(t *testing.T) {
	snap := &Snapshot{Pose: pose(map[int]Landmark{
		PoseNose:          seen(0.5, 0.2),
		PoseLeftShoulder:  seen(0.25, 0.5),
		PoseRightShoulder: {X: 0.75, Y: 0.5, Visibility: 0.4},
		PoseLeftWrist:     seen(0.1, 0.8),
	})}
	a := BuildAnchors(snap, 1000, 500)

	tests := []struct {
		key  AnchorKey
		want Vec2
		ok   bool
	}{
		{AnchorHead, Vec2{500, 100}, true},
		{AnchorShoulderL, Vec2{750, 250}, true},
		{AnchorShoulderR, Vec2{}, false},
		{AnchorHandL, Vec2{900, 400}, true},
		{AnchorHandR, Vec2{}, false},
		{AnchorNone, Vec2{}, false},
	}
	for _, tt := range tests {
		got, ok := a.Get(tt.key)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("%v = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
	if a.Available() != 3 {
		t.Errorf("Available = %d, want 3", a.Available())
	}
}

func TestBuildAnchorsEmpty(t *testing.T) {
	a := BuildAnchors(nil, 1280, 720)
	if a.Available() != 0 {
		t.Errorf("Available = %d, want 0", a.Available())
	}
	if _, _, _, ok := a.Nearest(Vec2{}); ok {
		t.Error("Nearest on empty set should report no anchor")
	}
}

func TestNearestTieBreak(t *testing.T) {
	var a AnchorSet
	a.Set(AnchorHandR, Vec2{10, 0})
	a.Set(AnchorShoulderR, Vec2{-10, 0})
	a.Set(AnchorHead, Vec2{0, 50})

	key, pos, dist, ok := a.Nearest(Vec2{})
	if !ok || key != AnchorShoulderR || pos != (Vec2{-10, 0}) || dist != 10 {
		t.Errorf("Nearest = %v %v %v %v, want shoulder_r at distance 10", key, pos, dist, ok)
	}
}

func TestAnchorKeyText(t *testing.T) {
	for _, k := range AnchorKeys {
		b, err := k.MarshalText()
		if err != nil || string(b) != k.String() || k.String() == "none" {
			t.Errorf("MarshalText(%v) = %q, %v", k, b, err)
		}
	}
}
