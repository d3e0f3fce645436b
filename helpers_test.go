package dreamscape

import "math"

const poseLen = 33
const handLen = 21

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func seen(x, y float64) Landmark {
	return Landmark{X: x, Y: y, Visibility: 1}
}

// pose returns a full-length pose array with only the given landmarks set.
func pose(set map[int]Landmark) []Landmark {
	p := make([]Landmark, poseLen)
	for i, lm := range set {
		p[i] = lm
	}
	return p
}

// handAt builds a hand at wrist (x, y) whose middle fingertip sits reach
// above the wrist and whose knuckle sits 0.1 above it. Thumb and index tips
// are gap apart.
func handAt(x, y, reach, gap float64) []Landmark {
	h := make([]Landmark, handLen)
	for i := range h {
		h[i] = Landmark{X: x, Y: y}
	}
	h[HandMiddleMCP] = Landmark{X: x, Y: y - 0.1}
	h[HandMiddleTip] = Landmark{X: x, Y: y - reach}
	h[HandThumbTip] = Landmark{X: x - gap/2, Y: y - 0.05}
	h[HandIndexTip] = Landmark{X: x + gap/2, Y: y - 0.05}
	return h
}

func openHand() []Landmark { return handAt(0.5, 0.6, 0.3, 0.2) }
func fist() []Landmark     { return handAt(0.5, 0.6, 0.1, 0.2) }
func tapHand() []Landmark  { return handAt(0.5, 0.6, 0.1, 0.01) }

// raisedSnapshot has both shoulders at y=0.5 and the left wrist delta above
// its shoulder.
func raisedSnapshot(delta float64) *Snapshot {
	return &Snapshot{Pose: pose(map[int]Landmark{
		PoseLeftShoulder:  seen(0.4, 0.5),
		PoseRightShoulder: seen(0.6, 0.5),
		PoseLeftWrist:     seen(0.4, 0.5-delta),
		PoseRightWrist:    seen(0.6, 0.7),
	})}
}

// recordingCanvas records every call as a command.
type recordingCanvas struct {
	calls []Command
}

func (c *recordingCanvas) Tint(col Color, alpha float64) {
	c.calls = append(c.calls, Command{Type: CommandTint, Color: col, Alpha: alpha})
}

func (c *recordingCanvas) Flash(alpha float64) {
	c.calls = append(c.calls, Command{Type: CommandFlash, Alpha: alpha})
}

func (c *recordingCanvas) Lightning(x, y, height float64) {
	c.calls = append(c.calls, Command{Type: CommandBolt, X: x, Y: y, Size: height})
}

func (c *recordingCanvas) SketchLine(x1, y1, x2, y2 float64, col Color, width float64) {
	c.calls = append(c.calls, Command{Type: CommandRain, X: x1, Y: y1, X2: x2, Y2: y2, Color: col, Width: width})
}

func (c *recordingCanvas) Flower(x, y, radius float64, petals int, col Color, alpha float64) {
	c.calls = append(c.calls, Command{Type: CommandFlower, X: x, Y: y, Size: radius, Petals: petals, Color: col, Alpha: alpha})
}

func (c *recordingCanvas) Cloud(x, y, radius, complexity, alpha float64) {
	c.calls = append(c.calls, Command{Type: CommandCloud, X: x, Y: y, Size: radius, Complexity: complexity, Alpha: alpha})
}

func (c *recordingCanvas) Bird(x, y, phase float64, col Color, perched bool) {
	c.calls = append(c.calls, Command{Type: CommandBird, X: x, Y: y, Phase: phase, Color: col, Perched: perched})
}
