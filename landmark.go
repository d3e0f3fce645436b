package dreamscape

// Landmark is one estimator keypoint. X and Y are normalized to [0, 1] of the
// camera frame; Visibility is 0 when the estimator does not report it.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z,omitempty"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Point returns the landmark's normalized position.
func (l Landmark) Point() Vec2 {
	return Vec2{l.X, l.Y}
}

// Visible reports whether the landmark's confidence clears the 0.5 gate.
func (l Landmark) Visible() bool {
	return l.Visibility > visibilityGate
}

const visibilityGate = 0.5

// Pose landmark indices.
const (
	PoseNose          = 0
	PoseLeftEar       = 7
	PoseRightEar      = 8
	PoseLeftShoulder  = 11
	PoseRightShoulder = 12
	PoseLeftWrist     = 15
	PoseRightWrist    = 16
)

// Hand landmark indices.
const (
	HandWrist     = 0
	HandThumbTip  = 4
	HandIndexTip  = 8
	HandMiddleMCP = 9
	HandMiddleTip = 12
)

// Snapshot is the estimator output for one camera frame. Any array may be nil
// when that part of the body was not detected.
type Snapshot struct {
	Pose      []Landmark `json:"pose,omitempty"`
	LeftHand  []Landmark `json:"leftHand,omitempty"`
	RightHand []Landmark `json:"rightHand,omitempty"`
	Face      []Landmark `json:"face,omitempty"`
}

// PoseAt returns pose landmark i. ok is false when the snapshot is nil or the
// pose array does not reach i.
func (s *Snapshot) PoseAt(i int) (Landmark, bool) {
	if s == nil {
		return Landmark{}, false
	}
	return at(s.Pose, i)
}

// Hands returns the detected hand arrays, left first.
func (s *Snapshot) Hands() [2][]Landmark {
	if s == nil {
		return [2][]Landmark{}
	}
	return [2][]Landmark{s.LeftHand, s.RightHand}
}

func at(lms []Landmark, i int) (Landmark, bool) {
	if i < 0 || i >= len(lms) {
		return Landmark{}, false
	}
	return lms[i], true
}

// hasHand reports whether lms carries every hand keypoint the interpreter reads.
func hasHand(lms []Landmark) bool {
	return len(lms) > HandMiddleTip
}

// Mirror converts a normalized landmark to screen space, flipped horizontally
// so the operator sees themselves as in a mirror.
func Mirror(l Landmark, width, height float64) Vec2 {
	return Vec2{X: (1 - l.X) * width, Y: l.Y * height}
}
