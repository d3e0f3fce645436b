package dreamscape

// AnchorKey names a body point a bird can perch on.
type AnchorKey uint8

const (
	AnchorNone AnchorKey = iota
	AnchorShoulderL
	AnchorShoulderR
	AnchorHead
	AnchorHandL
	AnchorHandR
	numAnchors
)

// AnchorKeys lists the perchable keys in nearest-anchor tie-break order.
var AnchorKeys = [...]AnchorKey{AnchorShoulderL, AnchorShoulderR, AnchorHead, AnchorHandL, AnchorHandR}

var anchorLandmark = [numAnchors]int{
	AnchorShoulderL: PoseLeftShoulder,
	AnchorShoulderR: PoseRightShoulder,
	AnchorHead:      PoseNose,
	AnchorHandL:     PoseLeftWrist,
	AnchorHandR:     PoseRightWrist,
}

func (k AnchorKey) String() string {
	switch k {
	case AnchorShoulderL:
		return "shoulder_l"
	case AnchorShoulderR:
		return "shoulder_r"
	case AnchorHead:
		return "head"
	case AnchorHandL:
		return "hand_l"
	case AnchorHandR:
		return "hand_r"
	}
	return "none"
}

// MarshalText implements encoding.TextMarshaler.
func (k AnchorKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AnchorSet maps each key to a screen position for one frame. Keys whose
// landmark is missing or below the visibility gate are unavailable.
type AnchorSet struct {
	pos [numAnchors]Vec2
	ok  [numAnchors]bool
}

// BuildAnchors resolves the anchor set from snap in a width x height frame.
func BuildAnchors(snap *Snapshot, width, height float64) AnchorSet {
	var a AnchorSet
	for _, k := range AnchorKeys {
		lm, ok := snap.PoseAt(anchorLandmark[k])
		if ok && lm.Visible() {
			a.Set(k, Mirror(lm, width, height))
		}
	}
	return a
}

// Get returns the position for k and whether it is available.
func (a *AnchorSet) Get(k AnchorKey) (Vec2, bool) {
	if k == AnchorNone || k >= numAnchors {
		return Vec2{}, false
	}
	return a.pos[k], a.ok[k]
}

// Set marks k available at p.
func (a *AnchorSet) Set(k AnchorKey, p Vec2) {
	if k == AnchorNone || k >= numAnchors {
		return
	}
	a.pos[k], a.ok[k] = p, true
}

// Available returns the number of available anchors.
func (a *AnchorSet) Available() int {
	n := 0
	for _, k := range AnchorKeys {
		if a.ok[k] {
			n++
		}
	}
	return n
}

// Nearest returns the available anchor closest to p. ok is false when the
// set is empty. Ties go to the earlier key in AnchorKeys.
func (a *AnchorSet) Nearest(p Vec2) (key AnchorKey, pos Vec2, dist float64, ok bool) {
	for _, k := range AnchorKeys {
		if !a.ok[k] {
			continue
		}
		d := Distance(p, a.pos[k])
		if !ok || d < dist {
			key, pos, dist, ok = k, a.pos[k], d, true
		}
	}
	return key, pos, dist, ok
}
