package dreamscape

import "math"

// Gesture thresholds, in normalized landmark units unless noted.
const (
	RaiseEnter       = 0.17 // hand-raise turns on above this delta
	RaiseExit        = 0.13 // and off below this one
	StormOpenness    = 0.9  // palm openness that arms the storm timer
	StormArmSeconds  = 1.5  // continuous seconds above StormOpenness
	TapDistance      = 0.05 // thumb-tip to index-tip distance for a tap
	TapCooldown      = 1.0  // seconds between weather flips
	opennessFloor    = 0.001
	opennessBase     = 0.8
	opennessSpan     = 1.5
	cooldownEpsilon  = 1e-9
	straightAngleDeg = 180
)

// WeatherMode is the sky state toggled by a finger tap.
type WeatherMode uint8

const (
	WeatherSun   WeatherMode = iota // clear sky
	WeatherCloud                    // clouds drifting
)

func (m WeatherMode) String() string {
	if m == WeatherCloud {
		return "cloud"
	}
	return "sun"
}

// MarshalText implements encoding.TextMarshaler.
func (m WeatherMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// WeatherChange is the one-shot effect of a weather flip on this frame.
type WeatherChange uint8

const (
	WeatherSteady      WeatherChange = iota // no flip this frame
	WeatherCloudsEnter                      // spawn the initial cloud batch
	WeatherCloudsClear                      // remove every cloud
)

// Signals is the interpreted gesture state for one frame.
type Signals struct {
	HandHeightDelta float64     `json:"handHeightDelta"`
	PalmOpenness    float64     `json:"palmOpenness"`
	HeadTilt        float64     `json:"headTilt"`
	IsHandRaised    bool        `json:"isHandRaised"`
	IsStormy        bool        `json:"isStormy"`
	Weather         WeatherMode `json:"weather"`
	// WristY and ShoulderY are the normalized heights of the side that
	// produced HandHeightDelta; both zero when no shoulder was visible.
	WristY    float64 `json:"wristY"`
	ShoulderY float64 `json:"shoulderY"`
}

// Interpreter turns landmark snapshots into Signals. It keeps the hysteresis,
// storm timer and tap cooldown between frames; everything else is recomputed.
type Interpreter struct {
	handRaised bool
	stormTimer float64
	weather    WeatherMode
	lastTap    float64
	hasTapped  bool
}

// StormTimer returns the seconds the palm has been held open so far.
func (g *Interpreter) StormTimer() float64 {
	return g.stormTimer
}

// Interpret reads snap at simulation time now (seconds), dt seconds after the
// previous call. snap may be nil.
func (g *Interpreter) Interpret(snap *Snapshot, now, dt float64) (Signals, WeatherChange) {
	var sig Signals

	sig.HandHeightDelta, sig.WristY, sig.ShoulderY = HandHeightDelta(snap)
	g.handRaised = raiseHysteresis(g.handRaised, sig.HandHeightDelta)
	sig.IsHandRaised = g.handRaised

	hands := snap.Hands()
	for _, h := range hands {
		sig.PalmOpenness = math.Max(sig.PalmOpenness, PalmOpenness(h))
	}

	sig.HeadTilt = HeadTilt(snap)

	if sig.PalmOpenness > StormOpenness {
		g.stormTimer += math.Max(dt, 0)
	} else {
		g.stormTimer = 0
	}
	sig.IsStormy = g.stormTimer > StormArmSeconds

	change := WeatherSteady
	if (IsTap(hands[0]) || IsTap(hands[1])) && g.cooledDown(now) {
		g.lastTap = now
		g.hasTapped = true
		if g.weather == WeatherSun {
			g.weather = WeatherCloud
			change = WeatherCloudsEnter
		} else {
			g.weather = WeatherSun
			change = WeatherCloudsClear
		}
	}
	sig.Weather = g.weather

	return sig, change
}

func (g *Interpreter) cooledDown(now float64) bool {
	return !g.hasTapped || now-g.lastTap >= TapCooldown-cooldownEpsilon
}

// raiseHysteresis applies the enter/exit dead zone to the raised flag.
func raiseHysteresis(raised bool, delta float64) bool {
	switch {
	case !raised && delta > RaiseEnter:
		return true
	case raised && delta < RaiseExit:
		return false
	}
	return raised
}

// HandHeightDelta returns how far the higher wrist sits above its shoulder,
// plus the wrist and shoulder heights of that side. Only the shoulder's
// visibility gates a side; the wrist's confidence is not consulted.
func HandHeightDelta(snap *Snapshot) (delta, wristY, shoulderY float64) {
	sides := [2][2]int{
		{PoseLeftShoulder, PoseLeftWrist},
		{PoseRightShoulder, PoseRightWrist},
	}
	first := true
	for _, side := range sides {
		var d, wy, sy float64
		shoulder, okS := snap.PoseAt(side[0])
		wrist, okW := snap.PoseAt(side[1])
		if okS && okW && shoulder.Visible() {
			d, wy, sy = shoulder.Y-wrist.Y, wrist.Y, shoulder.Y
		}
		if first || d > delta {
			delta, wristY, shoulderY = d, wy, sy
			first = false
		}
	}
	return delta, wristY, shoulderY
}

// PalmOpenness scores how open a hand is, from 0 (fist) to 1 (fully spread).
// A missing or truncated hand scores 0.
func PalmOpenness(hand []Landmark) float64 {
	if !hasHand(hand) {
		return 0
	}
	wrist := hand[HandWrist].Point()
	full := Distance(wrist, hand[HandMiddleTip].Point())
	palm := math.Max(Distance(wrist, hand[HandMiddleMCP].Point()), opennessFloor)
	return OpennessFromRatio(full / palm)
}

// OpennessFromRatio normalizes the fingertip/knuckle distance ratio.
func OpennessFromRatio(ratio float64) float64 {
	return clamp01((ratio - opennessBase) / opennessSpan)
}

// HeadTilt returns the angle between the ear-to-ear line and the horizontal,
// in degrees within [0, 90]. It is 0 when either ear is missing.
func HeadTilt(snap *Snapshot) float64 {
	l, okL := snap.PoseAt(PoseLeftEar)
	r, okR := snap.PoseAt(PoseRightEar)
	if !okL || !okR {
		return 0
	}
	deg := math.Abs(AngleDeg(l.Point(), r.Point()))
	if deg > straightAngleDeg/2 {
		deg = straightAngleDeg - deg
	}
	return deg
}

// IsTap reports whether thumb and index fingertips touch.
func IsTap(hand []Landmark) bool {
	if len(hand) <= HandIndexTip {
		return false
	}
	return Distance(hand[HandThumbTip].Point(), hand[HandIndexTip].Point()) < TapDistance
}
