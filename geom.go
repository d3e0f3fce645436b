package dreamscape

import "math"

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// AngleDeg returns the direction of the segment a→b in degrees, in (-180, 180].
func AngleDeg(a, b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// MapRange maps v from [inMin, inMax] onto [outMin, outMax] without clamping.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
