package dreamscape

import "math/rand/v2"

// Lightning tuning.
const (
	BoltFrames      = 10  // frames a bolt stays visible
	BoltFlashAbove  = 7   // flash while remaining frames exceed this
	BoltFlashAlpha  = 0.1 // full-frame flash opacity
	boltOriginSpan  = 0.6 // bolts start within the middle 60% of the width
	boltHeightShort = 0.5
	boltHeightLong  = 0.8
)

var boltInterval = Range{0.7, 2.0} // seconds between strikes

// Bolt is one lightning strike.
type Bolt struct {
	Origin    Vec2
	Height    float64
	Remaining int // frames left, including the current one
}

// Flashing reports whether the bolt is in its opening flash frames.
func (b Bolt) Flashing() bool {
	return b.Remaining > BoltFlashAbove
}

// LightningScheduler fires bolts at random intervals while a storm lasts.
type LightningScheduler struct {
	bolts []Bolt
	drawn []Bolt
	next  float64 // simulation time of the next strike, seconds
}

// Bolts returns the bolts drawn this frame, with Remaining as it was when
// drawn. The returned slice MUST NOT be mutated.
func (ls *LightningScheduler) Bolts() []Bolt {
	return ls.drawn
}

// Live returns the number of bolts still in flight after this frame.
func (ls *LightningScheduler) Live() int {
	return len(ls.bolts)
}

// update schedules a new strike when due and ages every bolt by a frame.
// It reports whether a bolt was struck this frame.
func (ls *LightningScheduler) update(stormy bool, now, width, height float64, rng *rand.Rand) (Bolt, bool) {
	var struck Bolt
	fired := false
	if stormy && now >= ls.next {
		margin := (1 - boltOriginSpan) / 2
		struck = Bolt{
			Origin:    Vec2{X: Range{width * margin, width * (1 - margin)}.Random(rng)},
			Height:    Range{height * boltHeightShort, height * boltHeightLong}.Random(rng),
			Remaining: BoltFrames,
		}
		ls.bolts = append(ls.bolts, struck)
		ls.next = now + boltInterval.Random(rng)
		fired = true
	}

	ls.drawn = append(ls.drawn[:0], ls.bolts...)
	kept := ls.bolts[:0]
	for _, b := range ls.bolts {
		b.Remaining--
		if b.Remaining > 0 {
			kept = append(kept, b)
		}
	}
	ls.bolts = kept
	return struck, fired
}
