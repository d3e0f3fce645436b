package dreamscape

import (
	"math"
	"math/rand/v2"
)

// Bird tuning, in pixels and frames.
const (
	MaxBirds        = 3
	BirdSpawnChance = 0.01
	PerchRange      = 300  // birds ignore anchors farther than this
	PerchApproach   = 0.05 // per-frame easing toward a perch
	LandTolerance   = 10   // both axes, to land
	ShakeDistance   = 20   // anchor travel in one frame that scares a bird off
	StickEase       = 0.5
	FlapStep        = 0.2
)

const (
	perchLiftApproach = 20
	perchLiftStick    = 15
	fleeJump          = 30
	fleeNudge         = 10
	wanderAmpX        = 2
	wanderAmpY        = 1
	wanderRate        = 0.001 // per millisecond
	boundNudge        = 2
	birdSpawnMargin   = 50
)

// BirdMode is the bird's state.
type BirdMode uint8

const (
	BirdFlying BirdMode = iota
	BirdPerched
)

func (m BirdMode) String() string {
	if m == BirdPerched {
		return "perched"
	}
	return "flying"
}

// Bird is an autonomous flyer that seeks a body anchor to perch on. Perch is
// a key, resolved against the current AnchorSet each frame.
type Bird struct {
	ID        uint64
	Pos       Vec2
	Mode      BirdMode
	Perch     AnchorKey
	FlapPhase float64
	wander    float64
}

// Perched reports whether the bird sits on an anchor.
func (b *Bird) Perched() bool {
	return b.Mode == BirdPerched
}

// birdChange records a state transition for event emission.
type birdChange struct {
	kind   EventType
	bird   Bird
	anchor AnchorKey
}

// Flock owns every bird. Birds are spawned while the flock is small and are
// never removed.
type Flock struct {
	birds   []Bird
	nextID  uint64
	changes []birdChange
}

// Birds returns the flock. The returned slice MUST NOT be mutated.
func (f *Flock) Birds() []Bird {
	return f.birds
}

// Perched returns how many birds are perched.
func (f *Flock) Perched() int {
	n := 0
	for i := range f.birds {
		if f.birds[i].Perched() {
			n++
		}
	}
	return n
}

// Spawn adds a flying bird at pos. It ignores the population cap; the frame
// step only spawns below MaxBirds.
func (f *Flock) Spawn(pos Vec2, rng *rand.Rand) *Bird {
	f.nextID++
	f.birds = append(f.birds, Bird{ID: f.nextID, Pos: pos, wander: rng.Float64()})
	b := &f.birds[len(f.birds)-1]
	f.changes = append(f.changes, birdChange{kind: EventBirdSpawned, bird: *b})
	return b
}

// update advances every bird by one frame against the current and previous
// anchor sets. nowMs is simulation time in milliseconds.
//
// prev is exactly the previous frame's set, unavailable keys included. An
// anchor missing from prev has no history, so it cannot shake a bird off;
// its last seen position from an older frame is not carried forward.
func (f *Flock) update(cur, prev *AnchorSet, nowMs, width, height float64, rng *rand.Rand) {
	f.changes = f.changes[:0]

	if len(f.birds) < MaxBirds && rng.Float64() < BirdSpawnChance {
		x := float64(-birdSpawnMargin)
		if rng.Float64() >= 0.5 {
			x = width + birdSpawnMargin
		}
		f.Spawn(Vec2{X: x, Y: Range{0, height / 2}.Random(rng)}, rng)
	}

	for i := range f.birds {
		b := &f.birds[i]
		b.FlapPhase += FlapStep
		switch b.Mode {
		case BirdFlying:
			f.fly(b, cur, nowMs, width, height)
		case BirdPerched:
			f.sit(b, cur, prev, width)
		}
	}
}

func (f *Flock) fly(b *Bird, cur *AnchorSet, nowMs, width, height float64) {
	key, target, dist, ok := cur.Nearest(b.Pos)
	if ok && dist < PerchRange {
		dx := target.X - b.Pos.X
		dy := (target.Y - perchLiftApproach) - b.Pos.Y
		b.Pos.X += dx * PerchApproach
		b.Pos.Y += dy * PerchApproach
		if math.Abs(dx) < LandTolerance && math.Abs(dy) < LandTolerance {
			b.Mode = BirdPerched
			b.Perch = key
			f.changes = append(f.changes, birdChange{kind: EventBirdPerched, bird: *b, anchor: key})
		}
		return
	}

	phase := nowMs*wanderRate + b.wander
	b.Pos.X += math.Sin(phase) * wanderAmpX
	b.Pos.Y += math.Cos(phase) * wanderAmpY
	switch {
	case b.Pos.X < 0:
		b.Pos.X += boundNudge
	case b.Pos.X > width:
		b.Pos.X -= boundNudge
	}
	switch {
	case b.Pos.Y < 0:
		b.Pos.Y += boundNudge
	case b.Pos.Y > height:
		b.Pos.Y -= boundNudge
	}
}

func (f *Flock) sit(b *Bird, cur, prev *AnchorSet, width float64) {
	anchor, ok := cur.Get(b.Perch)
	shaken := !ok
	if last, had := prev.Get(b.Perch); ok && had && Distance(last, anchor) > ShakeDistance {
		shaken = true
	}

	if !shaken {
		b.Pos.X = Lerp(b.Pos.X, anchor.X, StickEase)
		b.Pos.Y = Lerp(b.Pos.Y, anchor.Y-perchLiftStick, StickEase)
		return
	}

	from := b.Perch
	b.Mode = BirdFlying
	b.Perch = AnchorNone
	b.Pos.Y -= fleeJump
	if b.Pos.X > width/2 {
		b.Pos.X += fleeNudge
	} else {
		b.Pos.X -= fleeNudge
	}
	f.changes = append(f.changes, birdChange{kind: EventBirdFled, bird: *b, anchor: from})
}
