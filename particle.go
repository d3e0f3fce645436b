package dreamscape

import (
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Particle tuning. Per-frame quantities assume one call per display refresh.
const (
	RainPerIntensity = 500 // raindrops per unit of rain intensity
	RainBatch        = 5   // raindrops spawned per frame while below target
	rainSpawnY       = -20
	rainStormDrift   = 5

	FlowerSpawnChance = 0.1   // per visible wrist per frame, times FlowerDensity
	FlowerJitter      = 50    // spawn offset around the wrist, each axis
	FlowerGrowRate    = 0.05  // per-frame easing of scale toward 1
	FlowerDecay       = 0.005 // life lost per frame
	flowerFallSpeed   = 0.5

	CloudWrapMargin = 100
	cloudBaseRadius = 150
	cloudAlpha      = 0.8
	cloudFadeIn     = 0.6 // seconds
)

var (
	cloudBatch  = Range{3, 6} // floored: 3 to 5 clouds
	cloudY      = Range{20, 200}
	cloudSpeed  = Range{0.2, 0.8}
	cloudScale  = Range{0.8, 1.5}
	rainWobble  = Range{-1, 1}
	flowerJit   = Range{-FlowerJitter, FlowerJitter}
	tiltRainMin = 10.0
	tiltRainMax = 45.0
)

// ParticleKind tags the particle variants.
type ParticleKind uint8

const (
	KindRain ParticleKind = iota
	KindFlower
	KindCloud
	numKinds
)

func (k ParticleKind) String() string {
	switch k {
	case KindRain:
		return "rain"
	case KindFlower:
		return "flower"
	case KindCloud:
		return "cloud"
	}
	return "unknown"
}

// Particle is one of *Raindrop, *Flower or *Cloud. The set is closed; code
// that handles particles switches on the concrete type.
type Particle interface {
	Kind() ParticleKind
	Position() Vec2
	particle()
}

// Raindrop falls until it leaves the bottom of the frame. It has no lifetime.
type Raindrop struct {
	ID  uint64
	Pos Vec2
	Vel Vec2
}

// Flower grows in place, sinks slowly and fades out over about 200 frames.
type Flower struct {
	ID    uint64
	Pos   Vec2
	Vel   Vec2
	Scale float64 // eases from 0 toward 1
	Life  float64 // 1 at birth, culled at 0
	Color Color
}

// Cloud drifts right and wraps around until the sky clears.
type Cloud struct {
	ID    uint64
	Pos   Vec2
	Vel   Vec2
	Scale float64
	Alpha float64
	fade  *gween.Tween
}

func (*Raindrop) Kind() ParticleKind { return KindRain }
func (*Flower) Kind() ParticleKind   { return KindFlower }
func (*Cloud) Kind() ParticleKind    { return KindCloud }

func (p *Raindrop) Position() Vec2 { return p.Pos }
func (p *Flower) Position() Vec2   { return p.Pos }
func (p *Cloud) Position() Vec2    { return p.Pos }

func (*Raindrop) particle() {}
func (*Flower) particle()   {}
func (*Cloud) particle()    {}

// RainIntensity is the rain strength implied by head tilt and storm state:
// tilt maps 10°..45° onto 0..1, plus 1 during a storm. The tilt term is not
// clamped, so a steeper tilt keeps adding rain.
func RainIntensity(headTilt float64, stormy bool) float64 {
	var v float64
	if headTilt > tiltRainMin {
		v = MapRange(headTilt, tiltRainMin, tiltRainMax, 0, 1)
	}
	if stormy {
		v++
	}
	return v
}

// RainTarget is the raindrop population the manager converges to.
func RainTarget(sig Signals, density float64) float64 {
	return RainIntensity(sig.HeadTilt, sig.IsStormy) * RainPerIntensity * density
}

// FlowerBloom is the render-time size multiplier for a palm openness.
func FlowerBloom(openness float64) float64 {
	return MapRange(openness, 0, 1, 0.5, 1.5)
}

// ParticleSystem owns every rain, flower and cloud particle. It is the only
// code that creates or destroys them.
type ParticleSystem struct {
	particles []Particle
	nextID    uint64
	counts    [numKinds]int
}

// particleInput is what one frame of particle simulation consumes.
type particleInput struct {
	signals Signals
	change  WeatherChange
	params  Params
	wrists  []Vec2 // visible wrists in screen space
	dt      float64
	width   float64
	height  float64
}

// Particles returns the live particles in spawn order. The returned slice
// MUST NOT be mutated or retained past the next Update.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}

// Count returns the number of live particles of kind k.
func (ps *ParticleSystem) Count(k ParticleKind) int {
	if k >= numKinds {
		return 0
	}
	return ps.counts[k]
}

// Len returns the total number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// update applies the weather change, spawns, then advances and culls.
func (ps *ParticleSystem) update(in particleInput, rng *rand.Rand) {
	switch in.change {
	case WeatherCloudsEnter:
		ps.spawnClouds(in.width, rng)
	case WeatherCloudsClear:
		ps.clearClouds()
	}

	if float64(ps.counts[KindRain]) < RainTarget(in.signals, in.params.RainDensity) {
		ps.spawnRain(in, rng)
	}

	if in.signals.IsHandRaised {
		for _, w := range in.wrists {
			if rng.Float64() < FlowerSpawnChance*in.params.FlowerDensity {
				ps.spawnFlower(w, rng)
			}
		}
	}

	ps.advance(in)
}

func (ps *ParticleSystem) advance(in particleInput) {
	ps.counts = [numKinds]int{}
	kept := ps.particles[:0]
	for _, p := range ps.particles {
		alive := true
		switch p := p.(type) {
		case *Raindrop:
			p.Pos = p.Pos.Add(p.Vel)
			alive = p.Pos.Y <= in.height
		case *Flower:
			p.Scale = Lerp(p.Scale, 1, FlowerGrowRate)
			p.Pos = p.Pos.Add(p.Vel)
			p.Life -= FlowerDecay
			alive = p.Life > 0
		case *Cloud:
			p.Pos.X += p.Vel.X
			if p.Pos.X > in.width+CloudWrapMargin {
				p.Pos.X = -CloudWrapMargin
			}
			if p.fade != nil {
				a, done := p.fade.Update(float32(in.dt))
				p.Alpha = float64(a)
				if done {
					p.fade = nil
				}
			}
		}
		if alive {
			kept = append(kept, p)
			ps.counts[p.Kind()]++
		}
	}
	clear(ps.particles[len(kept):])
	ps.particles = kept
}

func (ps *ParticleSystem) id() uint64 {
	ps.nextID++
	return ps.nextID
}

func (ps *ParticleSystem) spawnRain(in particleInput, rng *rand.Rand) {
	storm := 0.0
	if in.signals.IsStormy {
		storm = 1
	}
	for range RainBatch {
		ps.add(&Raindrop{
			ID:  ps.id(),
			Pos: Vec2{X: rng.Float64() * in.width, Y: rainSpawnY},
			Vel: Vec2{
				X: storm*rainStormDrift + rainWobble.Random(rng),
				Y: in.params.RainSpeed * (1 + storm),
			},
		})
	}
}

func (ps *ParticleSystem) spawnFlower(wrist Vec2, rng *rand.Rand) {
	ps.add(&Flower{
		ID:    ps.id(),
		Pos:   Vec2{X: wrist.X + flowerJit.Random(rng), Y: wrist.Y + flowerJit.Random(rng)},
		Vel:   Vec2{Y: flowerFallSpeed},
		Life:  1,
		Color: FlowerColors[rng.IntN(len(FlowerColors))],
	})
}

func (ps *ParticleSystem) spawnClouds(width float64, rng *rand.Rand) {
	n := int(cloudBatch.Random(rng))
	for range n {
		ps.add(&Cloud{
			ID:    ps.id(),
			Pos:   Vec2{X: rng.Float64() * width, Y: cloudY.Random(rng)},
			Vel:   Vec2{X: cloudSpeed.Random(rng)},
			Scale: cloudScale.Random(rng),
			fade:  gween.New(0, cloudAlpha, cloudFadeIn, ease.OutQuad),
		})
	}
}

func (ps *ParticleSystem) clearClouds() {
	kept := ps.particles[:0]
	for _, p := range ps.particles {
		if _, ok := p.(*Cloud); !ok {
			kept = append(kept, p)
		}
	}
	clear(ps.particles[len(kept):])
	ps.particles = kept
	ps.counts[KindCloud] = 0
}

func (ps *ParticleSystem) add(p Particle) {
	ps.particles = append(ps.particles, p)
	ps.counts[p.Kind()]++
}
