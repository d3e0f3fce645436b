package dreamscape

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Frame is the result of one Step. Scene and Events alias buffers owned by
// the World and are only valid until the next Step.
type Frame struct {
	Signals Signals
	Metrics Metrics
	Scene   *Scene
	Events  []Event
}

// World owns every piece of simulation state and advances it one frame at a
// time. A World is not safe for concurrent use; feed it from one goroutine
// and hand snapshots and params in through SnapshotStore and ParamStore.
type World struct {
	opts Options
	log  *zap.Logger
	rng  *rand.Rand

	width, height float64
	frame         uint64
	now           float64 // simulation seconds

	gestures  Interpreter
	particles ParticleSystem
	lightning LightningScheduler
	flock     Flock
	anchors   AnchorSet
	prev      AnchorSet
	fps       fpsCounter

	last   Signals
	wrists []Vec2
	events []Event
	scene  Scene
	stats  debugStats
}

// NewWorld creates an empty world: sunny sky, no particles, no birds.
func NewWorld(opts Options) *World {
	opts = opts.withDefaults()
	return &World{
		opts:   opts,
		log:    opts.Logger,
		rng:    NewRand(opts.Seed),
		width:  opts.Width,
		height: opts.Height,
	}
}

// Size returns the frame size in pixels.
func (w *World) Size() (width, height float64) {
	return w.width, w.height
}

// Resize changes the frame size. Existing entities keep their positions.
func (w *World) Resize(width, height float64) {
	if width > 0 {
		w.width = width
	}
	if height > 0 {
		w.height = height
	}
}

// Now returns the simulation clock in seconds.
func (w *World) Now() float64 { return w.now }

// FrameCount returns the number of completed steps.
func (w *World) FrameCount() uint64 { return w.frame }

// Particles exposes the particle system for inspection.
func (w *World) Particles() *ParticleSystem { return &w.particles }

// Lightning exposes the lightning scheduler for inspection.
func (w *World) Lightning() *LightningScheduler { return &w.lightning }

// Flock exposes the birds for inspection.
func (w *World) Flock() *Flock { return &w.flock }

// Anchors returns the anchor set built this frame.
func (w *World) Anchors() AnchorSet { return w.anchors }

// Weather returns the current weather mode.
func (w *World) Weather() WeatherMode { return w.gestures.weather }

// Step advances the world by dt seconds using the latest snapshot, which may
// be nil. Phases run in a fixed order: gestures, particles, lightning,
// anchors, birds, then metrics and scene composition.
func (w *World) Step(snap *Snapshot, p Params, dt float64) Frame {
	if dt < 0 {
		dt = 0
	}
	w.now += dt
	w.frame++
	w.events = w.events[:0]
	debug := w.opts.Debug

	var t0 time.Time
	if debug {
		t0 = time.Now()
	}

	// gestures
	sig, change := w.gestures.Interpret(snap, w.now, dt)
	w.signalEvents(sig, change)
	if debug {
		w.stats.gesture = time.Since(t0)
		t0 = time.Now()
	}

	// particles
	w.particles.update(particleInput{
		signals: sig,
		change:  change,
		params:  p,
		wrists:  w.visibleWrists(snap),
		dt:      dt,
		width:   w.width,
		height:  w.height,
	}, w.rng)
	if debug {
		w.stats.particle = time.Since(t0)
		t0 = time.Now()
	}

	// lightning
	if b, ok := w.lightning.update(sig.IsStormy, w.now, w.width, w.height, w.rng); ok {
		w.emit(Event{Type: EventBoltStruck, X: b.Origin.X, Y: b.Origin.Y, Height: b.Height})
	}
	if debug {
		w.stats.lightning = time.Since(t0)
		t0 = time.Now()
	}

	// anchors and birds
	w.anchors = BuildAnchors(snap, w.width, w.height)
	w.flock.update(&w.anchors, &w.prev, w.now*1000, w.width, w.height, w.rng)
	w.prev = w.anchors
	for _, c := range w.flock.changes {
		w.emit(Event{Type: c.kind, X: c.bird.Pos.X, Y: c.bird.Pos.Y, BirdID: c.bird.ID, Anchor: c.anchor})
	}
	if debug {
		w.stats.birds = time.Since(t0)
		t0 = time.Now()
	}

	m := w.metrics(sig, snap != nil)
	w.compose(p, sig)
	if debug {
		w.stats.compose = time.Since(t0)
		w.stats.commands = len(w.scene.Commands)
		w.debugLog()
	}

	w.last = sig
	w.publish(m)

	return Frame{
		Signals: sig,
		Metrics: m,
		Scene:   &w.scene,
		Events:  w.events,
	}
}

// visibleWrists returns the mirrored screen positions of every pose wrist
// that clears the visibility gate.
func (w *World) visibleWrists(snap *Snapshot) []Vec2 {
	w.wrists = w.wrists[:0]
	for _, i := range [...]int{PoseLeftWrist, PoseRightWrist} {
		if lm, ok := snap.PoseAt(i); ok && lm.Visible() {
			w.wrists = append(w.wrists, Mirror(lm, w.width, w.height))
		}
	}
	return w.wrists
}

func (w *World) signalEvents(sig Signals, change WeatherChange) {
	switch {
	case sig.IsHandRaised && !w.last.IsHandRaised:
		w.emit(Event{Type: EventHandRaised})
	case !sig.IsHandRaised && w.last.IsHandRaised:
		w.emit(Event{Type: EventHandLowered})
	}
	if change != WeatherSteady {
		w.emit(Event{Type: EventWeatherToggled, Weather: sig.Weather})
	}
	switch {
	case sig.IsStormy && !w.last.IsStormy:
		w.emit(Event{Type: EventStormStarted})
	case !sig.IsStormy && w.last.IsStormy:
		w.emit(Event{Type: EventStormEnded})
	}
}

func (w *World) emit(e Event) {
	e.Frame = w.frame
	e.Time = w.now
	w.events = append(w.events, e)
}

func (w *World) metrics(sig Signals, tracking bool) Metrics {
	return Metrics{
		Frame:         w.frame,
		Time:          w.now,
		FPS:           w.fps.tick(w.now),
		Signals:       sig,
		RaindropCount: w.particles.Count(KindRain),
		FlowerCount:   w.particles.Count(KindFlower),
		CloudCount:    w.particles.Count(KindCloud),
		BoltCount:     len(w.lightning.Bolts()),
		BirdCount:     len(w.flock.Birds()),
		PerchedCount:  w.flock.Perched(),
		StormTimer:    w.gestures.StormTimer(),
		Tracking:      tracking,
	}
}

// publish hands the frame's events and metrics to the configured outputs.
func (w *World) publish(m Metrics) {
	for _, e := range w.events {
		if ce := w.log.Check(zap.DebugLevel, "event"); ce != nil {
			ce.Write(
				zap.Stringer("type", e.Type),
				zap.Uint64("frame", e.Frame),
				zap.Float64("x", e.X),
				zap.Float64("y", e.Y),
				zap.Stringer("anchor", e.Anchor),
			)
		}
		if w.opts.Events != nil {
			w.opts.Events.Emit(e)
		}
	}
	if w.opts.Metrics != nil {
		w.opts.Metrics.PublishMetrics(m)
	}
}
