package dreamscape

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame phase timings.
// Only populated when Options.Debug is true.
type debugStats struct {
	gesture   time.Duration
	particle  time.Duration
	lightning time.Duration
	birds     time.Duration
	compose   time.Duration
	commands  int
}

// debugEvery throttles the timing log to one line per this many frames.
const debugEvery = 60

// debugLog writes phase timings and population counts at Debug level.
func (w *World) debugLog() {
	if w.frame%debugEvery != 0 {
		return
	}
	s := w.stats
	total := s.gesture + s.particle + s.lightning + s.birds + s.compose
	w.log.Debug("frame timings",
		zap.Uint64("frame", w.frame),
		zap.Duration("gesture", s.gesture),
		zap.Duration("particle", s.particle),
		zap.Duration("lightning", s.lightning),
		zap.Duration("birds", s.birds),
		zap.Duration("compose", s.compose),
		zap.Duration("total", total),
		zap.Int("commands", s.commands),
		zap.Int("particles", w.particles.Len()),
		zap.Int("birds_total", len(w.flock.Birds())),
	)
}
