package dreamscape

import "sync/atomic"

// SnapshotStore holds the most recent landmark snapshot. The estimator side
// calls Store at its own cadence; the frame loop calls Load and never waits.
// Stored snapshots must not be modified afterwards.
type SnapshotStore struct {
	latest atomic.Pointer[Snapshot]
	count  atomic.Uint64
}

// Store publishes snap. A nil snap means nobody is in view.
func (s *SnapshotStore) Store(snap *Snapshot) {
	s.latest.Store(snap)
	s.count.Add(1)
}

// Load returns the latest snapshot, or nil.
func (s *SnapshotStore) Load() *Snapshot {
	return s.latest.Load()
}

// Received returns how many snapshots have been stored.
func (s *SnapshotStore) Received() uint64 {
	return s.count.Load()
}

// ParamStore holds the live Params. Writers clamp before storing.
type ParamStore struct {
	p atomic.Pointer[Params]
}

// NewParamStore returns a store holding p.
func NewParamStore(p Params) *ParamStore {
	s := &ParamStore{}
	s.Store(p)
	return s
}

// Load returns a copy of the current params, or DefaultParams when empty.
func (s *ParamStore) Load() Params {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return DefaultParams()
}

// Store replaces the current params with a clamped copy of p.
func (s *ParamStore) Store(p Params) {
	p = p.Clamp()
	s.p.Store(&p)
}

// Update applies fn to a copy of the current params and stores the result.
// Concurrent updaters may lose writes; the control panel is the only writer
// in practice.
func (s *ParamStore) Update(fn func(*Params)) Params {
	p := s.Load()
	fn(&p)
	s.Store(p)
	return s.Load()
}

// MetricsBoard keeps the latest published Metrics for readers on other
// goroutines. It implements MetricsPublisher.
type MetricsBoard struct {
	m atomic.Pointer[Metrics]
}

// PublishMetrics implements MetricsPublisher.
func (b *MetricsBoard) PublishMetrics(m Metrics) {
	b.m.Store(&m)
}

// Latest returns the last published metrics and whether any exist.
func (b *MetricsBoard) Latest() (Metrics, bool) {
	if m := b.m.Load(); m != nil {
		return *m, true
	}
	return Metrics{}, false
}
