package dreamscape

import (
	"sync"
	"testing"
)

func TestSnapshotStore(t *testing.T) {
	var s SnapshotStore
	if s.Load() != nil || s.Received() != 0 {
		t.Fatal("new store should be empty")
	}
	snap := raisedSnapshot(0.2)
	s.Store(snap)
	if s.Load() != snap {
		t.Error("Load should return the stored snapshot")
	}
	s.Store(nil)
	if s.Load() != nil || s.Received() != 2 {
		t.Errorf("after nil store: load=%v received=%d", s.Load(), s.Received())
	}
}

func TestSnapshotStoreConcurrent(t *testing.T) {
	var s SnapshotStore
	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 250 {
				s.Store(raisedSnapshot(float64(i) / 10))
			}
		}()
	}
	w := NewWorld(Options{})
	for range 100 {
		w.Step(s.Load(), DefaultParams(), frameDT)
	}
	wg.Wait()
	if s.Received() != 1000 {
		t.Errorf("Received = %d, want 1000", s.Received())
	}
}

func TestParamStore(t *testing.T) {
	var empty ParamStore
	if empty.Load() != DefaultParams() {
		t.Error("zero store should load defaults")
	}

	s := NewParamStore(DefaultParams())
	got := s.Update(func(p *Params) { p.FlowerSize += 1000 })
	if got.FlowerSize != 100 || s.Load().FlowerSize != 100 {
		t.Errorf("FlowerSize = %v, want clamped to 100", got.FlowerSize)
	}

	p := s.Load()
	p.RainSpeed = 20
	if s.Load().RainSpeed == 20 {
		t.Error("Load must return a copy")
	}
}

func TestMetricsBoard(t *testing.T) {
	var b MetricsBoard
	b.PublishMetrics(Metrics{Frame: 3, FlowerCount: 7})
	m, ok := b.Latest()
	if !ok || m.Frame != 3 || m.FlowerCount != 7 {
		t.Errorf("Latest = %+v, %v", m, ok)
	}
}
