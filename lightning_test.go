package dreamscape

import "testing"

func TestNoBoltsWithoutStorm(t *testing.T) {
	var ls LightningScheduler
	rng := NewRand(1)
	for i := range 600 {
		if _, fired := ls.update(false, float64(i)/60, 1280, 720, rng); fired {
			t.Fatal("bolt fired without a storm")
		}
	}
	if len(ls.Bolts()) != 0 || ls.Live() != 0 {
		t.Errorf("bolts = %d live = %d, want none", len(ls.Bolts()), ls.Live())
	}
}

func TestBoltLifetimeAndFlash(t *testing.T) {
	var ls LightningScheduler
	rng := NewRand(2)

	b, fired := ls.update(true, 0, 1280, 720, rng)
	if !fired {
		t.Fatal("first stormy frame should strike")
	}
	if b.Origin.X < 0.2*1280 || b.Origin.X > 0.8*1280 || b.Origin.Y != 0 {
		t.Errorf("origin %v outside the middle of the sky", b.Origin)
	}
	if b.Height < 0.5*720 || b.Height > 0.8*720 {
		t.Errorf("height %v outside [360, 576]", b.Height)
	}

	visible, flashing := 1, 0
	if ls.Bolts()[0].Flashing() {
		flashing++
	}
	for i := 1; i < 20; i++ {
		ls.update(false, float64(i)/60, 1280, 720, rng)
		if len(ls.Bolts()) > 0 {
			visible++
			if ls.Bolts()[0].Flashing() {
				flashing++
			}
		}
	}
	if visible != BoltFrames {
		t.Errorf("bolt visible for %d frames, want %d", visible, BoltFrames)
	}
	if flashing != BoltFrames-BoltFlashAbove {
		t.Errorf("bolt flashed for %d frames, want %d", flashing, BoltFrames-BoltFlashAbove)
	}
}

func TestBoltInterval(t *testing.T) {
	var ls LightningScheduler
	rng := NewRand(3)
	dt := 1.0 / 60
	var strikes []float64
	for i := range 60 * 30 {
		now := float64(i) * dt
		if _, fired := ls.update(true, now, 1280, 720, rng); fired {
			strikes = append(strikes, now)
		}
	}
	if len(strikes) < 10 {
		t.Fatalf("only %d strikes in 30s", len(strikes))
	}
	for i := 1; i < len(strikes); i++ {
		gap := strikes[i] - strikes[i-1]
		if gap < boltInterval.Min-1e-9 || gap > boltInterval.Max+dt+1e-9 {
			t.Errorf("gap %d = %.3fs, want within [%.1f, %.1f]", i, gap, boltInterval.Min, boltInterval.Max)
		}
	}
}
