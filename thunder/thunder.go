// Package thunder plays a synthesized thunderclap for every lightning bolt.
//
// A clap is a short crack of decaying white noise followed by a low rumble:
// two detuned sine tones amplitude-modulated by smoothed noise. Taller bolts
// are louder and rumble longer. Thunder is a dreamscape.EventSink; it reacts
// to EventBoltStruck and ignores everything else.
package thunder

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/phanxgames/dreamscape"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)

	crackDuration = 180 * time.Millisecond
	crackDecay    = 28.0 // per second
	rumbleMin     = 1200 * time.Millisecond
	rumbleMax     = 2600 * time.Millisecond
	rumbleDelay   = 60 * time.Millisecond
	rumbleLow     = 38.0 // Hz
	rumbleHigh    = 55.0 // Hz

	// maxVoices caps concurrent claps; extra bolts in a storm stay silent.
	maxVoices = 6
)

// Config configures Thunder.
type Config struct {
	// SampleRate defaults to 44.1kHz.
	SampleRate beep.SampleRate
	// Volume is linear gain in [0, 1]. Zero means mute.
	Volume float64
	// Seed feeds the noise generators.
	Seed   uint64
	Logger *zap.Logger
	// WorldHeight scales bolt height into loudness. Defaults to 720.
	WorldHeight float64
}

// Thunder mixes thunderclaps into a single stream.
type Thunder struct {
	rate   beep.SampleRate
	volume float64
	worldH float64
	log    *zap.Logger
	mixer  *beep.Mixer

	mu      sync.Mutex
	rng     *rand.Rand
	playing bool
	played  uint64
}

var _ dreamscape.EventSink = (*Thunder)(nil)

// New returns a Thunder that is not yet connected to a speaker. Until Start
// is called, claps accumulate in the mixer returned by Streamer.
func New(cfg Config) *Thunder {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.WorldHeight <= 0 {
		cfg.WorldHeight = 720
	}
	return &Thunder{
		rate:   cfg.SampleRate,
		volume: dreamscape.Clamp(cfg.Volume, 0, 1),
		worldH: cfg.WorldHeight,
		log:    cfg.Logger.Named("thunder"),
		mixer:  &beep.Mixer{},
		rng:    dreamscape.NewRand(cfg.Seed),
	}
}

// Start opens the default audio device and plays the mixer on it.
func (t *Thunder) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		return nil
	}
	if err := speaker.Init(t.rate, t.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(t.mixer)
	t.playing = true
	t.log.Info("audio started", zap.Int("rate", int(t.rate)))
	return nil
}

// Close silences every clap in flight.
func (t *Thunder) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		speaker.Lock()
		t.mixer.Clear()
		speaker.Unlock()
		t.playing = false
		return
	}
	t.mixer.Clear()
}

// Streamer returns the mix of all claps. It is what Start hands to the
// speaker.
func (t *Thunder) Streamer() beep.Streamer {
	return t.mixer
}

// Voices returns the number of claps still sounding.
func (t *Thunder) Voices() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return t.mixer.Len()
}

// Played returns how many claps were started.
func (t *Thunder) Played() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.played
}

// Emit implements dreamscape.EventSink.
func (t *Thunder) Emit(e dreamscape.Event) {
	if e.Type != dreamscape.EventBoltStruck || t.volume <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.playing {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if t.mixer.Len() >= maxVoices {
		return
	}
	strength := dreamscape.Clamp(e.Height/t.worldH, 0.2, 1)
	t.mixer.Add(t.clap(strength))
	t.played++
	t.log.Debug("thunder", zap.Uint64("frame", e.Frame), zap.Float64("strength", strength))
}

// Clap returns a single thunderclap of the given strength in [0, 1].
func (t *Thunder) Clap(strength float64) beep.Streamer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clap(dreamscape.Clamp(strength, 0, 1))
}

func (t *Thunder) clap(strength float64) beep.Streamer {
	seed := t.rng.Uint64()
	rumbleLen := rumbleMin + time.Duration(strength*float64(rumbleMax-rumbleMin))

	crack := beep.Take(t.rate.N(crackDuration), Crack(t.rate, seed))
	rumble := beep.Seq(
		beep.Silence(t.rate.N(rumbleDelay)),
		beep.Take(t.rate.N(rumbleLen), Rumble(t.rate, rumbleLen, seed+1)),
	)
	return gain(beep.Mix(gain(crack, 0.6), rumble), t.volume*strength)
}

// Crack is decaying white noise. It never ends on its own.
func Crack(rate beep.SampleRate, seed uint64) beep.Streamer {
	rng := dreamscape.NewRand(seed)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			env := math.Exp(-crackDecay * float64(pos) / float64(rate))
			v := (rng.Float64()*2 - 1) * env
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
}

// Rumble is a low modulated drone shaped to fade in quickly and die away
// over length.
func Rumble(rate beep.SampleRate, length time.Duration, seed uint64) beep.Streamer {
	rng := dreamscape.NewRand(seed)
	total := float64(rate.N(length))
	attack := float64(rate.N(150 * time.Millisecond))
	var pos int
	var lowPhase, highPhase, mod float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			p := float64(pos)
			env := 1.0
			if p < attack {
				env = p / attack
			} else if total > attack {
				env = math.Pow(1-(p-attack)/(total-attack), 2)
			}
			if env < 0 {
				env = 0
			}
			// one-pole low-pass over noise gives the slow rolling modulation
			mod += 0.0015 * ((rng.Float64()*2 - 1) - mod)
			lowPhase += rumbleLow / float64(rate)
			highPhase += rumbleHigh / float64(rate)
			v := (0.6*math.Sin(2*math.Pi*lowPhase) + 0.4*math.Sin(2*math.Pi*highPhase)) *
				(0.5 + 0.5*math.Abs(mod)*20) * env * 0.5
			v = math.Max(-1, math.Min(1, v))
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
}

// gain applies linear volume through effects.Volume, which works in
// exponents of its base.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
