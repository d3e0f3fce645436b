package dreamscape

// Metrics is the read-only per-frame report for the presentation layer.
type Metrics struct {
	Frame   uint64  `json:"frame"`
	Time    float64 `json:"time"`
	FPS     float64 `json:"fps"`
	Signals Signals `json:"signals"`

	RaindropCount int `json:"raindropCount"`
	FlowerCount   int `json:"flowerCount"`
	CloudCount    int `json:"cloudCount"`
	BoltCount     int `json:"boltCount"`
	BirdCount     int `json:"birdCount"`
	PerchedCount  int `json:"perchedCount"`

	// StormTimer is how long the palm has been held open, in seconds.
	StormTimer float64 `json:"stormTimer"`
	// Tracking reports whether this frame had any landmarks at all.
	Tracking bool `json:"tracking"`
}

// MetricsPublisher receives the metrics snapshot at the end of every frame.
type MetricsPublisher interface {
	PublishMetrics(m Metrics)
}

// fpsCounter measures frame rate over one-second windows of simulation time.
// The reported value is refreshed once per window. Callers stepping with a
// FrameClock advance simulation time by measured wall time, so this is the
// real frame rate.
type fpsCounter struct {
	frames  int
	start   float64
	started bool
	fps     float64
}

const fpsWindow = 1.0

func (c *fpsCounter) tick(now float64) float64 {
	if !c.started {
		c.start, c.started = now, true
		return c.fps
	}
	c.frames++
	if elapsed := now - c.start; elapsed >= fpsWindow {
		c.fps = float64(c.frames) / elapsed
		c.frames = 0
		c.start = now
	}
	return c.fps
}
