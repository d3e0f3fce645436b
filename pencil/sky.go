package pencil

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/dreamscape"
)

// SkyFade is how long the background takes to change with the weather.
const SkyFade = 1.0 // seconds

var (
	skySun   = dreamscape.ColorPaper
	skyCloud = dreamscape.Hex("#E4E1DA")
)

// SkyColor returns the resting background for a weather mode.
func SkyColor(m dreamscape.WeatherMode) dreamscape.Color {
	if m == dreamscape.WeatherCloud {
		return skyCloud
	}
	return skySun
}

// Sky crossfades the background color whenever the weather changes.
type Sky struct {
	weather dreamscape.WeatherMode
	from    dreamscape.Color
	to      dreamscape.Color
	mix     *gween.Tween
	current dreamscape.Color
}

// NewSky returns a sky resting on the sunny background.
func NewSky() *Sky {
	return &Sky{from: skySun, to: skySun, current: skySun}
}

// Color returns the background for the current frame.
func (s *Sky) Color() dreamscape.Color {
	return s.current
}

// Update advances the fade by dt seconds, starting a new one from the
// current color when m differs from the last weather seen.
func (s *Sky) Update(m dreamscape.WeatherMode, dt float64) dreamscape.Color {
	if m != s.weather {
		s.weather = m
		s.from, s.to = s.current, SkyColor(m)
		s.mix = gween.New(0, 1, SkyFade, ease.InOutQuad)
	}
	if s.mix == nil {
		return s.current
	}
	t, done := s.mix.Update(float32(dt))
	s.current = mixColor(s.from, s.to, float64(t))
	if done {
		s.current = s.to
		s.mix = nil
	}
	return s.current
}

func mixColor(a, b dreamscape.Color, t float64) dreamscape.Color {
	return dreamscape.Color{
		R: dreamscape.Lerp(a.R, b.R, t),
		G: dreamscape.Lerp(a.G, b.G, t),
		B: dreamscape.Lerp(a.B, b.B, t),
		A: dreamscape.Lerp(a.A, b.A, t),
	}
}
