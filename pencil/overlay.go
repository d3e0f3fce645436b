package pencil

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/dreamscape"
)

const (
	overlayX      = 8
	overlayY      = 8
	overlayW      = 260
	overlayLineH  = 16
	overlayMargin = 4
)

// OverlayText formats the debug panel: frame rate, gesture signals and
// population counts.
func OverlayText(m dreamscape.Metrics, p dreamscape.Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  frame %d\n", m.FPS, m.Frame)
	if !m.Tracking {
		b.WriteString("no person in view\n")
	}
	s := m.Signals
	fmt.Fprintf(&b, "hand delta: %.3f raised: %v\n", s.HandHeightDelta, s.IsHandRaised)
	fmt.Fprintf(&b, "palm: %.2f storm: %.1fs %v\n", s.PalmOpenness, m.StormTimer, s.IsStormy)
	fmt.Fprintf(&b, "tilt: %.1f weather: %v\n", s.HeadTilt, s.Weather)
	fmt.Fprintf(&b, "rain %d  flowers %d  clouds %d\n", m.RaindropCount, m.FlowerCount, m.CloudCount)
	fmt.Fprintf(&b, "bolts %d  birds %d (%d perched)\n", m.BoltCount, m.BirdCount, m.PerchedCount)
	fmt.Fprintf(&b, "size %.0f density %.2f rain %.0f x%.2f", p.FlowerSize, p.FlowerDensity, p.RainSpeed, p.RainDensity)
	return b.String()
}

// DrawOverlay prints the debug panel in the top-left corner of screen on a
// semi-transparent backing, with ebiten's own frame and tick rates.
func DrawOverlay(screen *ebiten.Image, m dreamscape.Metrics, p dreamscape.Params) {
	text := OverlayText(m, p) + fmt.Sprintf("\nebiten FPS: %.1f TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	lines := strings.Count(text, "\n") + 1
	h := float32(lines*overlayLineH + 2*overlayMargin)
	vector.DrawFilledRect(screen, overlayX, overlayY, overlayW, h, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(screen, text, overlayX+overlayMargin, overlayY+overlayMargin)
}
