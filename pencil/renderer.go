package pencil

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/dreamscape"
)

// grainStep is the texture strength resolution of the cached grain layer.
const grainStep = 0.05

type grainKey struct {
	w, h     int
	strength float64
}

// Renderer paints whole frames: sky, paper grain, the scene and, when asked,
// the debug overlay.
type Renderer struct {
	painter  *Painter
	sky      *Sky
	grain    *Grain
	grainImg *ebiten.Image
	grainKey grainKey
	shots    Screenshots
}

// NewRenderer returns a renderer whose stroke wobble and paper grain derive
// from seed.
func NewRenderer(seed uint64) *Renderer {
	return &Renderer{
		painter: NewPainter(seed),
		sky:     NewSky(),
		grain:   NewGrain(int64(seed)),
		shots:   Screenshots{Dir: "screenshots"},
	}
}

// Screenshots returns the renderer's capture queue.
func (r *Renderer) Screenshots() *Screenshots {
	return &r.shots
}

// Draw paints one frame onto screen. dt advances the sky crossfade.
func (r *Renderer) Draw(screen *ebiten.Image, f dreamscape.Frame, p dreamscape.Params, dt float64) {
	screen.Fill(r.sky.Update(f.Scene.Weather, dt))

	if img := r.grainLayer(screen, p.TextureStrength); img != nil {
		screen.DrawImage(img, nil)
	}

	r.painter.Begin(screen, p)
	f.Scene.Render(r.painter)

	if p.ShowDebug {
		DrawOverlay(screen, f.Metrics, p)
	}
	r.shots.flush(screen)
}

func (r *Renderer) grainLayer(screen *ebiten.Image, strength float64) *ebiten.Image {
	strength = math.Round(strength/grainStep) * grainStep
	if strength <= 0 {
		return nil
	}
	b := screen.Bounds()
	key := grainKey{w: b.Dx(), h: b.Dy(), strength: strength}
	if r.grainImg == nil || key != r.grainKey {
		if r.grainImg != nil {
			r.grainImg.Deallocate()
		}
		r.grainImg = ebiten.NewImageFromImage(r.grain.Image(key.w, key.h, strength))
		r.grainKey = key
	}
	return r.grainImg
}
