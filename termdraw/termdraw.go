// Package termdraw renders dreamscape scenes into a terminal with tcell.
//
// World pixels are scaled onto the character grid: rain becomes slanted
// strokes, flowers are petal glyphs around a centre, clouds are shaded
// ellipses and birds are single wing glyphs. The bottom row is reserved for a
// status line.
package termdraw

import (
	"math"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/dreamscape"
)

// Glyphs.
const (
	glyphRainSteep = '|'
	glyphRainRight = '\\'
	glyphRainLeft  = '/'
	glyphPetal     = '*'
	glyphCenter    = '@'
	glyphCloud     = '░'
	glyphWingsUp   = 'v'
	glyphWingsDown = '^'
	glyphPerched   = 'n'
	glyphBolt      = '#'
)

// Canvas draws onto a tcell.Screen. It implements dreamscape.Canvas.
type Canvas struct {
	screen     tcell.Screen
	rng        *rand.Rand
	cols, rows int
	sx, sy     float64 // world pixels per cell
	bg         dreamscape.Color
}

var _ dreamscape.Canvas = (*Canvas)(nil)

// New returns a canvas drawing onto screen. Lightning zigzags are seeded by
// seed.
func New(screen tcell.Screen, seed uint64) *Canvas {
	return &Canvas{screen: screen, rng: dreamscape.NewRand(seed), bg: dreamscape.ColorPaper}
}

// Begin clears the screen to the paper color and sizes the grid for a world
// of the given pixel size.
func (c *Canvas) Begin(worldW, worldH float64) {
	c.cols, c.rows = c.screen.Size()
	c.rows-- // status line
	if c.cols < 1 || c.rows < 1 {
		c.cols, c.rows = 0, 0
		return
	}
	c.sx = worldW / float64(c.cols)
	c.sy = worldH / float64(c.rows)
	c.bg = dreamscape.ColorPaper
	c.fill()
}

// Cell maps a world position to a grid cell. ok is false off-grid.
func (c *Canvas) Cell(x, y float64) (col, row int, ok bool) {
	if c.sx == 0 || c.sy == 0 {
		return 0, 0, false
	}
	col = int(math.Floor(x / c.sx))
	row = int(math.Floor(y / c.sy))
	return col, row, col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// Tint implements dreamscape.Canvas.
func (c *Canvas) Tint(col dreamscape.Color, alpha float64) {
	c.bg = blend(c.bg, col, alpha)
	c.fill()
}

// Flash implements dreamscape.Canvas.
func (c *Canvas) Flash(alpha float64) {
	c.bg = blend(c.bg, dreamscape.ColorWhite, alpha)
	c.fill()
}

// Lightning implements dreamscape.Canvas.
func (c *Canvas) Lightning(x, y, height float64) {
	col, row, _ := c.Cell(x, y)
	_, end, _ := c.Cell(x, y+height)
	style := c.style(dreamscape.ColorBolt)
	for r := row; r <= end; r++ {
		c.set(col, r, glyphBolt, style)
		col += c.rng.IntN(3) - 1
	}
}

// SketchLine implements dreamscape.Canvas.
func (c *Canvas) SketchLine(x1, y1, x2, y2 float64, col dreamscape.Color, _ float64) {
	glyph := glyphRainSteep
	if dx, dy := (x2-x1)/c.sx, (y2-y1)/c.sy; math.Abs(dx) > math.Abs(dy)/2 {
		if (dx > 0) == (dy > 0) {
			glyph = glyphRainRight
		} else {
			glyph = glyphRainLeft
		}
	}
	c0, r0, _ := c.Cell(x1, y1)
	c1, r1, _ := c.Cell(x2, y2)
	style := c.style(col)
	line(c0, r0, c1, r1, func(cc, rr int) { c.set(cc, rr, glyph, style) })
}

// Flower implements dreamscape.Canvas.
func (c *Canvas) Flower(x, y, radius float64, petals int, col dreamscape.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	style := c.style(blend(c.bg, col, alpha))
	for i := range petals {
		a := 2 * math.Pi * float64(i) / float64(petals)
		pc, pr, _ := c.Cell(x+math.Cos(a)*radius, y+math.Sin(a)*radius)
		c.set(pc, pr, glyphPetal, style)
	}
	cc, cr, _ := c.Cell(x, y)
	c.set(cc, cr, glyphCenter, c.style(blend(c.bg, dreamscape.ColorYellow, alpha)))
}

// Cloud implements dreamscape.Canvas.
func (c *Canvas) Cloud(x, y, radius, _ float64, alpha float64) {
	if alpha <= 0 {
		return
	}
	style := c.style(blend(c.bg, dreamscape.ColorGraphite, alpha))
	rx, ry := radius*0.8, radius*0.4
	c0, r0, _ := c.Cell(x-rx, y-ry)
	c1, r1, _ := c.Cell(x+rx, y+ry)
	for r := r0; r <= r1; r++ {
		for cc := c0; cc <= c1; cc++ {
			px := (float64(cc)+0.5)*c.sx - x
			py := (float64(r)+0.5)*c.sy - y
			if (px*px)/(rx*rx)+(py*py)/(ry*ry) <= 1 {
				c.set(cc, r, glyphCloud, style)
			}
		}
	}
}

// Bird implements dreamscape.Canvas.
func (c *Canvas) Bird(x, y, phase float64, col dreamscape.Color, perched bool) {
	glyph := glyphWingsDown
	switch {
	case perched:
		glyph = glyphPerched
	case math.Sin(phase) > 0:
		glyph = glyphWingsUp
	}
	cc, cr, _ := c.Cell(x, y)
	c.set(cc, cr, glyph, c.style(col))
}

// Status writes text on the reserved bottom row.
func (c *Canvas) Status(text string) {
	_, rows := c.screen.Size()
	row := rows - 1
	style := tcell.StyleDefault.Foreground(color(dreamscape.ColorPaper)).Background(color(dreamscape.ColorGraphite))
	col := 0
	for _, r := range text {
		if col >= c.cols {
			break
		}
		c.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < c.cols; col++ {
		c.screen.SetContent(col, row, ' ', nil, style)
	}
}

func (c *Canvas) fill() {
	style := tcell.StyleDefault.Background(color(c.bg))
	for r := range c.rows {
		for cc := range c.cols {
			c.screen.SetContent(cc, r, ' ', nil, style)
		}
	}
}

func (c *Canvas) style(fg dreamscape.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(color(fg)).Background(color(c.bg))
}

func (c *Canvas) set(col, row int, r rune, style tcell.Style) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	c.screen.SetContent(col, row, r, nil, style)
}

// line visits every cell of the Bresenham line from (x0, y0) to (x1, y1).
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// blend composites top over base at alpha and returns an opaque color.
func blend(base, top dreamscape.Color, alpha float64) dreamscape.Color {
	alpha = dreamscape.Clamp(alpha, 0, 1)
	return dreamscape.Color{
		R: dreamscape.Lerp(base.R, top.R, alpha),
		G: dreamscape.Lerp(base.G, top.G, alpha),
		B: dreamscape.Lerp(base.B, top.B, alpha),
		A: 1,
	}
}

func color(c dreamscape.Color) tcell.Color {
	return tcell.NewRGBColor(
		int32(math.Round(c.R*255)),
		int32(math.Round(c.G*255)),
		int32(math.Round(c.B*255)),
	)
}
