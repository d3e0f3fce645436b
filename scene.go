package dreamscape

import "math"

// Canvas is the rendering capability a Scene is drawn onto. Implementations
// draw synchronously and keep no reference to the scene.
type Canvas interface {
	// Tint composites a full-frame color wash (the paper texture).
	Tint(c Color, alpha float64)
	// Flash washes the frame white at alpha, beneath the bolt that caused it.
	Flash(alpha float64)
	// Lightning draws a jagged bolt from (x, y) down by height.
	Lightning(x, y, height float64)
	// SketchLine draws a pencil stroke.
	SketchLine(x1, y1, x2, y2 float64, c Color, width float64)
	// Flower draws a scribbled flower of the given radius and petal count.
	Flower(x, y, radius float64, petals int, c Color, alpha float64)
	// Cloud draws a puffy outlined cloud.
	Cloud(x, y, radius, complexity, alpha float64)
	// Bird draws a bird, wings flapping by phase or folded when perched.
	Bird(x, y, phase float64, c Color, perched bool)
}

// CommandType identifies the shape a Command draws.
type CommandType uint8

const (
	CommandTint   CommandType = iota // full-frame paper tint
	CommandFlash                     // full-frame lightning flash
	CommandBolt                      // lightning bolt
	CommandRain                      // raindrop streak
	CommandFlower                    // flower
	CommandCloud                     // cloud
	CommandBird                      // bird
)

func (t CommandType) String() string {
	switch t {
	case CommandTint:
		return "tint"
	case CommandFlash:
		return "flash"
	case CommandBolt:
		return "bolt"
	case CommandRain:
		return "rain"
	case CommandFlower:
		return "flower"
	case CommandCloud:
		return "cloud"
	case CommandBird:
		return "bird"
	}
	return "unknown"
}

// Command is a single draw instruction. Only the fields relevant to Type are
// set.
type Command struct {
	Type CommandType
	X, Y float64
	// X2, Y2 end a rain streak.
	X2, Y2 float64
	// Size is the flower or cloud radius, or the bolt height.
	Size       float64
	Petals     int
	Complexity float64
	Phase      float64
	Perched    bool
	Color      Color
	Alpha      float64
	Width      float64
}

// Scene is the renderable description of one frame, in back-to-front order.
type Scene struct {
	Width, Height float64
	Weather       WeatherMode
	Commands      []Command
}

// Render replays the scene onto c.
func (s *Scene) Render(c Canvas) {
	for i := range s.Commands {
		cmd := &s.Commands[i]
		switch cmd.Type {
		case CommandTint:
			c.Tint(cmd.Color, cmd.Alpha)
		case CommandFlash:
			c.Flash(cmd.Alpha)
		case CommandBolt:
			c.Lightning(cmd.X, cmd.Y, cmd.Size)
		case CommandRain:
			c.SketchLine(cmd.X, cmd.Y, cmd.X2, cmd.Y2, cmd.Color, cmd.Width)
		case CommandFlower:
			c.Flower(cmd.X, cmd.Y, cmd.Size, cmd.Petals, cmd.Color, cmd.Alpha)
		case CommandCloud:
			c.Cloud(cmd.X, cmd.Y, cmd.Size, cmd.Complexity, cmd.Alpha)
		case CommandBird:
			c.Bird(cmd.X, cmd.Y, cmd.Phase, cmd.Color, cmd.Perched)
		}
	}
}

// Count returns how many commands of type t the scene holds.
func (s *Scene) Count(t CommandType) int {
	n := 0
	for i := range s.Commands {
		if s.Commands[i].Type == t {
			n++
		}
	}
	return n
}

// Paper tint and stroke constants.
const (
	paperAlphaScale  = 0.3
	paperLightAbove  = 0.5
	rainStreakLength = 15
	rainStreakSlant  = 2
	rainStrokeWidth  = 1.5
	basePetals       = 5
	petalsPerDensity = 3
)

// PetalCount is the number of petals a flower has at the given density.
func PetalCount(density float64) int {
	return basePetals + int(math.Floor(density*petalsPerDensity))
}

// PaperTint returns the paper overlay color and alpha for strength.
func PaperTint(strength float64) (Color, float64) {
	c := ColorUmber
	if strength > paperLightAbove {
		c = ColorPaper
	}
	return c, strength * paperAlphaScale
}

// compose rebuilds the scene from the world's current state. It is the only
// place that turns particle variants into draw commands.
func (w *World) compose(p Params, sig Signals) {
	s := &w.scene
	s.Width, s.Height = w.width, w.height
	s.Weather = sig.Weather
	s.Commands = s.Commands[:0]

	if p.IntegrationStrength > 0 {
		c, a := PaperTint(p.IntegrationStrength)
		s.Commands = append(s.Commands, Command{Type: CommandTint, Color: c, Alpha: a})
	}

	for _, b := range w.lightning.Bolts() {
		if b.Flashing() {
			s.Commands = append(s.Commands, Command{Type: CommandFlash, Alpha: BoltFlashAlpha})
		}
		s.Commands = append(s.Commands, Command{Type: CommandBolt, X: b.Origin.X, Y: b.Origin.Y, Size: b.Height})
	}

	bloom := FlowerBloom(sig.PalmOpenness)
	petals := PetalCount(p.FlowerDensity)
	for _, pt := range w.particles.Particles() {
		switch pt := pt.(type) {
		case *Raindrop:
			s.Commands = append(s.Commands, Command{
				Type: CommandRain,
				X:    pt.Pos.X, Y: pt.Pos.Y,
				X2: pt.Pos.X - pt.Vel.X*rainStreakSlant, Y2: pt.Pos.Y - rainStreakLength,
				Color: ColorBlue, Alpha: 1, Width: rainStrokeWidth,
			})
		case *Flower:
			s.Commands = append(s.Commands, Command{
				Type: CommandFlower,
				X:    pt.Pos.X, Y: pt.Pos.Y,
				Size:   p.FlowerSize * pt.Scale * bloom,
				Petals: petals,
				Color:  pt.Color,
				Alpha:  pt.Life,
			})
		case *Cloud:
			s.Commands = append(s.Commands, Command{
				Type: CommandCloud,
				X:    pt.Pos.X, Y: pt.Pos.Y,
				Size:       cloudBaseRadius * pt.Scale,
				Complexity: p.CloudComplexity,
				Alpha:      pt.Alpha,
			})
		}
	}

	for _, b := range w.flock.Birds() {
		s.Commands = append(s.Commands, Command{
			Type: CommandBird,
			X:    b.Pos.X, Y: b.Pos.Y,
			Phase:   b.FlapPhase,
			Perched: b.Perched(),
			Color:   ColorGraphite,
			Alpha:   1,
		})
	}
}
