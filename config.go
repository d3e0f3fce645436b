package dreamscape

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Params holds the operator-tunable look of the scene. A World reads one copy
// at the start of each frame and never mutates it.
type Params struct {
	// FlowerSize is the base flower radius in pixels. Range [10, 100].
	FlowerSize float64 `yaml:"flower_size" json:"flowerSize"`
	// FlowerDensity scales flower spawn probability and petal count. Range [0.1, 2].
	FlowerDensity float64 `yaml:"flower_density" json:"flowerDensity"`
	// CloudComplexity controls the number of puffs per cloud. Range [0.1, 1].
	CloudComplexity float64 `yaml:"cloud_complexity" json:"cloudComplexity"`
	// RainSpeed is the fall speed of a raindrop in pixels per frame. Range [5, 30].
	RainSpeed float64 `yaml:"rain_speed" json:"rainSpeed"`
	// RainDensity multiplies the rain target population. Range [0.1, 3].
	RainDensity float64 `yaml:"rain_density" json:"rainDensity"`
	// TextureStrength scales pencil jitter and paper grain. Range [0, 1].
	TextureStrength float64 `yaml:"texture_strength" json:"textureStrength"`
	// IntegrationStrength is the paper tint overlay strength. Range [0, 1].
	IntegrationStrength float64 `yaml:"integration_strength" json:"integrationStrength"`
	// ShowDebug enables the metrics overlay.
	ShowDebug bool `yaml:"show_debug" json:"showDebug"`
}

// DefaultParams returns the stock look.
func DefaultParams() Params {
	return Params{
		FlowerSize:          40,
		FlowerDensity:       1.0,
		CloudComplexity:     0.5,
		RainSpeed:           15,
		RainDensity:         1.0,
		TextureStrength:     0.5,
		IntegrationStrength: 0.2,
		ShowDebug:           false,
	}
}

// Clamp returns p with every numeric field forced into its documented range.
// Callers that accept params from outside (files, HTTP, keyboard) clamp;
// the simulation itself trusts what it is given.
func (p Params) Clamp() Params {
	p.FlowerSize = Clamp(p.FlowerSize, 10, 100)
	p.FlowerDensity = Clamp(p.FlowerDensity, 0.1, 2)
	p.CloudComplexity = Clamp(p.CloudComplexity, 0.1, 1)
	p.RainSpeed = Clamp(p.RainSpeed, 5, 30)
	p.RainDensity = Clamp(p.RainDensity, 0.1, 3)
	p.TextureStrength = clamp01(p.TextureStrength)
	p.IntegrationStrength = clamp01(p.IntegrationStrength)
	return p
}

// LoadParams reads a YAML params file. Fields absent from the file keep their
// DefaultParams values; the result is clamped.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("load params: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("load params %s: %w", path, err)
	}
	return p.Clamp(), nil
}

// Options configures a World at construction.
type Options struct {
	// Width and Height are the frame size in pixels. Defaults 1280x720.
	Width, Height float64
	// Seed feeds the simulation's random source. Zero picks seed 1 so that
	// runs are reproducible unless the caller asks otherwise.
	Seed uint64
	// Logger receives debug timings and domain events. Defaults to a no-op.
	Logger *zap.Logger
	// Debug logs per-frame phase timings at Debug level.
	Debug bool
	// Events receives domain events after each frame. Optional.
	Events EventSink
	// Metrics receives the metrics snapshot after each frame. Optional.
	Metrics MetricsPublisher
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// ParamField names a tunable numeric field of Params.
type ParamField uint8

const (
	FieldFlowerSize ParamField = iota
	FieldFlowerDensity
	FieldCloudComplexity
	FieldRainSpeed
	FieldRainDensity
	FieldTextureStrength
	FieldIntegrationStrength
	numParamFields
)

// ParamFields lists every tunable field in panel order.
var ParamFields = [...]ParamField{
	FieldFlowerSize,
	FieldFlowerDensity,
	FieldCloudComplexity,
	FieldRainSpeed,
	FieldRainDensity,
	FieldTextureStrength,
	FieldIntegrationStrength,
}

var paramFieldInfo = [numParamFields]struct {
	name string
	step float64
}{
	FieldFlowerSize:          {"flower_size", 5},
	FieldFlowerDensity:       {"flower_density", 0.1},
	FieldCloudComplexity:     {"cloud_complexity", 0.1},
	FieldRainSpeed:           {"rain_speed", 1},
	FieldRainDensity:         {"rain_density", 0.1},
	FieldTextureStrength:     {"texture_strength", 0.1},
	FieldIntegrationStrength: {"integration_strength", 0.1},
}

func (f ParamField) String() string {
	if f >= numParamFields {
		return "unknown"
	}
	return paramFieldInfo[f].name
}

func (p *Params) field(f ParamField) *float64 {
	switch f {
	case FieldFlowerSize:
		return &p.FlowerSize
	case FieldFlowerDensity:
		return &p.FlowerDensity
	case FieldCloudComplexity:
		return &p.CloudComplexity
	case FieldRainSpeed:
		return &p.RainSpeed
	case FieldRainDensity:
		return &p.RainDensity
	case FieldTextureStrength:
		return &p.TextureStrength
	case FieldIntegrationStrength:
		return &p.IntegrationStrength
	}
	return nil
}

// Get returns the value of field f.
func (p Params) Get(f ParamField) float64 {
	if v := p.field(f); v != nil {
		return *v
	}
	return 0
}

// Adjust moves field f by steps panel increments and clamps the result.
func (p Params) Adjust(f ParamField, steps int) Params {
	if v := p.field(f); v != nil {
		*v += float64(steps) * paramFieldInfo[f].step
	}
	return p.Clamp()
}
