package dreamscape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsClamp(t *testing.T) {
	p := Params{
		FlowerSize:          500,
		FlowerDensity:       0,
		CloudComplexity:     2,
		RainSpeed:           1,
		RainDensity:         10,
		TextureStrength:     -1,
		IntegrationStrength: 3,
	}.Clamp()

	assert.Equal(t, 100.0, p.FlowerSize)
	assert.Equal(t, 0.1, p.FlowerDensity)
	assert.Equal(t, 1.0, p.CloudComplexity)
	assert.Equal(t, 5.0, p.RainSpeed)
	assert.Equal(t, 3.0, p.RainDensity)
	assert.Equal(t, 0.0, p.TextureStrength)
	assert.Equal(t, 1.0, p.IntegrationStrength)

	assert.Equal(t, DefaultParams(), DefaultParams().Clamp(), "defaults are in range")
}

func TestLoadParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	yml := "flower_size: 80\nrain_speed: 99\nshow_debug: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	p, err := LoadParams(path)
	require.NoError(t, err)

	want := DefaultParams()
	want.FlowerSize = 80
	want.RainSpeed = 30
	want.ShowDebug = true
	assert.Equal(t, want, p)
}

func TestLoadParamsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadParams(filepath.Join(dir, "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("flower_size: [1, 2"), 0o644))
	p, err := LoadParams(bad)
	assert.Error(t, err)
	assert.Equal(t, DefaultParams().FlowerDensity, p.FlowerDensity)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, 1280.0, o.Width)
	assert.Equal(t, 720.0, o.Height)
	assert.Equal(t, uint64(1), o.Seed)
	assert.NotNil(t, o.Logger)

	o = Options{Width: 320, Height: 200, Seed: 5}.withDefaults()
	assert.Equal(t, 320.0, o.Width)
	assert.Equal(t, uint64(5), o.Seed)
}

func TestParamsAdjust(t *testing.T) {
	p := DefaultParams()

	up := p.Adjust(FieldFlowerSize, 2)
	assert.Equal(t, 50.0, up.Get(FieldFlowerSize))
	assert.Equal(t, 40.0, p.FlowerSize, "Adjust returns a copy")

	down := p.Adjust(FieldRainSpeed, -100)
	assert.Equal(t, 5.0, down.RainSpeed, "clamped to the panel minimum")

	assert.InDelta(t, 0.6, p.Adjust(FieldTextureStrength, 1).TextureStrength, 1e-9)

	for _, f := range ParamFields {
		assert.NotEqual(t, "unknown", f.String())
	}
	assert.Equal(t, p.Clamp(), p.Adjust(numParamFields, 3))
}
