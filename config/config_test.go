package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/glyphgrid/animation"
	"github.com/lixenwraith/glyphgrid/bitmap"
	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	p, err := cfg.BuildPalette()
	require.NoError(t, err)
	assert.True(t, p.Equal(palette.Default))

	opts, err := cfg.TimelineOptions()
	require.NoError(t, err)
	assert.Equal(t, animation.Forward, opts.Direction)
	assert.True(t, opts.Looping)
	assert.Equal(t, time.Second/time.Duration(parameter.DefaultFPS), cfg.FrameInterval())
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverrides(t *testing.T) {
	doc := `
palette:
  preset: pico8
metric: lab
import:
  width: 40
  resampler: catmull-rom
  alpha_cutoff: 10
animation:
  direction: pingpong
  looping: false
  loop_limit: 3
  speed: 2
render:
  fps: 60
  device: tcell
  color_mode: truecolor
  transparent: ["", " "]
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "pico8", cfg.Palette.Preset)
	assert.Equal(t, DeviceTcell, cfg.Render.Device)
	assert.Equal(t, bitmap.TargetSize{Width: 40}, cfg.TargetSize())

	q, err := cfg.BuildQuantizer()
	require.NoError(t, err)
	assert.Equal(t, palette.MetricLab, q.Metric())

	imp, err := cfg.Importer(q)
	require.NoError(t, err)
	assert.Equal(t, bitmap.CatmullRom, imp.Resampler)
	assert.Equal(t, uint8(10), imp.AlphaCutoff)

	opts, err := cfg.TimelineOptions()
	require.NoError(t, err)
	assert.Equal(t, animation.PingPong, opts.Direction)
	assert.False(t, opts.Looping)
	assert.Equal(t, 3, opts.LoopLimit)
	assert.Equal(t, 2.0, opts.Speed)

	set, err := cfg.TransparentRunes()
	require.NoError(t, err)
	assert.True(t, set.Contains(0))
	assert.True(t, set.Contains(' '))
	assert.Equal(t, 2, set.Len())

	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("palette:\n  presett: cga\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presett")
}

func TestValidateAggregates(t *testing.T) {
	cfg := Default()
	cfg.Metric = "manhattan"
	cfg.Render.FPS = 0
	cfg.Animation.Speed = -1

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "metric")
	assert.Contains(t, msg, "render.fps")
	assert.Contains(t, msg, "animation.speed")
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown preset", func(c *Config) { c.Palette.Preset = "nope" }, "palette"},
		{"short custom palette", func(c *Config) { c.Palette.Colors = []string{"#000000"} }, "palette"},
		{"bad hex", func(c *Config) {
			c.Palette.Colors = make([]string, palette.Size)
			for i := range c.Palette.Colors {
				c.Palette.Colors[i] = "zz"
			}
		}, "palette"},
		{"resampler", func(c *Config) { c.Import.Resampler = "lanczos" }, "import.resampler"},
		{"alpha cutoff", func(c *Config) { c.Import.AlphaCutoff = 300 }, "import.alpha_cutoff"},
		{"percent with width", func(c *Config) { c.Import.Percent = 50; c.Import.Width = 10 }, "import"},
		{"negative width", func(c *Config) { c.Import.Width = -1 }, "import"},
		{"direction", func(c *Config) { c.Animation.Direction = "sideways" }, "animation.direction"},
		{"loop limit", func(c *Config) { c.Animation.LoopLimit = -2 }, "animation.loop_limit"},
		{"fps too high", func(c *Config) { c.Render.FPS = parameter.MaxFPS + 1 }, "render.fps"},
		{"device", func(c *Config) { c.Render.Device = "sixel" }, "render.device"},
		{"color mode", func(c *Config) { c.Render.ColorMode = "cmyk" }, "render.color_mode"},
		{"transparent", func(c *Config) { c.Render.Transparent = []string{"ab"} }, "render.transparent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestCustomPalette(t *testing.T) {
	cfg := Default()
	cfg.Palette.Colors = make([]string, palette.Size)
	for i := range cfg.Palette.Colors {
		cfg.Palette.Colors[i] = palette.RGB(uint8(i*16), 0, 0).Hex()
	}
	require.NoError(t, cfg.Validate())

	p, err := cfg.BuildPalette()
	require.NoError(t, err)
	assert.Equal(t, palette.RGB(32, 0, 0), p.ColorAt(2))
}

func TestTransparentDefault(t *testing.T) {
	set, err := Default().TransparentRunes()
	require.NoError(t, err)
	assert.Equal(t, sprite.DefaultTransparent, set)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metric: rgb\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rgb", cfg.Metric)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metric: rgb\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config, err error) {
			if err == nil {
				reloaded <- cfg
			}
		})
	}()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("metric: lab\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "lab", cfg.Metric)
	case <-time.After(3 * time.Second):
		t.Fatal("Expected reload after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Expected Watch to return after cancel")
	}
}
