// Package config loads the YAML configuration shared by the glyphgrid tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/glyphgrid/animation"
	"github.com/lixenwraith/glyphgrid/bitmap"
	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
	"github.com/lixenwraith/glyphgrid/terminal"
)

// Config is the root document
type Config struct {
	Palette   PaletteConfig   `yaml:"palette"`
	Metric    string          `yaml:"metric"`
	Import    ImportConfig    `yaml:"import"`
	Animation AnimationConfig `yaml:"animation"`
	Render    RenderConfig    `yaml:"render"`
}

// PaletteConfig selects a preset, 16 custom hex colors, or extraction from the loaded image
type PaletteConfig struct {
	Preset  string   `yaml:"preset"`
	Colors  []string `yaml:"colors"`
	Extract bool     `yaml:"extract"`
}

// ImportConfig sizes and classifies imported bitmaps
type ImportConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Percent     float64 `yaml:"percent"`
	Resampler   string  `yaml:"resampler"`
	AlphaCutoff int     `yaml:"alpha_cutoff"`
}

// AnimationConfig configures playback
type AnimationConfig struct {
	Direction string  `yaml:"direction"`
	Looping   bool    `yaml:"looping"`
	LoopLimit int     `yaml:"loop_limit"`
	Speed     float64 `yaml:"speed"`
}

// RenderConfig configures presentation
type RenderConfig struct {
	FPS         int      `yaml:"fps"`
	Device      string   `yaml:"device"`
	ColorMode   string   `yaml:"color_mode"`
	Title       string   `yaml:"title"`
	Transparent []string `yaml:"transparent"`
	MetricsAddr string   `yaml:"metrics_addr"`
}

// Device names
const (
	DeviceANSI  = "ansi"
	DeviceTcell = "tcell"
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Palette: PaletteConfig{Preset: palette.PresetDefault},
		Metric:  palette.MetricHSP.String(),
		Import: ImportConfig{
			Resampler:   bitmap.Nearest.String(),
			AlphaCutoff: int(parameter.AlphaCutoff),
		},
		Animation: AnimationConfig{
			Direction: animation.Forward.String(),
			Looping:   true,
			Speed:     parameter.DefaultSpeed,
		},
		Render: RenderConfig{
			FPS:       parameter.DefaultFPS,
			Device:    DeviceANSI,
			ColorMode: "auto",
		},
	}
}

// Load reads and validates a YAML file layered over Default
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default, rejecting unknown keys, then validates
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := c.BuildPalette(); err != nil {
		add(fmt.Errorf("palette: %w", err))
	}
	if _, err := palette.ParseMetric(c.Metric); err != nil {
		add(fmt.Errorf("metric: %w", err))
	}

	if _, err := bitmap.ParseResampler(c.Import.Resampler); err != nil {
		add(fmt.Errorf("import.resampler: %w", err))
	}
	if c.Import.AlphaCutoff < 0 || c.Import.AlphaCutoff > 255 {
		add(fmt.Errorf("import.alpha_cutoff: %d outside 0..255", c.Import.AlphaCutoff))
	}
	if _, _, err := c.TargetSize().Resolve(1, 1); err != nil {
		add(fmt.Errorf("import: %w", err))
	}

	if _, err := animation.ParseDirection(c.Animation.Direction); err != nil {
		add(fmt.Errorf("animation.direction: %w", err))
	}
	if c.Animation.LoopLimit < 0 {
		add(fmt.Errorf("animation.loop_limit: %d is negative", c.Animation.LoopLimit))
	}
	if c.Animation.Speed < 0 {
		add(fmt.Errorf("animation.speed: %g is negative", c.Animation.Speed))
	}

	if c.Render.FPS <= 0 || c.Render.FPS > parameter.MaxFPS {
		add(fmt.Errorf("render.fps: %d outside 1..%d", c.Render.FPS, parameter.MaxFPS))
	}
	if c.Render.Device != DeviceANSI && c.Render.Device != DeviceTcell {
		add(fmt.Errorf("render.device: unknown %q", c.Render.Device))
	}
	if _, err := terminal.ParseColorMode(c.Render.ColorMode); err != nil {
		add(fmt.Errorf("render.color_mode: %w", err))
	}
	if _, err := c.TransparentRunes(); err != nil {
		add(fmt.Errorf("render.transparent: %w", err))
	}

	return errors.Join(errs...)
}

// ===== BUILDERS =====

// BuildPalette returns the custom palette when colors are given, else the preset
func (c *Config) BuildPalette() (*palette.Palette, error) {
	if len(c.Palette.Colors) == 0 {
		return palette.Preset(c.Palette.Preset)
	}
	colors := make([]palette.Color, len(c.Palette.Colors))
	for i, s := range c.Palette.Colors {
		col, err := palette.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		colors[i] = col
	}
	return palette.New(colors...)
}

// BuildQuantizer pairs the configured palette with the configured metric
func (c *Config) BuildQuantizer() (*palette.Quantizer, error) {
	p, err := c.BuildPalette()
	if err != nil {
		return nil, err
	}
	m, err := palette.ParseMetric(c.Metric)
	if err != nil {
		return nil, err
	}
	return palette.NewQuantizer(p, m), nil
}

// TargetSize returns the import size
func (c *Config) TargetSize() bitmap.TargetSize {
	return bitmap.TargetSize{Width: c.Import.Width, Height: c.Import.Height, Percent: c.Import.Percent}
}

// Importer builds a bitmap importer around q
func (c *Config) Importer(q *palette.Quantizer) (*bitmap.Importer, error) {
	r, err := bitmap.ParseResampler(c.Import.Resampler)
	if err != nil {
		return nil, err
	}
	return &bitmap.Importer{Quantizer: q, Resampler: r, AlphaCutoff: uint8(c.Import.AlphaCutoff)}, nil
}

// TimelineOptions returns playback options without hooks
func (c *Config) TimelineOptions() (animation.Options, error) {
	d, err := animation.ParseDirection(c.Animation.Direction)
	if err != nil {
		return animation.Options{}, err
	}
	return animation.Options{
		Direction: d,
		Looping:   c.Animation.Looping,
		LoopLimit: c.Animation.LoopLimit,
		Speed:     c.Animation.Speed,
	}, nil
}

// ColorMode resolves the configured mode, detecting from the environment for "auto"
func (c *Config) ColorMode() (terminal.ColorMode, error) {
	return terminal.ParseColorMode(c.Render.ColorMode)
}

// FrameInterval is the presentation period for the configured rate
func (c *Config) FrameInterval() time.Duration {
	fps := c.Render.FPS
	if fps <= 0 {
		fps = parameter.DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// TransparentRunes returns the non-override set for sprite composition; empty selects NUL
// Entries are single characters; "" stands for NUL
func (c *Config) TransparentRunes() (sprite.RuneSet, error) {
	if len(c.Render.Transparent) == 0 {
		return sprite.DefaultTransparent, nil
	}
	runes := make([]rune, 0, len(c.Render.Transparent))
	for _, s := range c.Render.Transparent {
		rs := []rune(s)
		switch len(rs) {
		case 0:
			runes = append(runes, 0)
		case 1:
			runes = append(runes, rs[0])
		default:
			return sprite.RuneSet{}, fmt.Errorf("%q is not a single character", s)
		}
	}
	return sprite.NewRuneSet(runes...)
}
