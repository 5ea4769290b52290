package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/lixenwraith/glyphgrid/animation"
	"github.com/lixenwraith/glyphgrid/bitmap"
	"github.com/lixenwraith/glyphgrid/config"
	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/render"
	"github.com/lixenwraith/glyphgrid/sprite"
	"github.com/lixenwraith/glyphgrid/spritefile"
	"github.com/lixenwraith/glyphgrid/terminal"
)

// viewer owns playback and the render session; every method runs on the main loop goroutine
type viewer struct {
	path        string
	cfg         *config.Config
	renderer    *render.Renderer
	timeline    *animation.Timeline
	palette     *palette.Palette
	transparent sprite.RuneSet

	dirty          bool
	drawnW, drawnH int
}

func newViewer(r *render.Renderer, path string, cfg *config.Config) (*viewer, error) {
	v := &viewer{path: path, renderer: r}
	if err := v.load(cfg); err != nil {
		return nil, err
	}
	return v, nil
}

// ===== LOADING =====

// loadAnimation reads a sprite file as a single frame, or imports an image/GIF/WebP through the quantizer
// The returned palette is the one the cells index into
func loadAnimation(path string, cfg *config.Config) (*animation.Animation, *palette.Palette, error) {
	if spritefile.IsSpritePath(path) {
		doc, err := spritefile.Load(path)
		if err != nil {
			return nil, nil, err
		}
		pal := doc.Palette
		if pal == nil {
			if pal, err = cfg.BuildPalette(); err != nil {
				return nil, nil, err
			}
		}
		anim, err := animation.Uniform(time.Second, doc.Sprite)
		return anim, pal, err
	}

	src, err := bitmap.LoadFrames(path)
	if err != nil {
		return nil, nil, err
	}
	pal, err := cfg.BuildPalette()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Palette.Extract {
		if first, ok := src.Frame().(*bitmap.RGBA); ok {
			if pal, err = palette.FromImage(first.Image()); err != nil {
				return nil, nil, fmt.Errorf("extract palette: %w", err)
			}
		}
	}
	metric, err := palette.ParseMetric(cfg.Metric)
	if err != nil {
		return nil, nil, err
	}
	imp, err := cfg.Importer(palette.NewQuantizer(pal, metric))
	if err != nil {
		return nil, nil, err
	}
	anim, err := imp.ImportFrames(src, cfg.TargetSize())
	if err != nil {
		return nil, nil, err
	}
	return anim, pal, nil
}

// load (re)imports the source under cfg and restarts playback
// State is only replaced once everything has loaded, so a bad reload keeps the current picture
func (v *viewer) load(cfg *config.Config) error {
	anim, pal, err := loadAnimation(v.path, cfg)
	if err != nil {
		return err
	}
	transparent, err := cfg.TransparentRunes()
	if err != nil {
		return err
	}
	opts, err := cfg.TimelineOptions()
	if err != nil {
		return err
	}

	var tl *animation.Timeline
	opts.Hooks = animation.Hooks{
		OnFrameChanged: func(int) { v.dirty = true },
		OnLooped:       func(n int) { log.Printf("glyphview: loop %d", n) },
		OnFinished:     func() { log.Printf("glyphview: finished at frame %d", tl.CurrentIndex()) },
	}
	if tl, err = animation.NewTimeline(anim, opts); err != nil {
		return err
	}
	tl.Play()

	settings := terminal.Settings{}
	if v.cfg == nil {
		settings.Title = cfg.Render.Title
		if settings.Title == "" {
			settings.Title = "glyphview - " + filepath.Base(v.path)
		}
	}
	if v.palette == nil || !v.palette.Equal(pal) {
		settings.Palette = pal
	}
	if err := v.renderer.Apply(settings); err != nil {
		return err
	}

	w, h := anim.Size()
	log.Printf("glyphview: loaded %s %dx%d, %d frames, %v total", v.path, w, h, anim.Len(), anim.TotalDuration())

	v.cfg, v.timeline, v.palette, v.transparent = cfg, tl, pal, transparent
	v.dirty = true
	return nil
}

// ===== FRAME LOOP =====

// tick advances playback by dt, redraws when the frame or grid size changed, then presents
func (v *viewer) tick(dt time.Duration) error {
	v.timeline.Advance(dt)
	buf := v.renderer.Buffer()
	if buf.Width() != v.drawnW || buf.Height() != v.drawnH {
		v.dirty = true
	}
	if v.dirty {
		if err := v.draw(); err != nil {
			return err
		}
	}
	return v.renderer.Present()
}

// draw centers the current frame in the buffer, cropping what does not fit
func (v *viewer) draw() error {
	buf := v.renderer.Buffer()
	buf.Clear()
	v.drawnW, v.drawnH = buf.Width(), buf.Height()
	v.dirty = false

	frame := fitFrame(v.timeline.CurrentFrame(), buf.Width(), buf.Height())
	if frame == nil {
		return nil
	}
	x := (buf.Width() - frame.Width()) / 2
	y := (buf.Height() - frame.Height()) / 2
	return render.DrawSpriteMasked(buf, x, y, frame, v.transparent)
}

// fitFrame crops m around its center to at most w x h, nil when nothing fits
func fitFrame(m *sprite.Map, w, h int) *sprite.Map {
	fw, fh := m.Size()
	cw, ch := min(fw, w), min(fh, h)
	if cw <= 0 || ch <= 0 {
		return nil
	}
	if cw == fw && ch == fh {
		return m
	}
	c, err := m.Crop((fw-cw)/2, (fh-ch)/2, cw, ch)
	if err != nil {
		return nil
	}
	return c
}

// ===== CONTROLS =====

// handle applies a user action; false means quit
func (v *viewer) handle(a action) bool {
	if a == actionNone {
		return true
	}
	tl := v.timeline
	n := tl.Animation().Len()
	switch a {
	case actionQuit:
		return false
	case actionToggle:
		if tl.State() == animation.Playing {
			tl.Pause()
		} else {
			tl.Play()
		}
	case actionRestart:
		tl.Stop()
		tl.Play()
	case actionNext:
		tl.Seek((tl.CurrentIndex() + 1) % n)
	case actionPrev:
		tl.Seek((tl.CurrentIndex() - 1 + n) % n)
	case actionFaster:
		tl.SetSpeed(min(tl.Speed()*2, parameter.MaxSpeed))
	case actionSlower:
		tl.SetSpeed(max(tl.Speed()/2, parameter.MinSpeed))
	case actionDirection:
		tl.SetDirection((tl.Direction() + 1) % (animation.PingPong + 1))
	}
	log.Printf("glyphview: %s -> %s frame %d speed %g %s", a, tl.State(), tl.CurrentIndex(), tl.Speed(), tl.Direction())
	return true
}
