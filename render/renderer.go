package render

import (
	"log"
	"time"

	"github.com/lixenwraith/glyphgrid/terminal"
)

// Renderer is a presentation session owning one FrameBuffer and one Device
type Renderer struct {
	device Device
	buffer *FrameBuffer
	logger *log.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger logs resize handling
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer sizes a frame buffer to the device
func NewRenderer(d Device, opts ...Option) (*Renderer, error) {
	w, h := d.Size()
	fb, err := NewFrameBuffer(w, h)
	if err != nil {
		return nil, err
	}
	r := &Renderer{device: d, buffer: fb}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Buffer returns the frame buffer to draw into
func (r *Renderer) Buffer() *FrameBuffer { return r.buffer }

// Device returns the output device
func (r *Renderer) Device() Device { return r.device }

// Present applies pending resize events, then flushes the damage rectangle
func (r *Renderer) Present() error {
	start := time.Now()
	defer func() { metricPresentSeconds.Observe(time.Since(start).Seconds()) }()

	if err := r.drainResize(); err != nil {
		return err
	}
	_, _, err := r.buffer.Flush(r.device)
	return err
}

// drainResize consumes queued resize events without blocking and applies the newest
func (r *Renderer) drainResize() error {
	rz, ok := r.device.(Resizer)
	if !ok {
		return nil
	}
	ch := rz.ResizeChan()

	var last terminal.ResizeEvent
	pending := false
drain:
	for {
		select {
		case ev := <-ch:
			last, pending = ev, true
		default:
			break drain
		}
	}
	if !pending || (last.Width == r.buffer.Width() && last.Height == r.buffer.Height()) {
		return nil
	}
	if err := r.buffer.Resize(last.Width, last.Height); err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.Printf("render: resized to %dx%d", last.Width, last.Height)
	}
	return nil
}

// Apply forwards settings to the device; a palette change repaints the whole grid
func (r *Renderer) Apply(s terminal.Settings) error {
	if s.IsZero() {
		return nil
	}
	if c, ok := r.device.(Configurer); ok {
		if err := c.Apply(s); err != nil {
			return err
		}
	}
	if s.Palette != nil {
		r.buffer.Invalidate()
	}
	return nil
}
