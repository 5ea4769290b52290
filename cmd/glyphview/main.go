// glyphview plays an image, GIF, WebP or sprite file on the terminal through the 16-color pipeline
//
// Usage examples:
//
// # Animated GIF on the pico8 palette, 60 columns wide
// ./glyphview -palette pico8 -w 60 loop.gif
//
// # Sprite file through tcell, config hot reloaded, metrics on :9100
// ./glyphview -config glyphgrid.yaml -device tcell -metrics :9100 logo.ggs.zst
//
// Keys: space pause, r restart, h/l or arrows step, +/- speed, d direction, q quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/glyphgrid/config"
	"github.com/lixenwraith/glyphgrid/render"
	"github.com/lixenwraith/glyphgrid/terminal"
)

var (
	configFlag  = flag.String("config", "", "YAML config file, reloaded on change")
	deviceFlag  = flag.String("device", "", "Output device: ansi, tcell")
	colorFlag   = flag.String("color", "", "Color mode: auto, 256, truecolor, palette")
	paletteFlag = flag.String("palette", "", "Palette preset")
	metricFlag  = flag.String("metric", "", "Color distance: rgb, hsp, lab")
	extractFlag = flag.Bool("extract", false, "Derive the palette from the first frame")
	widthFlag   = flag.Int("w", 0, "Import width in cells (0 = keep aspect/source)")
	heightFlag  = flag.Int("h", 0, "Import height in cells (0 = keep aspect/source)")
	fpsFlag     = flag.Int("fps", 0, "Presentation rate")
	metricsFlag = flag.String("metrics", "", "Serve Prometheus metrics on this address")
	debugFlag   = flag.Bool("debug", false, "Write a debug log to logs/glyphview.log")
)

// device is an output the viewer can drive and tear down
type device interface {
	render.Device
	Fini()
}

func main() {
	// Restore the terminal before printing anything on a crash
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGLYPHVIEW CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: glyphview [options] <image|gif|webp|sprite.ggs[.gz|.zst]>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Printf("glyphview: %v", err)
		fmt.Fprintf(os.Stderr, "glyphview: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dev, actions, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Fini()

	r, err := render.NewRenderer(dev, render.WithLogger(log.Default()))
	if err != nil {
		return err
	}
	v, err := newViewer(r, path, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if addr := cfg.Render.MetricsAddr; addr != "" {
		srv := serveMetrics(addr)
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), time.Second)
			defer scancel()
			srv.Shutdown(sctx)
		}()
	}

	reloads := make(chan *config.Config, 1)
	if *configFlag != "" {
		go func() {
			err := config.Watch(ctx, *configFlag, func(c *config.Config, err error) {
				if err != nil {
					log.Printf("glyphview: reload: %v", err)
					return
				}
				applyFlags(c)
				select {
				case <-reloads:
				default:
				}
				reloads <- c
			})
			if err != nil {
				log.Printf("glyphview: watch: %v", err)
			}
		}()
	}

	return loop(ctx, v, actions, reloads)
}

// loop drives playback at the configured rate until quit, signal or a device error
func loop(ctx context.Context, v *viewer, actions <-chan action, reloads <-chan *config.Config) error {
	ticker := time.NewTicker(v.cfg.FrameInterval())
	defer ticker.Stop()

	if err := v.tick(0); err != nil {
		return err
	}
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case a := <-actions:
			if !v.handle(a) {
				return nil
			}
		case c := <-reloads:
			if err := c.Validate(); err != nil {
				log.Printf("glyphview: reload rejected: %v", err)
				continue
			}
			if err := v.load(c); err != nil {
				log.Printf("glyphview: reload failed: %v", err)
				continue
			}
			ticker.Reset(c.FrameInterval())
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := v.tick(dt); err != nil {
				return err
			}
		}
	}
}

// ===== SETUP =====

// loadConfig layers the config file (if any) and flag overrides over the defaults
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		c, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides config fields with explicitly set flags
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Render.Device = *deviceFlag
		case "color":
			cfg.Render.ColorMode = *colorFlag
		case "palette":
			cfg.Palette.Preset = *paletteFlag
			cfg.Palette.Colors = nil
		case "metric":
			cfg.Metric = *metricFlag
		case "extract":
			cfg.Palette.Extract = *extractFlag
		case "w", "h":
			cfg.Import.Width, cfg.Import.Height, cfg.Import.Percent = *widthFlag, *heightFlag, 0
		case "fps":
			cfg.Render.FPS = *fpsFlag
		case "metrics":
			cfg.Render.MetricsAddr = *metricsFlag
		}
	})
}

// openDevice initializes the configured output and its action source
func openDevice(cfg *config.Config) (device, <-chan action, error) {
	pal, err := cfg.BuildPalette()
	if err != nil {
		return nil, nil, err
	}
	actions := make(chan action, 16)

	if cfg.Render.Device == config.DeviceTcell {
		t, err := terminal.NewTcell(nil, pal)
		if err != nil {
			return nil, nil, err
		}
		go func() {
			for ev := range t.Events() {
				if key, ok := ev.(*tcell.EventKey); ok {
					if a := tcellAction(key); a != actionNone {
						actions <- a
					}
				}
			}
		}()
		return t, actions, nil
	}

	mode, err := cfg.ColorMode()
	if err != nil {
		return nil, nil, err
	}
	a := terminal.NewANSI(os.Stdout, terminal.WithColorMode(mode), terminal.WithPalette(pal))
	if err := a.Init(); err != nil {
		return nil, nil, err
	}
	go readActions(os.Stdin, actions)
	log.Printf("glyphview: ansi device %s", mode)
	return a, actions, nil
}

// serveMetrics exposes the render metrics over HTTP
func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("glyphview: metrics: %v", err)
		}
	}()
	log.Printf("glyphview: metrics on %s/metrics", addr)
	return srv
}
