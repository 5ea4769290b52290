// sprite-convert turns images into glyphgrid sprite files
//
// Usage examples:
//
// # PNG to a raw sprite file next to the input, 40 cells wide
// ./sprite-convert -w 40 logo.png
//
// # Several GIFs, frame 3 of each, zstd compressed, palette embedded from the image
// ./sprite-convert -frame 3 -extract -z zstd a.gif b.gif
//
// # Preview the result as ANSI text
// ./sprite-convert -ansi - logo.png | less -R
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/glyphgrid/bitmap"
	"github.com/lixenwraith/glyphgrid/config"
	"github.com/lixenwraith/glyphgrid/palette"
	"github.com/lixenwraith/glyphgrid/parameter"
	"github.com/lixenwraith/glyphgrid/sprite"
	"github.com/lixenwraith/glyphgrid/spritefile"
	"github.com/lixenwraith/glyphgrid/terminal"
)

// options are the per-run conversion settings after flag parsing
type options struct {
	output      string
	ansi        string
	compression string
	frame       int
	version     int
}

func main() {
	var (
		configPath string
		opts       options
		preset     string
		metric     string
		resampler  string
		extract    bool
		width      int
		height     int
		percent    float64
		alpha      int
	)

	flag.StringVar(&configPath, "config", "", "YAML config supplying palette/import defaults")
	flag.StringVar(&opts.output, "o", "", "Output path (single input only; default <input>.ggs)")
	flag.StringVar(&opts.ansi, "ansi", "", "Also write the sprite as ANSI text (use '-' for stdout)")
	flag.StringVar(&opts.compression, "z", "none", "Compression for default output names: none, gzip, zstd")
	flag.IntVar(&opts.frame, "frame", 0, "Frame index for animated sources")
	flag.IntVar(&opts.version, "version", 0, "File version: 1, 2 (0 = 2 when a palette is embedded)")
	flag.StringVar(&preset, "palette", "", "Palette preset")
	flag.StringVar(&metric, "metric", "", "Color distance: rgb, hsp, lab")
	flag.StringVar(&resampler, "resampler", "", "Resize filter: nearest, bilinear, catmullrom")
	flag.BoolVar(&extract, "extract", false, "Derive the palette from the image and embed it")
	flag.IntVar(&width, "w", 0, "Width in cells (0 = keep aspect/source)")
	flag.IntVar(&height, "h", 0, "Height in cells (0 = keep aspect/source)")
	flag.Float64Var(&percent, "percent", 0, "Scale to a percentage of the source size")
	flag.IntVar(&alpha, "alpha", 0, "Alpha cutoff below which pixels are empty")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sprite-convert [options] <image> [image...]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if flag.NArg() > 1 && (opts.output != "" || opts.ansi == "-") {
		log.Fatal("sprite-convert: -o and -ansi - take a single input")
	}

	cfg := config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("sprite-convert: %v", err)
		}
		cfg = c
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "palette":
			cfg.Palette.Preset, cfg.Palette.Colors = preset, nil
		case "metric":
			cfg.Metric = metric
		case "resampler":
			cfg.Import.Resampler = resampler
		case "extract":
			cfg.Palette.Extract = extract
		case "w", "h", "percent":
			cfg.Import.Width, cfg.Import.Height, cfg.Import.Percent = width, height, percent
		case "alpha":
			cfg.Import.AlphaCutoff = alpha
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("sprite-convert: %v", err)
	}

	failed := 0
	for _, in := range flag.Args() {
		out, err := convert(cfg, in, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", in, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stderr, "%s -> %s\n", in, out)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// outputPath derives the sprite path for in when -o is not given
func outputPath(in string, opts options) (string, error) {
	if opts.output != "" {
		return opts.output, nil
	}
	base := strings.TrimSuffix(in, filepath.Ext(in)) + parameter.SpriteFileExt
	switch opts.compression {
	case "", "none":
		return base, nil
	case "gzip", "gz":
		return base + ".gz", nil
	case "zstd", "zst":
		return base + ".zst", nil
	default:
		return "", fmt.Errorf("unknown compression %q", opts.compression)
	}
}

// convert imports one frame of in and saves it, returning the written path
func convert(cfg *config.Config, in string, opts options) (string, error) {
	out, err := outputPath(in, opts)
	if err != nil {
		return "", err
	}

	src, err := bitmap.LoadFrames(in)
	if err != nil {
		return "", err
	}
	if err := src.SelectFrame(opts.frame); err != nil {
		return "", err
	}

	pal, err := cfg.BuildPalette()
	if err != nil {
		return "", err
	}
	var embed *palette.Palette
	if cfg.Palette.Extract {
		rgba, ok := src.Frame().(*bitmap.RGBA)
		if !ok {
			return "", fmt.Errorf("palette extraction needs an RGBA frame")
		}
		if pal, err = palette.FromImage(rgba.Image()); err != nil {
			return "", err
		}
		embed = pal
	}
	metric, err := palette.ParseMetric(cfg.Metric)
	if err != nil {
		return "", err
	}
	imp, err := cfg.Importer(palette.NewQuantizer(pal, metric))
	if err != nil {
		return "", err
	}
	m, err := imp.Import(src.Frame(), cfg.TargetSize())
	if err != nil {
		return "", err
	}

	if opts.version == spritefile.Version2 && embed == nil {
		embed = pal
	}
	doc := &spritefile.Document{Version: opts.version, Sprite: m, Palette: embed}
	if err := spritefile.Save(out, doc); err != nil {
		return "", err
	}

	if opts.ansi != "" {
		if err := writeANSI(m, pal, opts.ansi); err != nil {
			return "", fmt.Errorf("ansi: %w", err)
		}
	}
	return out, nil
}

// writeANSI renders m as truecolor ANSI text to path, or stdout for "-"
func writeANSI(m *sprite.Map, pal *palette.Palette, path string) error {
	f := os.Stdout
	if path != "-" {
		var err error
		if f, err = os.Create(path); err != nil {
			return err
		}
		defer f.Close()
	}
	w, h := m.Size()
	dev := terminal.NewANSI(f,
		terminal.WithColorMode(terminal.ColorModeTrueColor),
		terminal.WithPalette(pal),
	)
	return dev.WriteText(w, h, m.Cells())
}
