package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric selects the color distance used for nearest-color matching
type Metric uint8

const (
	MetricRGB Metric = iota // Euclidean over R,G,B
	MetricHSP               // Hue/Saturation/Perceived-brightness
	MetricLab               // CIE76 distance in L*a*b*
)

var metricNames = [...]string{
	MetricRGB: "rgb",
	MetricHSP: "hsp",
	MetricLab: "lab",
}

// String implements fmt.Stringer
func (m Metric) String() string {
	if int(m) < len(metricNames) {
		return metricNames[m]
	}
	return fmt.Sprintf("Metric(%d)", uint8(m))
}

// ParseMetric parses a metric name, case-insensitive
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range metricNames {
		if name == s {
			return Metric(i), nil
		}
	}
	return MetricRGB, fmt.Errorf("palette: unknown metric %q", s)
}

// Quantizer maps arbitrary colors to the nearest palette index
// Per-entry representations are computed once; Nearest is pure and safe for concurrent use
type Quantizer struct {
	palette *Palette
	metric  Metric

	rgb [Size][3]float64
	hsp [Size]HSP
	lab [Size]colorful.Color
}

// NewQuantizer precomputes entry representations for the metric
func NewQuantizer(p *Palette, m Metric) *Quantizer {
	q := &Quantizer{palette: p, metric: m}
	for i, c := range p.colors {
		switch m {
		case MetricHSP:
			q.hsp[i] = ToHSP(c)
		case MetricLab:
			q.lab[i] = c.Colorful()
		default:
			q.rgb[i] = [3]float64{float64(c.R), float64(c.G), float64(c.B)}
		}
	}
	return q
}

// Palette returns the palette being matched against
func (q *Quantizer) Palette() *Palette {
	return q.palette
}

// Metric returns the distance metric
func (q *Quantizer) Metric() Metric {
	return q.metric
}

// Nearest returns the closest entry; ties resolve to the lowest index
func (q *Quantizer) Nearest(c Color) Index {
	best := Index(0)
	bestDist := math.Inf(1)

	switch q.metric {
	case MetricHSP:
		h := ToHSP(c)
		for i := range q.hsp {
			if d := hspDistance(h, q.hsp[i]); d < bestDist {
				bestDist = d
				best = Index(i)
			}
		}
	case MetricLab:
		cc := c.Colorful()
		for i := range q.lab {
			if d := cc.DistanceLab(q.lab[i]); d < bestDist {
				bestDist = d
				best = Index(i)
			}
		}
	default:
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		for i := range q.rgb {
			dr := r - q.rgb[i][0]
			dg := g - q.rgb[i][1]
			db := b - q.rgb[i][2]
			if d := math.Sqrt(dr*dr + dg*dg + db*db); d < bestDist {
				bestDist = d
				best = Index(i)
			}
		}
	}
	return best
}
