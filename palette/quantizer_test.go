package palette

import (
	"math"
	"testing"
)

var allMetrics = []Metric{MetricRGB, MetricHSP, MetricLab}

// TestNearestSelf verifies every palette color quantizes to its own index
func TestNearestSelf(t *testing.T) {
	for _, name := range PresetNames() {
		p, _ := Preset(name)
		for _, m := range allMetrics {
			q := NewQuantizer(p, m)
			for i := Index(0); i <= MaxIndex; i++ {
				if got := q.Nearest(p.ColorAt(i)); got != i {
					t.Errorf("%s/%s: Nearest(ColorAt(%d)) = %d", name, m, i, got)
				}
			}
		}
	}
}

func TestNearestDeterministic(t *testing.T) {
	samples := []Color{{13, 200, 77}, {128, 127, 126}, {250, 5, 100}, {0, 0, 1}}
	for _, m := range allMetrics {
		q := NewQuantizer(Default, m)
		for _, c := range samples {
			a, b := q.Nearest(c), q.Nearest(c)
			if a != b {
				t.Errorf("%s: Nearest(%v) not deterministic: %d vs %d", m, c, a, b)
			}
			if !a.Valid() {
				t.Errorf("%s: Nearest(%v) returned invalid index", m, c)
			}
		}
	}
}

func TestNearestRGB(t *testing.T) {
	q := NewQuantizer(Default, MetricRGB)
	tests := []struct {
		in   Color
		want Index
	}{
		{Color{250, 10, 10}, 12}, // red
		{Color{5, 5, 5}, 0},      // black
		{Color{200, 200, 190}, 7},
		{Color{240, 250, 245}, 15},
		{Color{0, 120, 130}, 3},
	}
	for _, tt := range tests {
		if got := q.Nearest(tt.in); got != tt.want {
			t.Errorf("Nearest(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestNearestTieLowestIndex: a gray equidistant to black and white in RGB space picks black
func TestNearestTieLowestIndex(t *testing.T) {
	p := MustNew(
		Color{0, 0, 0}, Color{2, 2, 2}, Color{10, 0, 0}, Color{0, 10, 0},
		Color{0, 0, 10}, Color{20, 0, 0}, Color{0, 20, 0}, Color{0, 0, 20},
		Color{30, 0, 0}, Color{0, 30, 0}, Color{0, 0, 30}, Color{40, 0, 0},
		Color{0, 40, 0}, Color{0, 0, 40}, Color{50, 0, 0}, Color{0, 50, 0},
	)
	q := NewQuantizer(p, MetricRGB)
	if got := q.Nearest(Color{1, 1, 1}); got != 0 {
		t.Errorf("Tie should resolve to lowest index, got %d", got)
	}
}

func TestToHSP(t *testing.T) {
	tests := []struct {
		in   Color
		want HSP
	}{
		{Color{255, 0, 0}, HSP{H: 0, S: 100, P: 255 * math.Sqrt(hspPr)}},
		{Color{0, 255, 0}, HSP{H: 120, S: 100, P: 255 * math.Sqrt(hspPg)}},
		{Color{0, 0, 255}, HSP{H: 240, S: 100, P: 255 * math.Sqrt(hspPb)}},
		{Color{128, 128, 128}, HSP{H: 0, S: 0, P: 128}},
	}
	for _, tt := range tests {
		got := ToHSP(tt.in)
		if math.Abs(got.H-tt.want.H) > 1e-9 || math.Abs(got.S-tt.want.S) > 1e-9 || math.Abs(got.P-tt.want.P) > 1e-9 {
			t.Errorf("ToHSP(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestHSPDistanceShortArc(t *testing.T) {
	a := HSP{H: 350, S: 50, P: 100}
	b := HSP{H: 10, S: 50, P: 100}
	if d := hspDistance(a, b); math.Abs(d-20) > 1e-9 {
		t.Errorf("Expected short arc distance 20, got %f", d)
	}
	c := HSP{H: 10, S: 50, P: 101}
	if d := hspDistance(b, c); math.Abs(d-3) > 1e-9 {
		t.Errorf("Brightness should be weighted x3, got %f", d)
	}
}

func TestParseMetric(t *testing.T) {
	for _, m := range allMetrics {
		got, err := ParseMetric(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMetric("manhattan"); err == nil {
		t.Error("Expected error for unknown metric")
	}
}
