package palette

import "math"

// HSP perceived-brightness weights (Finley)
const (
	hspPr = 0.299
	hspPg = 0.587
	hspPb = 0.114

	// hspBrightnessWeight scales perceived brightness differences above hue and saturation
	hspBrightnessWeight = 3.0
)

// HSP is the Hue, Saturation, Perceived-brightness form of a color
// Hue in degrees [0,360), saturation in percent [0,100], perceived brightness in [0,255]
type HSP struct {
	H, S, P float64
}

// ToHSP converts using floating-point division throughout
func ToHSP(c Color) HSP {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	p := math.Sqrt(r*r*hspPr + g*g*hspPg + b*b*hspPb)

	if r == g && r == b {
		return HSP{H: 0, S: 0, P: p}
	}

	var h, s float64
	switch {
	case r >= g && r >= b: // R is largest
		if b >= g {
			h = 6.0/6.0 - 1.0/6.0*(b-g)/(r-g)
			s = 1.0 - g/r
		} else {
			h = 0.0/6.0 + 1.0/6.0*(g-b)/(r-b)
			s = 1.0 - b/r
		}
	case g >= r && g >= b: // G is largest
		if r >= b {
			h = 2.0/6.0 - 1.0/6.0*(r-b)/(g-b)
			s = 1.0 - b/g
		} else {
			h = 2.0/6.0 + 1.0/6.0*(b-r)/(g-r)
			s = 1.0 - r/g
		}
	default: // B is largest
		if g >= r {
			h = 4.0/6.0 - 1.0/6.0*(g-r)/(b-r)
			s = 1.0 - r/b
		} else {
			h = 4.0/6.0 + 1.0/6.0*(r-g)/(b-g)
			s = 1.0 - g/b
		}
	}

	h *= 360.0
	if h >= 360.0 {
		h -= 360.0
	}
	return HSP{H: h, S: s * 100.0, P: p}
}

// hspDistance uses the shorter hue arc and weights brightness x3
func hspDistance(a, b HSP) float64 {
	dh := math.Abs(a.H - b.H)
	if dh > 180.0 {
		dh = 360.0 - dh
	}
	ds := a.S - b.S
	dp := hspBrightnessWeight * (a.P - b.P)
	return math.Sqrt(dh*dh + ds*ds + dp*dp)
}
