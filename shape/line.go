// Package shape rasterizes primitive shapes into cell coordinates and sprite maps.
package shape

import "image"

// Line returns every grid point from (x0,y0) to (x1,y1) inclusive, in travel order
// Axis-aligned lines take a direct fill loop, all other octants use the error-accumulator stepper
func Line(x0, y0, x1, y1 int) []image.Point {
	dx := x1 - x0
	dy := y1 - y0
	absDx, absDy := abs(dx), abs(dy)

	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
	}
	if dy < 0 {
		stepY = -1
	}

	// Degenerate: vertical or horizontal
	if dx == 0 {
		pts := make([]image.Point, 0, absDy+1)
		for y := y0; ; y += stepY {
			pts = append(pts, image.Point{X: x0, Y: y})
			if y == y1 {
				break
			}
		}
		return pts
	}
	if dy == 0 {
		pts := make([]image.Point, 0, absDx+1)
		for x := x0; ; x += stepX {
			pts = append(pts, image.Point{X: x, Y: y0})
			if x == x1 {
				break
			}
		}
		return pts
	}

	pts := make([]image.Point, 0, max(absDx, absDy)+1)
	err := absDx - absDy
	x, y := x0, y0
	for {
		pts = append(pts, image.Point{X: x, Y: y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -absDy {
			err -= absDy
			x += stepX
		}
		if e2 < absDx {
			err += absDx
			y += stepY
		}
	}
	return pts
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
