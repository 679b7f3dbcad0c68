package main

import "math"

// cellAspect is the height/width ratio of a terminal cell
const cellAspect = 2.0

// face maps dial space onto terminal cells
// Angle 0 is straight up under the marker, positive is clockwise
type face struct {
	cx, cy int
	radius float64 // in rows
}

func newFace(w, h int) face {
	// Leave three rows for the header and status lines
	r := math.Min(float64(h-4)/2, float64(w-2)/(2*cellAspect))
	if r < 1 {
		r = 1
	}
	return face{cx: w / 2, cy: (h-1)/2 + 1, radius: r}
}

// cell returns the cell at angle a and fractional radius rf (1 = rim)
func (f face) cell(a, rf float64) (int, int) {
	r := f.radius * rf
	x := float64(f.cx) + math.Sin(a)*r*cellAspect
	y := float64(f.cy) - math.Cos(a)*r
	return int(math.Round(x)), int(math.Round(y))
}

// pointerAngle converts a mouse cell to a dial angle, ok false at the exact centre
func (f face) pointerAngle(x, y int) (float64, bool) {
	dx := float64(x-f.cx) / cellAspect
	dy := float64(y - f.cy)
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return math.Atan2(dx, -dy), true
}
