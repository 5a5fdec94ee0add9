package state

import "image/color"

type drawCall struct {
	op     string
	points []Point
	glyph  string
	size   float64
	color  color.Color
}

// recorder is a Surface that remembers every draw call.
type recorder struct {
	calls []drawCall
}

func (r *recorder) Clear() {
	r.calls = append(r.calls, drawCall{op: "clear"})
}

func (r *recorder) Polyline(points []Point, width float64, c color.Color) {
	r.calls = append(r.calls, drawCall{op: "polyline", points: points, size: width, color: c})
}

func (r *recorder) Glyph(at Point, glyph string, size float64, c color.Color) {
	r.calls = append(r.calls, drawCall{op: "glyph", points: []Point{at}, glyph: glyph, size: size, color: c})
}

func (r *recorder) Circle(center Point, radius float64, c color.Color) {
	r.calls = append(r.calls, drawCall{op: "circle", points: []Point{center}, size: radius, color: c})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}
