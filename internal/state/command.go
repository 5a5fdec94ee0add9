package state

import "image/color"

// gesture is the point log shared by every command variant.
type gesture struct {
	id     string
	points []Point
	sealed bool
}

func (g *gesture) ID() string { return g.id }

func (g *gesture) Points() []Point {
	out := make([]Point, len(g.points))
	copy(out, g.points)
	return out
}

// Extend appends p while the gesture is in progress. Sealed gestures ignore it.
func (g *gesture) Extend(p Point) bool {
	if g.sealed {
		return false
	}
	g.points = append(g.points, p)
	return true
}

func (g *gesture) Seal()        { g.sealed = true }
func (g *gesture) Sealed() bool { return g.sealed }

// Stroke is a connected polyline with a fixed thickness and colour.
type Stroke struct {
	gesture
	Thickness float64
	Color     color.Color
}

var _ Command = (*Stroke)(nil)

// Render draws one polyline through every point. A single point is drawn
// as a round dot of the stroke's thickness.
func (s *Stroke) Render(surface Surface) {
	if len(s.points) == 0 {
		return
	}
	if len(s.points) == 1 {
		surface.Circle(s.points[0], s.Thickness/2, s.Color)
		return
	}
	surface.Polyline(s.Points(), s.Thickness, s.Color)
}

func (s *Stroke) Bounds() Rect {
	return boundsOf(s.points).Pad(s.Thickness / 2)
}

// Sticker stamps a glyph at every recorded point.
type Sticker struct {
	gesture
	Glyph string
	Size  float64
	Color color.Color
}

var _ Command = (*Sticker)(nil)

func (s *Sticker) Render(surface Surface) {
	for _, p := range s.points {
		surface.Glyph(p, s.Glyph, s.Size, s.Color)
	}
}

func (s *Sticker) Bounds() Rect {
	return boundsOf(s.points).Pad(s.Size / 2)
}
