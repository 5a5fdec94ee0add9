// Package render rasterizes drawing commands and runs the redraw loop.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"LocalPaint/internal/state"
)

// Raster is a state.Surface backed by an RGBA image.
// Canvas coordinates are shifted by Origin and multiplied by Scale.
type Raster struct {
	img        *image.RGBA
	scale      float64
	origin     state.Point
	background color.Color
	faces      faceCache
}

var _ state.Surface = (*Raster)(nil)

// NewRaster creates a width x height pixel surface. A nil background
// clears to transparent.
func NewRaster(width, height int, scale float64, background color.Color) *Raster {
	if scale <= 0 {
		scale = 1
	}
	if background == nil {
		background = color.Transparent
	}
	r := &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		scale:      scale,
		background: background,
		faces:      faceCache{},
	}
	r.Clear()
	return r
}

// Image returns the backing image. It is reused across redraws.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Scale() float64 { return r.scale }

// SetOrigin maps canvas point p to pixel (0, 0).
func (r *Raster) SetOrigin(p state.Point) { r.origin = p }

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
}

func (r *Raster) project(p state.Point) (float64, float64) {
	return (p.X - r.origin.X) * r.scale, (p.Y - r.origin.Y) * r.scale
}

func (r *Raster) scanner() (*rasterx.ScannerGV, int, int) {
	b := r.img.Bounds()
	w, h := b.Dx(), b.Dy()
	return rasterx.NewScannerGV(w, h, r.img, b), w, h
}

// Polyline strokes the points with round caps and joins.
func (r *Raster) Polyline(points []state.Point, width float64, c color.Color) {
	if len(points) == 0 {
		return
	}
	px := width * r.scale
	if px < 1 {
		px = 1
	}

	scanner, w, h := r.scanner()
	d := rasterx.NewDasher(w, h, scanner)
	d.SetStroke(fixed.Int26_6(px*64), 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	d.SetColor(c)

	x, y := r.project(points[0])
	d.Start(rasterx.ToFixedP(x, y))
	for _, p := range points[1:] {
		x, y = r.project(p)
		d.Line(rasterx.ToFixedP(x, y))
	}
	d.Stop(false)
	d.Draw()
}

// Circle fills a disc.
func (r *Raster) Circle(center state.Point, radius float64, c color.Color) {
	rad := radius * r.scale
	if rad < 0.5 {
		rad = 0.5
	}

	scanner, w, h := r.scanner()
	f := rasterx.NewFiller(w, h, scanner)
	f.SetColor(c)
	x, y := r.project(center)
	rasterx.AddCircle(x, y, rad, f)
	f.Draw()
}

// Glyph draws text centred on at.
func (r *Raster) Glyph(at state.Point, glyph string, size float64, c color.Color) {
	if glyph == "" {
		return
	}
	face, err := r.faces.get(size * r.scale)
	if err != nil {
		return
	}

	d := &font.Drawer{Dst: r.img, Src: image.NewUniform(c), Face: face}
	advance := d.MeasureString(glyph)
	m := face.Metrics()

	x, y := r.project(at)
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(x*64) - advance/2,
		Y: fixed.Int26_6(y*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(glyph)
}
