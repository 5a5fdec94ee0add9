package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"

	"LocalPaint/internal/state"
)

// pdfSurface replays commands as PDF vector drawing, one canvas pixel
// per point.
type pdfSurface struct {
	pdf        *gofpdf.Fpdf
	origin     state.Point
	width      float64
	height     float64
	background color.Color
}

// glyphFont is goregular, the face the raster export uses, embedded as a
// UTF-8 font so sticker glyphs survive.
const glyphFont = "goregular"

var _ state.Surface = (*pdfSurface)(nil)

func rgb(c color.Color) (int, int, int) {
	if c == nil {
		return 0, 0, 0
	}
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func (s *pdfSurface) at(p state.Point) (float64, float64) {
	return p.X - s.origin.X, p.Y - s.origin.Y
}

func (s *pdfSurface) Clear() {
	if s.background == nil {
		return
	}
	if _, _, _, a := s.background.RGBA(); a == 0 {
		return
	}
	s.pdf.SetFillColor(rgb(s.background))
	s.pdf.Rect(0, 0, s.width, s.height, "F")
}

func (s *pdfSurface) Polyline(points []state.Point, width float64, c color.Color) {
	if len(points) == 0 {
		return
	}
	s.pdf.SetDrawColor(rgb(c))
	s.pdf.SetLineWidth(width)
	s.pdf.SetLineCapStyle("round")
	s.pdf.SetLineJoinStyle("round")

	x, y := s.at(points[0])
	s.pdf.MoveTo(x, y)
	for _, p := range points[1:] {
		x, y = s.at(p)
		s.pdf.LineTo(x, y)
	}
	s.pdf.DrawPath("D")
}

func (s *pdfSurface) Circle(center state.Point, radius float64, c color.Color) {
	s.pdf.SetFillColor(rgb(c))
	x, y := s.at(center)
	s.pdf.Circle(x, y, radius, "F")
}

// Glyph writes the glyph centred on at.
func (s *pdfSurface) Glyph(at state.Point, glyph string, size float64, c color.Color) {
	if glyph == "" {
		return
	}
	s.pdf.SetFont(glyphFont, "", size)
	s.pdf.SetTextColor(rgb(c))
	x, y := s.at(at)
	s.pdf.Text(x-s.pdf.GetStringWidth(glyph)/2, y+size*0.35, glyph)
}

// PDF writes cmds as a single page the size of the exported area.
func PDF(w io.Writer, cmds []state.Command, opts Options) error {
	area := opts.region(cmds)
	if area.Width <= 0 || area.Height <= 0 {
		return fmt.Errorf("export pdf: empty canvas %vx%v", area.Width, area.Height)
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: area.Width, Ht: area.Height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddUTF8FontFromBytes(glyphFont, "", goregular.TTF)
	if err := p.Error(); err != nil {
		return fmt.Errorf("export pdf: load font: %w", err)
	}
	p.AddPage()

	surface := &pdfSurface{
		pdf:        p,
		origin:     state.Point{X: area.X, Y: area.Y},
		width:      area.Width,
		height:     area.Height,
		background: opts.Background,
	}
	surface.Clear()
	for _, cmd := range cmds {
		cmd.Render(surface)
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}
