package state

import (
	"image/color"
	"strings"
)

// Point is a pixel coordinate in canvas space.
type Point struct{ X, Y float64 }

// Tool is the style applied to the next new command.
// A tool with a glyph places stickers, otherwise it draws strokes.
type Tool struct {
	Name      string  `toml:"name" json:"name"`
	Thickness float64 `toml:"thickness" json:"thickness,omitempty"`
	Glyph     string  `toml:"glyph" json:"glyph,omitempty"`
	GlyphSize float64 `toml:"glyph_size" json:"glyph_size,omitempty"`
}

const (
	DefaultThickness = 4.0
	DefaultGlyphSize = 24.0
)

// IsSticker reports whether the tool places glyphs instead of drawing lines.
func (t Tool) IsSticker() bool {
	return strings.TrimSpace(t.Glyph) != ""
}

func (t Tool) thickness() float64 {
	if t.Thickness <= 0 {
		return DefaultThickness
	}
	return t.Thickness
}

func (t Tool) glyphSize() float64 {
	if t.GlyphSize <= 0 {
		return DefaultGlyphSize
	}
	return t.GlyphSize
}

// Surface is anything a command or the cursor preview can draw into.
type Surface interface {
	Clear()
	Polyline(points []Point, width float64, c color.Color)
	Glyph(at Point, glyph string, size float64, c color.Color)
	Circle(center Point, radius float64, c color.Color)
}

// Command is one drawable gesture. Points are appended while the gesture is
// in progress; once sealed the command never changes again.
type Command interface {
	ID() string
	Points() []Point
	Extend(p Point) bool
	Seal()
	Sealed() bool
	Render(s Surface)
	Bounds() Rect
}

// NewCommand starts a command anchored at start with the style of tool.
func NewCommand(start Point, tool Tool, c color.Color) Command {
	if c == nil {
		c = color.Black
	}
	g := gesture{id: newCommandID(), points: []Point{start}}
	if tool.IsSticker() {
		return &Sticker{
			gesture: g,
			Glyph:   strings.TrimSpace(tool.Glyph),
			Size:    tool.glyphSize(),
			Color:   c,
		}
	}
	return &Stroke{
		gesture:   g,
		Thickness: tool.thickness(),
		Color:     c,
	}
}
