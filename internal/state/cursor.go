package state

import "image/color"

// Preview is a snapshot of the cursor state.
type Preview struct {
	Active bool
	X, Y   float64
	Tool   Tool
	Color  color.Color
}

// Cursor is the transient pointer preview. It is never part of History and
// every update overwrites it.
type Cursor struct {
	preview Preview
}

// Update replaces the preview with the pointer position and current style.
func (c *Cursor) Update(x, y float64, tool Tool, col color.Color) {
	c.preview = Preview{Active: true, X: x, Y: y, Tool: tool, Color: col}
}

// Restyle keeps the position but swaps the tool and colour.
func (c *Cursor) Restyle(tool Tool, col color.Color) {
	if !c.preview.Active {
		return
	}
	c.preview.Tool = tool
	c.preview.Color = col
}

// Hide drops the preview until the next Update.
func (c *Cursor) Hide() {
	c.preview = Preview{}
}

func (c *Cursor) Preview() Preview { return c.preview }

// Render draws the preview: a glyph for sticker tools, otherwise a circle
// with the diameter of the current line width.
func (c *Cursor) Render(s Surface) {
	p := c.preview
	if !p.Active {
		return
	}
	col := p.Color
	if col == nil {
		col = color.Black
	}
	at := Point{X: p.X, Y: p.Y}
	if p.Tool.IsSticker() {
		s.Glyph(at, p.Tool.Glyph, p.Tool.glyphSize(), col)
		return
	}
	s.Circle(at, p.Tool.thickness()/2, col)
}
