// Package export turns committed drawing history into downloadable files.
// Commands are replayed onto an offscreen surface, never onto the live
// canvas.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"time"

	"LocalPaint/internal/state"
)

// ErrUnknownFormat is returned for formats other than png and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "image/png"
}

// Options controls the exported area and resolution.
type Options struct {
	// Width and Height are the canvas size in canvas pixels.
	Width, Height int
	// Scale multiplies the canvas resolution. PDF output ignores it.
	Scale float64
	// Crop trims the output to the area covered by commands.
	Crop       bool
	Background color.Color
}

// region returns the canvas area to export.
func (o Options) region(cmds []state.Command) state.Rect {
	full := state.Rect{Width: float64(o.Width), Height: float64(o.Height)}
	if !o.Crop {
		return full
	}
	b := state.BoundsOf(cmds)
	if b.Empty() || !b.Overlaps(full) {
		return full
	}

	minX, minY := math.Max(b.X, 0), math.Max(b.Y, 0)
	maxX := math.Min(b.X+b.Width, full.Width)
	maxY := math.Min(b.Y+b.Height, full.Height)
	return state.Rect{
		X:      math.Floor(minX),
		Y:      math.Floor(minY),
		Width:  math.Ceil(maxX) - math.Floor(minX),
		Height: math.Ceil(maxY) - math.Floor(minY),
	}
}

// Write encodes cmds in the given format.
func Write(w io.Writer, format Format, cmds []state.Command, opts Options) error {
	switch format {
	case FormatPNG:
		return PNG(w, cmds, opts)
	case FormatPDF:
		return PDF(w, cmds, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Filename names an export after the moment it was taken.
func Filename(prefix string, format Format, now time.Time) string {
	if prefix == "" {
		prefix = "sketch"
	}
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("20060102-150405"), format)
}
