package export

import (
	"fmt"
	"image/png"
	"io"
	"math"

	"LocalPaint/internal/render"
	"LocalPaint/internal/state"
)

// PNG renders cmds at opts.Scale onto an offscreen raster and encodes it.
func PNG(w io.Writer, cmds []state.Command, opts Options) error {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	area := opts.region(cmds)
	width := int(math.Ceil(area.Width * opts.Scale))
	height := int(math.Ceil(area.Height * opts.Scale))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export png: empty canvas %dx%d", width, height)
	}

	surface := render.NewRaster(width, height, opts.Scale, opts.Background)
	surface.SetOrigin(state.Point{X: area.X, Y: area.Y})
	for _, cmd := range cmds {
		cmd.Render(surface)
	}

	if err := png.Encode(w, surface.Image()); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}
