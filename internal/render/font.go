package render

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontOnce sync.Once
	fontErr  error
	regular  *opentype.Font
)

// faceCache holds goregular faces by whole-pixel size. Faces are not safe
// for concurrent use, so every Raster keeps its own cache.
type faceCache map[int]font.Face

func (fc faceCache) get(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}

	px := int(math.Round(size))
	if px < 1 {
		px = 1
	}
	if f, ok := fc[px]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: float64(px), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %d: %w", px, err)
	}
	fc[px] = f
	return f, nil
}
