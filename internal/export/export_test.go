package export

import (
	"bytes"
	"compress/zlib"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalPaint/internal/state"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func commit(tool state.Tool, points ...state.Point) state.Command {
	cmd := state.NewCommand(points[0], tool, color.Black)
	for _, p := range points[1:] {
		cmd.Extend(p)
	}
	cmd.Seal()
	return cmd
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestPNGIsUpscaled(t *testing.T) {
	cmds := []state.Command{commit(state.Tool{Thickness: 2}, state.Point{X: 0, Y: 8}, state.Point{X: 32, Y: 8})}

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, cmds, Options{Width: 32, Height: 16, Scale: 4, Background: white}))

	img := decode(t, buf.Bytes())
	assert.Equal(t, image.Rect(0, 0, 128, 64), img.Bounds())
	assert.False(t, isWhite(img.At(64, 32)), "stroke is drawn at the scaled position")
	assert.True(t, isWhite(img.At(64, 4)))
}

func TestPNGEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, nil, Options{Width: 8, Height: 8, Scale: 2, Background: white}))

	img := decode(t, buf.Bytes())
	assert.Equal(t, 16, img.Bounds().Dx())
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.True(t, isWhite(img.At(x, y)))
		}
	}
}

func TestPNGCropsToContent(t *testing.T) {
	cmds := []state.Command{commit(state.Tool{Thickness: 2}, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 10})}

	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, cmds, Options{Width: 64, Height: 64, Scale: 1, Crop: true, Background: white}))

	img := decode(t, buf.Bytes())
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestCropFallsBackToFullCanvas(t *testing.T) {
	opts := Options{Width: 20, Height: 10, Crop: true}
	assert.Equal(t, state.Rect{Width: 20, Height: 10}, opts.region(nil))

	outside := []state.Command{commit(state.Tool{Thickness: 2}, state.Point{X: 100, Y: 100})}
	assert.Equal(t, state.Rect{Width: 20, Height: 10}, opts.region(outside))
}

func TestPDF(t *testing.T) {
	cmds := []state.Command{
		commit(state.Tool{Thickness: 3}, state.Point{X: 1, Y: 1}, state.Point{X: 30, Y: 30}),
		commit(state.Tool{Glyph: "A", GlyphSize: 12}, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 20}),
		commit(state.Tool{Thickness: 4}, state.Point{X: 5, Y: 5}),
	}

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, cmds, Options{Width: 32, Height: 32, Background: white}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

// pdfStreams returns every stream body of a PDF, inflated when compressed.
func pdfStreams(data []byte) [][]byte {
	var out [][]byte
	for {
		i := bytes.Index(data, []byte("stream\n"))
		if i < 0 {
			return out
		}
		data = data[i+len("stream\n"):]
		j := bytes.Index(data, []byte("\nendstream"))
		if j < 0 {
			return out
		}
		raw := data[:j]
		data = data[j+len("\nendstream"):]

		if r, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(r); err == nil {
				out = append(out, inflated)
				continue
			}
		}
		out = append(out, raw)
	}
}

func TestPDFStickerGlyphs(t *testing.T) {
	cmds := []state.Command{
		commit(state.Tool{Glyph: "♥"}, state.Point{X: 50, Y: 50}),
		commit(state.Tool{Glyph: "♪"}, state.Point{X: 20, Y: 20}, state.Point{X: 80, Y: 80}),
	}

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, cmds, Options{Width: 100, Height: 100, Background: white}))

	// text operands of a UTF-8 font are UTF-16BE: U+2665 is "&e", U+266A is "&j"
	var hearts, notes int
	for _, s := range pdfStreams(buf.Bytes()) {
		hearts += bytes.Count(s, []byte("(&e) Tj"))
		notes += bytes.Count(s, []byte("(&j) Tj"))
	}
	assert.Equal(t, 1, hearts)
	assert.Equal(t, 2, notes, "one note per anchor point")
}

func TestWriteDispatchesByFormat(t *testing.T) {
	opts := Options{Width: 4, Height: 4, Scale: 1}

	var pngBuf, pdfBuf bytes.Buffer
	require.NoError(t, Write(&pngBuf, FormatPNG, nil, opts))
	require.NoError(t, Write(&pdfBuf, FormatPDF, nil, opts))
	assert.True(t, bytes.HasPrefix(pngBuf.Bytes(), []byte("\x89PNG")))
	assert.True(t, bytes.HasPrefix(pdfBuf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, Write(&pngBuf, Format("svg"), nil, opts), ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, "image/png", f.ContentType())

	f, err = ParseFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "sketch-20261019-150405.png", Filename("sketch", FormatPNG, now))
	assert.Equal(t, "sketch-20261019-150405.pdf", Filename("", FormatPDF, now))
}
