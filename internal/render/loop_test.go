package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalPaint/internal/bus"
	"LocalPaint/internal/state"
)

type scene struct {
	history    *state.History
	inProgress state.Command
	cursor     *state.Cursor
}

func newScene() *scene {
	return &scene{history: state.NewHistory(nil), cursor: &state.Cursor{}}
}

func (s *scene) Committed() []state.Command { return s.history.Committed() }
func (s *scene) InProgress() state.Command  { return s.inProgress }
func (s *scene) Preview() Renderable        { return s.cursor }

func stroke(tool state.Tool, points ...state.Point) state.Command {
	cmd := state.NewCommand(points[0], tool, color.Black)
	for _, p := range points[1:] {
		cmd.Extend(p)
	}
	return cmd
}

func TestRedrawIsIdempotent(t *testing.T) {
	sc := newScene()
	sc.history.Commit(stroke(state.Tool{Thickness: 3}, state.Point{X: 2, Y: 2}, state.Point{X: 40, Y: 30}))
	sc.history.Commit(stroke(state.Tool{Glyph: "H", GlyphSize: 12}, state.Point{X: 20, Y: 20}))
	sc.cursor.Update(10, 40, state.Tool{Thickness: 6}, color.Black)

	surface := NewRaster(48, 48, 1, white)
	loop := NewLoop(surface, sc)

	loop.Redraw()
	first := append([]byte(nil), surface.Image().Pix...)
	loop.Redraw()

	assert.True(t, bytes.Equal(first, surface.Image().Pix), "second redraw changed pixels")
	assert.Equal(t, uint64(2), loop.frames)
}

func TestRedrawAfterClearShowsEmptyCanvas(t *testing.T) {
	sc := newScene()
	for i := 0; i < 3; i++ {
		y := float64(5 + 10*i)
		sc.history.Commit(stroke(state.Tool{Thickness: 2}, state.Point{X: 0, Y: y}, state.Point{X: 30, Y: y}))
	}
	surface := NewRaster(32, 32, 1, white)
	loop := NewLoop(surface, sc)
	loop.Redraw()
	require.NotZero(t, countInk(surface.Image()))

	sc.history.Clear()
	loop.Redraw()
	assert.Zero(t, countInk(surface.Image()))
}

type opRecorder struct{ ops []string }

func (r *opRecorder) Clear() { r.ops = append(r.ops, "clear") }
func (r *opRecorder) Polyline(p []state.Point, _ float64, _ color.Color) {
	r.ops = append(r.ops, "polyline")
}
func (r *opRecorder) Glyph(state.Point, string, float64, color.Color) {
	r.ops = append(r.ops, "glyph")
}
func (r *opRecorder) Circle(state.Point, float64, color.Color) {
	r.ops = append(r.ops, "circle")
}

func TestRedrawOrder(t *testing.T) {
	sc := newScene()
	sc.history.Commit(stroke(state.Tool{}, state.Point{}, state.Point{X: 1, Y: 1}))
	sc.inProgress = stroke(state.Tool{Glyph: "x"}, state.Point{})
	sc.cursor.Update(0, 0, state.Tool{}, nil)

	rec := &opRecorder{}
	NewLoop(rec, sc).Redraw()

	assert.Equal(t, []string{"clear", "polyline", "glyph", "circle"}, rec.ops)
}

func TestAttachRedrawsOnBothEvents(t *testing.T) {
	b := bus.New(nil)
	rec := &opRecorder{}
	loop := NewLoop(rec, newScene())
	detach := loop.Attach(b)

	b.Notify(bus.HistoryEvent{})
	b.Notify(bus.PreviewEvent{})
	assert.Equal(t, uint64(2), loop.frames)

	detach()
	b.Notify(bus.HistoryEvent{})
	assert.Equal(t, uint64(2), loop.frames)
}
