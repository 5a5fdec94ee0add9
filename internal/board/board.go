// Package board is the drawing controller. A Board owns one canvas: its
// history, cursor preview, notification bus and render loop, plus the tool
// and colour that apply to the next gesture.
//
// Every front end (browser session, desktop window) drives a Board through
// the pointer, tool and button methods below.
package board

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/lucasb-eyer/go-colorful"

	"LocalPaint/internal/bus"
	"LocalPaint/internal/render"
	"LocalPaint/internal/state"
)

// ErrUnknownTool is returned when selecting a tool by a name that is not
// registered.
var ErrUnknownTool = errors.New("unknown tool")

// Options configures a new Board.
type Options struct {
	Width      int
	Height     int
	Background color.Color
	Ink        color.Color
	Tools      []state.Tool
	Logger     hclog.Logger
}

// Board is safe for use from several goroutines; calls are serialized.
// Bus listeners, including OnFrame callbacks, run while the board is
// locked and must not call back into it.
type Board struct {
	mu sync.Mutex

	width, height int
	background    color.Color

	history *state.History
	cursor  state.Cursor
	active  state.Command

	tools []state.Tool
	tool  state.Tool
	color color.Color

	bus     *bus.Bus
	surface *render.Raster
	loop    *render.Loop
	logger  hclog.Logger
}

// New creates a board and renders its first, empty frame.
func New(opts Options) *Board {
	if opts.Width <= 0 {
		opts.Width = 256
	}
	if opts.Height <= 0 {
		opts.Height = 256
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.Ink == nil {
		opts.Ink = color.Black
	}
	if len(opts.Tools) == 0 {
		opts.Tools = []state.Tool{{Name: "marker", Thickness: state.DefaultThickness}}
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	b := &Board{
		width:      opts.Width,
		height:     opts.Height,
		background: opts.Background,
		tools:      append([]state.Tool(nil), opts.Tools...),
		tool:       opts.Tools[0],
		color:      opts.Ink,
		bus:        bus.New(opts.Logger),
		logger:     opts.Logger,
	}
	b.history = state.NewHistory(b.historyChanged)
	b.surface = render.NewRaster(opts.Width, opts.Height, 1, opts.Background)
	b.loop = render.NewLoop(b.surface, scene{b})
	b.loop.Attach(b.bus)
	b.loop.Redraw()
	return b
}

// scene exposes board state to the render loop without locking; the loop
// only runs from notifications raised while the board is locked.
type scene struct{ b *Board }

func (s scene) Committed() []state.Command { return s.b.history.Committed() }
func (s scene) InProgress() state.Command  { return s.b.active }
func (s scene) Preview() render.Renderable { return &s.b.cursor }

func (b *Board) historyChanged(st state.Stats) {
	b.notify(bus.HistoryEvent{Stats: st})
}

func (b *Board) previewChanged() {
	p := b.cursor.Preview()
	b.notify(bus.PreviewEvent{X: p.X, Y: p.Y, Visible: p.Active})
}

func (b *Board) notify(ev bus.Event) {
	if err := b.bus.Notify(ev); err != nil {
		b.logger.Warn("notify failed", "kind", ev.Kind(), "error", err)
	}
}

// PointerDown starts a new gesture with the current tool and colour.
// A gesture that never saw its pointer-up is committed first.
func (b *Board) PointerDown(x, y float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		b.logger.Debug("committing unfinished gesture", "id", b.active.ID())
		b.commitActive()
	}
	b.active = state.NewCommand(state.Point{X: x, Y: y}, b.tool, b.color)
	b.cursor.Update(x, y, b.tool, b.color)
	b.previewChanged()
}

// PointerMove extends the active gesture, if any, and always moves the
// cursor preview.
func (b *Board) PointerMove(x, y float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		b.active.Extend(state.Point{X: x, Y: y})
	}
	b.cursor.Update(x, y, b.tool, b.color)
	b.previewChanged()
}

// PointerUp commits the active gesture. Without one it does nothing.
func (b *Board) PointerUp() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return
	}
	b.commitActive()
}

func (b *Board) commitActive() {
	cmd := b.active
	b.active = nil
	b.history.Commit(cmd)
	b.logger.Trace("committed", "id", cmd.ID(), "points", len(cmd.Points()))
}

// PointerLeave hides the cursor preview. An active gesture stays active.
func (b *Board) PointerLeave() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cursor.Hide()
	b.previewChanged()
}

// SelectTool sets the style for the next gesture. Committed and in-progress
// commands keep their own style.
func (b *Board) SelectTool(t state.Tool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tool = t
	b.cursor.Restyle(b.tool, b.color)
	b.previewChanged()
}

// SelectToolByName selects a registered tool.
func (b *Board) SelectToolByName(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range b.tools {
		if t.Name == name {
			b.tool = t
			b.cursor.Restyle(b.tool, b.color)
			b.previewChanged()
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// AddSticker registers a sticker tool for glyph and selects it. Blank input
// is discarded and reports false.
func (b *Board) AddSticker(glyph string) (state.Tool, bool) {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" {
		return state.Tool{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	t := state.Tool{}
	found := false
	for _, existing := range b.tools {
		if existing.Glyph == glyph {
			t, found = existing, true
			break
		}
	}
	if !found {
		t = state.Tool{Name: "sticker:" + glyph, Glyph: glyph, GlyphSize: state.DefaultGlyphSize}
		b.tools = append(b.tools, t)
		b.logger.Debug("sticker added", "glyph", glyph)
	}
	b.tool = t
	b.cursor.Restyle(b.tool, b.color)
	b.previewChanged()
	return t, true
}

// SelectColor sets the ink for the next gesture.
func (b *Board) SelectColor(r, g, bl uint8) {
	b.setColor(color.RGBA{R: r, G: g, B: bl, A: 255})
}

// SelectHue sets the ink from a hue slider position in degrees, at full
// saturation and medium lightness.
func (b *Board) SelectHue(degrees float64) {
	h := math.Mod(degrees, 360)
	if h < 0 {
		h += 360
	}
	r, g, bl := colorful.Hsl(h, 1, 0.5).Clamped().RGB255()
	b.setColor(color.RGBA{R: r, G: g, B: bl, A: 255})
}

func (b *Board) setColor(c color.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.color = c
	b.cursor.Restyle(b.tool, b.color)
	b.previewChanged()
}

// Undo hides the newest committed command.
func (b *Board) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Undo()
}

// Redo restores the newest undone command.
func (b *Board) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Redo()
}

// Clear drops every committed and undone command.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history.Clear()
}

// redraw renders the current frame again.
func (b *Board) redraw() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loop.Redraw()
}

// OnFrame calls fn with the freshly rendered frame after every redraw
// triggered by a notification. The image is reused; copy it to keep it.
func (b *Board) OnFrame(fn func(frame *image.RGBA, ev bus.Event)) func() {
	return b.bus.SubscribeAll(func(ev bus.Event) {
		fn(b.surface.Image(), ev)
	})
}

// Frame returns a copy of the current frame.
func (b *Board) Frame() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()

	src := b.surface.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// Snapshot returns the committed commands, oldest first.
func (b *Board) Snapshot() []state.Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Committed()
}

func (b *Board) Stats() state.Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Stats()
}

// drawing reports whether a gesture is in progress.
func (b *Board) drawing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active != nil
}

func (b *Board) Tool() state.Tool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tool
}

// Color returns the ink for the next gesture.
func (b *Board) Color() color.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.color
}

func (b *Board) Tools() []state.Tool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]state.Tool(nil), b.tools...)
}

func (b *Board) Size() (int, int)        { return b.width, b.height }
func (b *Board) Background() color.Color { return b.background }
