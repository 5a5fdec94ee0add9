package render

import (
	"LocalPaint/internal/bus"
	"LocalPaint/internal/state"
)

// Renderable draws itself onto a surface.
type Renderable interface {
	Render(s state.Surface)
}

// Scene is the model state a frame is built from.
type Scene interface {
	// Committed returns the visible commands, oldest first.
	Committed() []state.Command
	// InProgress returns the command being drawn, or nil.
	InProgress() state.Command
	// Preview returns the cursor preview, or nil.
	Preview() Renderable
}

// Loop rebuilds the whole frame from the scene on every redraw.
type Loop struct {
	surface state.Surface
	scene   Scene
	frames  uint64 // redraws run so far
}

func NewLoop(surface state.Surface, scene Scene) *Loop {
	return &Loop{surface: surface, scene: scene}
}

// Redraw clears the surface and replays committed history, the in-progress
// command and the cursor preview, in that order.
func (l *Loop) Redraw() {
	l.surface.Clear()
	for _, cmd := range l.scene.Committed() {
		cmd.Render(l.surface)
	}
	if cmd := l.scene.InProgress(); cmd != nil {
		cmd.Render(l.surface)
	}
	if p := l.scene.Preview(); p != nil {
		p.Render(l.surface)
	}
	l.frames++
}

// Attach redraws on every history and preview notification.
// The returned func detaches the loop.
func (l *Loop) Attach(b *bus.Bus) func() {
	redraw := func(bus.Event) { l.Redraw() }
	offHistory := b.Subscribe(bus.HistoryChanged, redraw)
	offPreview := b.Subscribe(bus.PreviewChanged, redraw)
	return func() {
		offHistory()
		offPreview()
	}
}
