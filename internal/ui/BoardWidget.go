package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalPaint/internal/board"
	"LocalPaint/internal/bus"
	"LocalPaint/internal/state"
)

// BoardWidget shows the frames of a board and forwards pointer input to it.
type BoardWidget struct {
	widget.BaseWidget
	board *board.Board
	frame *image.RGBA
	image *canvas.Image
	off   func()

	// OnHistory is called on the UI goroutine after every history change.
	OnHistory func(state.Stats)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{board: b, frame: b.Frame()}
	w.image = canvas.NewImageFromImage(w.frame)
	w.image.FillMode = canvas.ImageFillStretch
	w.image.ScaleMode = canvas.ImageScalePixels
	w.off = b.OnFrame(w.showFrame)
	w.ExtendBaseWidget(w)
	return w
}

// showFrame runs with the board locked, so the pixels are copied right away.
// The copy replaces the displayed image on the UI goroutine; the image fyne
// is painting is never written to.
func (w *BoardWidget) showFrame(frame *image.RGBA, ev bus.Event) {
	next := image.NewRGBA(frame.Bounds())
	copy(next.Pix, frame.Pix)
	h, isHistory := ev.(bus.HistoryEvent)
	fyne.Do(func() {
		w.frame = next
		w.image.Image = next
		w.image.Refresh()
		if isHistory && w.OnHistory != nil {
			w.OnHistory(h.Stats)
		}
	})
}

// Detach stops following the board.
func (w *BoardWidget) Detach() {
	if w.off != nil {
		w.off()
		w.off = nil
	}
}

// toBoard maps a widget position to board pixels.
func (w *BoardWidget) toBoard(pos fyne.Position) (float64, float64) {
	bw, bh := w.board.Size()
	size := w.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return float64(pos.X), float64(pos.Y)
	}
	return float64(pos.X) * float64(bw) / float64(size.Width),
		float64(pos.Y) * float64(bh) / float64(size.Height)
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.board.PointerDown(w.toBoard(e.Position))
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.board.PointerUp()
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	w.board.PointerMove(w.toBoard(e.Position))
}

// DragEnd also fires when the button is released outside the widget.
func (w *BoardWidget) DragEnd() { w.board.PointerUp() }

func (w *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	w.board.PointerMove(w.toBoard(e.Position))
}

func (w *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	w.board.PointerMove(w.toBoard(e.Position))
}

func (w *BoardWidget) MouseOut() { w.board.PointerLeave() }

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: w}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.image}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.image.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	bw, bh := r.board.board.Size()
	return fyne.NewSize(float32(bw), float32(bh))
}

func (r *boardWidgetRenderer) Refresh() { r.board.image.Refresh() }
func (r *boardWidgetRenderer) Destroy() { r.board.Detach() }
