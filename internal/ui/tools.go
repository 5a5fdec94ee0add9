package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalPaint/internal/board"
	"LocalPaint/internal/export"
	"LocalPaint/internal/state"
)

// stickerHint is the suggested custom glyph; goregular has an outline for it.
const stickerHint = "♦"

var palette = []color.RGBA{
	{A: 255},
	{R: 255, A: 255},
	{G: 160, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 200, A: 255},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.RGBA
	OnTapped func(color.RGBA)
}

func newColorSwatch(c color.RGBA, tapped func(color.RGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// toolbar holds the controls that drive one board.
type toolbar struct {
	board  *board.Board
	window fyne.Window
	export exportSettings
	status *widget.Label

	undo, redo *widget.Button
	toolBox    *fyne.Container
	ink        *canvas.Rectangle
}

// showInk updates the swatch showing the colour of the next gesture.
func (tb *toolbar) showInk() {
	tb.ink.FillColor = tb.board.Color()
	tb.ink.Refresh()
}

func toolLabel(t state.Tool) string {
	if t.IsSticker() {
		return t.Glyph
	}
	return t.Name
}

// refreshTools rebuilds the tool buttons, highlighting the selected tool.
func (tb *toolbar) refreshTools() {
	selected := tb.board.Tool().Name
	tb.toolBox.RemoveAll()
	for _, t := range tb.board.Tools() {
		name := t.Name
		btn := widget.NewButton(toolLabel(t), func() {
			if err := tb.board.SelectToolByName(name); err != nil {
				tb.status.SetText(err.Error())
				return
			}
			tb.refreshTools()
		})
		if name == selected {
			btn.Importance = widget.HighImportance
		}
		tb.toolBox.Add(btn)
	}
	tb.toolBox.Refresh()
}

// setHistory enables undo and redo only when they would do something.
func (tb *toolbar) setHistory(st state.Stats) {
	if st.Committed > 0 {
		tb.undo.Enable()
	} else {
		tb.undo.Disable()
	}
	if st.Redoable > 0 {
		tb.redo.Enable()
	} else {
		tb.redo.Disable()
	}
}

// askSticker prompts for a custom glyph. Blank input is discarded.
func (tb *toolbar) askSticker() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(stickerHint)
	dialog.ShowCustomConfirm("Custom sticker", "Add", "Cancel", entry, func(ok bool) {
		if !ok {
			return
		}
		if _, added := tb.board.AddSticker(entry.Text); !added {
			tb.status.SetText("Empty sticker ignored")
			return
		}
		tb.refreshTools()
	}, tb.window)
}

func newToolbar(b *board.Board, win fyne.Window, settings exportSettings, status *widget.Label) (*toolbar, fyne.CanvasObject) {
	tb := &toolbar{
		board:   b,
		window:  win,
		export:  settings,
		status:  status,
		toolBox: container.NewHBox(),
	}

	tb.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { b.Undo() })
	tb.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { b.Redo() })
	tb.setHistory(b.Stats())

	actions := container.NewHBox(
		widget.NewButtonWithIcon("", theme.DeleteIcon(), b.Clear),
		tb.undo,
		tb.redo,
		widget.NewButtonWithIcon("PNG", theme.DocumentSaveIcon(), func() { tb.saveAs(export.FormatPNG) }),
		widget.NewButtonWithIcon("PDF", theme.DocumentSaveIcon(), func() { tb.saveAs(export.FormatPDF) }),
	)

	tb.ink = canvas.NewRectangle(b.Color())
	tb.ink.SetMinSize(fyne.NewSize(32, 32))
	tb.ink.StrokeColor = color.Gray{Y: 60}
	tb.ink.StrokeWidth = 2

	onColorTapped := func(c color.RGBA) {
		b.SelectColor(c.R, c.G, c.B)
		tb.showInk()
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	hue := widget.NewSlider(0, 360)
	hue.OnChanged = func(deg float64) {
		b.SelectHue(deg)
		tb.showInk()
	}
	hueContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), hue)

	tb.refreshTools()

	return tb, container.NewHBox(
		actions,
		widget.NewSeparator(),
		widget.NewLabel("Tool:"),
		tb.toolBox,
		widget.NewButtonWithIcon("", theme.ContentAddIcon(), tb.askSticker),
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		tb.ink,
		colorBox,
		widget.NewLabel("Hue:"),
		hueContainer,
		layout.NewSpacer(),
	)
}
