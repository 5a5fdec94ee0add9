package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/hashicorp/go-hclog"

	"LocalPaint/internal/board"
	"LocalPaint/internal/config"
)

// RunApp opens the desktop window on a fresh board and blocks until it is
// closed. shareURL, when set, is shown so others can open the browser
// version served alongside.
func RunApp(cfg *config.Config, logger hclog.Logger, shareURL string) {
	myApp := app.New()
	myWindow := myApp.NewWindow("LocalPaint")

	b := board.New(board.Options{
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Background: cfg.BackgroundColor(),
		Ink:        cfg.InkColor(),
		Tools:      cfg.Tools,
		Logger:     logger.Named("board"),
	})

	status := widget.NewLabel("Ready")
	if shareURL != "" {
		status.SetText("Browser version at " + shareURL)
	}

	surface := NewBoardWidget(b)
	tb, toolbar := newToolbar(b, myWindow, newExportSettings(cfg, logger.Named("export")), status)
	surface.OnHistory = tb.setHistory

	shortcut := func(key fyne.KeyName, mod fyne.KeyModifier, fn func()) {
		myWindow.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) { fn() })
	}
	shortcut(fyne.KeyZ, fyne.KeyModifierShortcutDefault, func() { b.Undo() })
	shortcut(fyne.KeyZ, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, func() { b.Redo() })
	shortcut(fyne.KeyY, fyne.KeyModifierShortcutDefault, func() { b.Redo() })

	content := container.NewBorder(toolbar, status, nil, nil, container.NewCenter(surface))
	myWindow.SetContent(content)
	myWindow.SetOnClosed(surface.Detach)
	myWindow.ShowAndRun()
}
