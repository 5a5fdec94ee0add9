package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/hashicorp/go-hclog"

	"LocalPaint/internal/config"
	"LocalPaint/internal/export"
)

type exportSettings struct {
	prefix string
	scale  float64
	crop   bool
	logger hclog.Logger
}

func newExportSettings(cfg *config.Config, logger hclog.Logger) exportSettings {
	return exportSettings{
		prefix: cfg.Export.Prefix,
		scale:  cfg.Export.Scale,
		crop:   cfg.Export.Crop,
		logger: logger,
	}
}

// saveAs asks for a destination and writes the committed drawing there.
func (tb *toolbar) saveAs(format export.Format) {
	snapshot := tb.board.Snapshot()
	width, height := tb.board.Size()
	opts := export.Options{
		Width:      width,
		Height:     height,
		Scale:      tb.export.scale,
		Crop:       tb.export.crop,
		Background: tb.board.Background(),
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			tb.status.SetText(fmt.Sprintf("Export failed: %v", err))
			return
		}
		if w == nil {
			return // cancelled
		}
		defer func() {
			if err := w.Close(); err != nil {
				tb.export.logger.Warn("closing export file", "error", err)
			}
		}()
		if err := export.Write(w, format, snapshot, opts); err != nil {
			tb.export.logger.Error("export failed", "format", format, "error", err)
			tb.status.SetText(fmt.Sprintf("Export failed: %v", err))
			return
		}
		tb.export.logger.Info("exported", "file", w.URI().String(), "commands", len(snapshot))
		tb.status.SetText("Saved " + w.URI().Name())
	}, tb.window)
	save.SetFileName(export.Filename(tb.export.prefix, format, time.Now()))
	save.Show()
}
