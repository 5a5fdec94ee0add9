package net

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"LocalPaint/internal/board"
	"LocalPaint/internal/bus"
	"LocalPaint/internal/state"
)

const writeWait = 10 * time.Second

// Session is one browser connection and the board it draws on.
type Session struct {
	ID     string
	Board  *board.Board
	conn   *websocket.Conn
	remote string
	logger hclog.Logger

	// all writes happen on the goroutine running run
	writeErr error
	encoder  png.Encoder
	buf      bytes.Buffer
}

func newSession(id string, b *board.Board, conn *websocket.Conn, logger hclog.Logger) *Session {
	return &Session{
		ID:     id,
		Board:  b,
		conn:   conn,
		remote: conn.RemoteAddr().String(),
		logger: logger.With("session", id),
		encoder: png.Encoder{
			CompressionLevel: png.BestSpeed,
		},
	}
}

// run sends the greeting and first frame, then handles client messages
// until the connection fails.
func (s *Session) run(exportURLs map[string]string) error {
	w, h := s.Board.Size()
	if err := s.writeJSON(Hello{
		Type:    MsgHello,
		Session: s.ID,
		Width:   w,
		Height:  h,
		Tools:   s.Board.Tools(),
		Export:  exportURLs,
	}); err != nil {
		return err
	}

	off := s.Board.OnFrame(s.sendFrame)
	defer off()

	if err := s.writeFrame(s.Board.Frame()); err != nil {
		return err
	}

	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if kind != websocket.TextMessage {
			s.logger.Debug("ignoring non-text message", "kind", kind)
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("malformed message", "error", err)
			continue
		}
		if err := s.handle(msg); err != nil {
			s.logger.Warn("message rejected", "type", msg.Type, "error", err)
		}
		if s.writeErr != nil {
			return s.writeErr
		}
	}
}

func (s *Session) handle(msg ClientMessage) error {
	b := s.Board
	switch msg.Type {
	case MsgPointerDown:
		b.PointerDown(msg.X, msg.Y)
	case MsgPointerMove:
		b.PointerMove(msg.X, msg.Y)
	case MsgPointerUp:
		b.PointerUp()
	case MsgPointerLeave:
		b.PointerLeave()
	case MsgTool:
		switch {
		case msg.Name != "":
			if err := b.SelectToolByName(msg.Name); err != nil {
				return err
			}
		case msg.Glyph != "":
			if _, ok := b.AddSticker(msg.Glyph); !ok {
				return nil
			}
		case msg.Thickness > 0:
			b.SelectTool(state.Tool{Name: fmt.Sprintf("marker:%g", msg.Thickness), Thickness: msg.Thickness})
		default:
			return fmt.Errorf("tool message needs a name, glyph or thickness")
		}
		return s.sendTools()
	case MsgColor:
		b.SelectColor(msg.R, msg.G, msg.B)
	case MsgHue:
		b.SelectHue(msg.Hue)
	case MsgSticker:
		if _, ok := b.AddSticker(msg.Glyph); !ok {
			s.logger.Debug("blank sticker discarded")
			return nil
		}
		return s.sendTools()
	case MsgUndo:
		b.Undo()
	case MsgRedo:
		b.Redo()
	case MsgClear:
		b.Clear()
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// sendFrame runs as a board frame listener, with the board locked.
func (s *Session) sendFrame(frame *image.RGBA, ev bus.Event) {
	if s.writeErr != nil {
		return
	}
	if err := s.writeFrame(frame); err != nil {
		s.writeErr = err
		return
	}
	if h, ok := ev.(bus.HistoryEvent); ok {
		if err := s.writeJSON(HistoryUpdate{Type: MsgHistory, Stats: h.Stats}); err != nil {
			s.writeErr = err
		}
	}
}

func (s *Session) sendTools() error {
	return s.writeJSON(ToolsUpdate{
		Type:     MsgTools,
		Tools:    s.Board.Tools(),
		Selected: s.Board.Tool().Name,
	})
}

func (s *Session) writeFrame(frame *image.RGBA) error {
	s.buf.Reset()
	if err := s.encoder.Encode(&s.buf, frame); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, s.buf.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (s *Session) writeJSON(v any) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}
