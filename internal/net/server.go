// Package net serves the drawing surface to browsers over HTTP and
// WebSocket, and finds or announces servers on the local network.
package net

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"LocalPaint/internal/board"
	"LocalPaint/internal/config"
	"LocalPaint/internal/export"
)

//go:embed static/index.html
var static embed.FS

// Server hosts one private board per WebSocket connection.
type Server struct {
	cfg      *config.Config
	sessions *SessionManager
	router   *mux.Router
	upgrader websocket.Upgrader
	logger   hclog.Logger

	// now is replaceable for tests.
	now func() time.Time
}

// NewServer wires the routes. A nil logger discards output.
func NewServer(cfg *config.Config, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Server{
		cfg:      cfg,
		sessions: NewSessionManager(logger.Named("sessions")),
		router:   mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
		logger: logger,
		now:    time.Now,
	}
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	s.router.HandleFunc("/sessions/{id}/export.{format}", s.handleExport).Methods(http.MethodGet)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, optionally announcing the
// server over mDNS.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Server.Advertise {
		port, err := listenPort(s.cfg.Server.Listen)
		if err != nil {
			return err
		}
		adv, err := Advertise(s.cfg.Server.Service, port)
		if err != nil {
			s.logger.Warn("mdns advertisement disabled", "error", err)
		} else {
			defer adv.Shutdown()
			s.logger.Info("advertising over mdns", "service", s.cfg.Server.Service, "port", port)
		}
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "open_sessions", s.sessions.Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) newBoard() *board.Board {
	return board.New(board.Options{
		Width:      s.cfg.Canvas.Width,
		Height:     s.cfg.Canvas.Height,
		Background: s.cfg.BackgroundColor(),
		Ink:        s.cfg.InkColor(),
		Tools:      s.cfg.Tools,
		Logger:     s.logger.Named("board"),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied to the client
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	sess := newSession(id, s.newBoard(), conn, s.logger)
	s.sessions.Add(sess)
	defer s.sessions.Remove(id)

	urls := map[string]string{
		string(export.FormatPNG): fmt.Sprintf("/sessions/%s/export.png", id),
		string(export.FormatPDF): fmt.Sprintf("/sessions/%s/export.pdf", id),
	}
	if err := sess.run(urls); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return
		}
		s.logger.Debug("session ended", "session", id, "error", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	format, err := export.ParseFormat(vars["format"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, err := s.sessions.Get(vars["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	b := sess.Board
	width, height := b.Size()
	opts := export.Options{
		Width:      width,
		Height:     height,
		Scale:      s.cfg.Export.Scale,
		Crop:       s.cfg.Export.Crop,
		Background: b.Background(),
	}
	name := export.Filename(s.cfg.Export.Prefix, format, s.now())

	var buf bytes.Buffer
	if err := export.Write(&buf, format, b.Snapshot(), opts); err != nil {
		s.logger.Error("export failed", "session", sess.ID, "format", format, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	buf.WriteTo(w)
	s.logger.Info("exported", "session", sess.ID, "file", name)
}
