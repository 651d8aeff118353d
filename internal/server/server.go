// Package server exposes a world over HTTP and a websocket change stream.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ChicagoDave/citycore/pkg/input"
	"github.com/ChicagoDave/citycore/pkg/scene2d"
	"github.com/ChicagoDave/citycore/pkg/world"
)

// Server is the local development server for interactive play.
type Server struct {
	world    *world.World
	port     int
	logger   *slog.Logger
	hub      *Hub
	upgrader websocket.Upgrader
}

// New creates a server for w. The server relays every world change to its
// websocket clients.
func New(w *world.World, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		world:    w,
		port:     port,
		logger:   logger,
		hub:      newHub(logger),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/scene.png", s.handleScenePNG)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("POST /api/tool", s.handleTool)
	mux.HandleFunc("POST /api/input", s.handleInput)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	defer s.relay()()
	go s.hub.run(ctx)

	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("citycore server starting", "url", "http://localhost"+addr)
	dims := s.world.Dims()
	s.logger.Info("world", "width", dims.Width, "height", dims.Height)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// relay forwards world changes to the hub until the returned func is called.
func (s *Server) relay() (unsubscribe func()) {
	return s.world.Subscribe(func(c world.Change) {
		s.hub.announce(string(c.Type), c)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>citycore</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>citycore</h1>
<p><img src="/api/scene.png" alt="scene"></p>
<p>Scene JSON at <code>/api/scene</code>, change stream at <code>/ws</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, scene2d.Assemble2D(s.world.Snapshot()))
}

func (s *Server) handleScenePNG(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	sc := scene2d.Assemble2D(s.world.Snapshot())
	if err := scene2d.EncodePNG(w, sc, nil); err != nil {
		s.logger.Error("rendering scene", "err", err)
	}
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.world.Validate())
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	cat := s.world.Catalog()
	out := make(map[string]any)
	for _, t := range cat.Types() {
		out[string(t)] = cat.For(t)
	}
	writeJSON(w, http.StatusOK, out)
}

type toolRequest struct {
	Tool string `json:"tool"`
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	var req toolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding tool: %w", err))
		return
	}
	if err := s.selectTool(req.Tool); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"tool": string(s.world.Tool())})
}

// handleInput accepts one event or a list of events.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	events, err := decodeEvents(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	for i, ev := range events {
		if err := s.world.Handle(ev); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("events[%d]: %w", i, err))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]int{"handled": len(events)})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := &Client{id: uuid.New(), conn: conn, send: make(chan []byte, 128)}
	// The hub owns c.send once the client joins.
	if msg, err := envelope(EventFullState, scene2d.Assemble2D(s.world.Snapshot())); err == nil {
		c.send <- msg
	}
	if !s.hub.join(c) {
		conn.Close()
		return
	}
	go c.writer()
	go s.reader(c)
}

func (s *Server) reader(c *Client) {
	defer s.hub.leave(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.logger.Debug("bad envelope", "client", c.id, "err", err)
			continue
		}
		if err := s.apply(env); err != nil {
			s.logger.Info("rejected action", "client", c.id, "type", env.Type, "err", err)
		}
	}
}

func (s *Server) apply(env Envelope) error {
	switch env.Type {
	case ActionSelectTool:
		var req toolRequest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decoding tool: %w", err)
		}
		return s.selectTool(req.Tool)
	case ActionInput:
		events, err := decodeEvents(env.Payload)
		if err != nil {
			return err
		}
		for _, ev := range events {
			if err := s.world.Handle(ev); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", env.Type)
}

func (s *Server) selectTool(name string) error {
	t, err := world.ParseTool(name)
	if err != nil {
		return err
	}
	if s.world.Tool() != t {
		s.world.SelectTool(t)
	}
	return nil
}

func decodeEvents(data []byte) ([]input.Event, error) {
	var events []input.Event
	if err := json.Unmarshal(data, &events); err != nil {
		var ev input.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding events: %w", err)
		}
		events = []input.Event{ev}
	}
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
	}
	return events, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
