package debug

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Server exposes a Feed over HTTP, JSON for point reads and msgpack frames over websocket
type Server struct {
	feed     *Feed
	log      logrus.FieldLogger
	router   chi.Router
	http     *http.Server
	upgrader websocket.Upgrader
	listener net.Listener
}

// NewServer builds the router; call Start to listen on addr
func NewServer(addr string, feed *Feed, log logrus.FieldLogger) *Server {
	s := &Server{
		feed: feed,
		log:  log.WithField("component", "debug"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/debug", func(r chi.Router) {
		r.Get("/world", s.handleWorld)
		r.Get("/entities", s.handleEntities)
		r.Get("/entities/{id}", s.handleEntity)
		r.Get("/metrics", s.handleMetrics)
		r.Get("/events", s.handleEvents)
		r.Get("/ws", s.handleStream)
	})
	s.router = r

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routed handler, for tests and embedding
func (s *Server) Handler() http.Handler { return s.router }

// Start listens and serves in the background, returning once the socket is bound
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("debug listen %s: %w", s.http.Addr, err)
	}
	s.listener = ln
	s.log.WithField("addr", ln.Addr().String()).Info("debug server listening")

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("debug server stopped")
		}
	}()
	return nil
}

// Addr returns the bound address, empty before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting requests and waits for handlers up to ctx
// Hijacked websocket connections are not tracked and close with the process
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Debug("debug request")
	})
}

// latest writes 503 and returns nil when nothing was published yet
func (s *Server) latest(w http.ResponseWriter) *Snapshot {
	snap := s.feed.Latest()
	if snap == nil {
		respondError(w, http.StatusServiceUnavailable, "no snapshot yet")
	}
	return snap
}

func (s *Server) handleWorld(w http.ResponseWriter, r *http.Request) {
	if snap := s.latest(w); snap != nil {
		respondJSON(w, http.StatusOK, snap)
	}
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	snap := s.latest(w)
	if snap == nil {
		return
	}
	kind := r.URL.Query().Get("kind")
	out := make([]EntityView, 0, len(snap.Entities))
	for _, e := range snap.Entities {
		if kind == "" || e.Kind == kind {
			out = append(out, e)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid entity id")
		return
	}
	snap := s.latest(w)
	if snap == nil {
		return
	}
	e, ok := snap.Entity(id)
	if !ok {
		respondError(w, http.StatusNotFound, "entity not found")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if snap := s.latest(w); snap != nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"tick":        snap.Tick,
			"metrics":     snap.Metrics,
			"subscribers": s.feed.Subscribers(),
			"dropped":     s.feed.Dropped(),
		})
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.feed.Recent())
}

// handleStream upgrades to websocket and streams msgpack snapshot frames until either side leaves
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	frames, cancel := s.feed.Subscribe()
	log := s.log.WithField("remote", r.RemoteAddr)
	log.Info("spectator connected")

	// The latest snapshot goes out first so a spectator never waits a full period
	var first []byte
	if snap := s.feed.Latest(); snap != nil {
		if first, err = snap.Encode(); err != nil {
			log.WithError(err).Warn("initial frame not encoded")
		}
	}

	go s.writePump(conn, first, frames, log)
	s.readPump(conn, log)
	cancel()
	log.Info("spectator disconnected")
}

// readPump drains control frames until the peer closes or stops answering pings
func (s *Server) readPump(conn *websocket.Conn, log logrus.FieldLogger) {
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Warn("failed to set read deadline")
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("websocket read error")
			}
			return
		}
	}
}

// writePump owns every write on conn; it exits when frames is closed or a write fails
func (s *Server) writePump(conn *websocket.Conn, first []byte, frames <-chan []byte, log logrus.FieldLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := conn.Close(); err != nil {
			log.WithError(err).Debug("websocket close")
		}
	}()

	if first != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, first); err != nil {
			return
		}
	}

	for {
		select {
		case frame, ok := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
