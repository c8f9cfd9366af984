// Package server exposes the observability boundary: a small JSON API
// for processing status plus a WebSocket pushing telemetry and frame
// metrics. It never feeds anything back into the engine.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ericosh007/generativeperception/internal/errors"
	"github.com/ericosh007/generativeperception/internal/logger"
	"github.com/ericosh007/generativeperception/internal/telemetry"
)

const (
	pushInterval = 100 * time.Millisecond // 10 Hz
	writeTimeout = 5 * time.Second
)

// Status is the point-in-time processing state served by /api/status.
type Status struct {
	Processing      bool    `json:"is_processing"`
	Preset          string  `json:"preset"`
	FramesProcessed uint64  `json:"frames_processed"`
	AverageTimeMs   float64 `json:"avg_time_ms"`
}

// Source supplies the server with current state. Implemented by the
// application; all methods must be safe for concurrent use.
type Source interface {
	Status() Status
	LatestTelemetry() telemetry.Snapshot
	LatestMetrics() map[string]float64
	Presets() []string
}

// Server is the HTTP/WebSocket front end.
type Server struct {
	addr     string
	source   Source
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	// Hijacked WebSocket connections escape httpSrv.Shutdown, so they
	// are tracked here and closed explicitly.
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// New builds a server bound to addr over the given state source.
func New(addr string, source Source) (*Server, error) {
	errFactory := errors.New()

	if addr == "" {
		return nil, errFactory.New(ErrInvalidListenAddr)
	}

	s := &Server{
		addr:   addr,
		source: source,
		conns:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/presets", s.handlePresets)
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, nil
}

// Start serves until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	errFactory := errors.New()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.addr).Msg("Status server listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			s.closeConns()
			return errFactory.Wrap(ErrShutdownFailed, err)
		}
		s.closeConns()
		return nil
	case err := <-errCh:
		return errFactory.Wrap(ErrListenFailed, err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.source.Status())
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string][]string{"presets": s.source.Presets()})
}

type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// handleWebSocket pushes telemetry and metrics updates at a fixed rate
// until the client goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.ErrorWithCode(errors.New().Wrap(ErrUpgradeFailed, err)).
			Msg("WebSocket upgrade failed")
		return
	}
	s.trackConn(conn)
	defer s.untrackConn(conn)
	defer conn.Close()

	// Drain client frames so pings and close messages are handled.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()

	for range ticker.C {
		snapshot := s.source.LatestTelemetry()
		telemetryData := map[string]float64{}
		for kind, value := range snapshot.Values() {
			telemetryData[string(kind)] = value
		}

		if err := s.push(conn, wsMessage{Type: "telemetry", Data: telemetryData}); err != nil {
			return
		}
		if metrics := s.source.LatestMetrics(); metrics != nil {
			if err := s.push(conn, wsMessage{Type: "metrics", Data: metrics}); err != nil {
				return
			}
		}
	}
}

func (s *Server) trackConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrackConn(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// closeConns terminates every active push loop; Close is safe to call
// concurrently with the loop's writes.
func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
}

func (s *Server) push(conn *websocket.Conn, msg wsMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}
