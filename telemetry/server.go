package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server streams vehicle snapshots to WebSocket subscribers at render
// cadence. Slow subscribers drop frames rather than stalling the publisher
type Server struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]chan []byte

	httpServer *http.Server
}

// sendBuffer frames queued per client before drops begin
const sendBuffer = 8

// NewServer builds a telemetry server listening on addr
func NewServer(addr string, logger *zap.Logger) *Server {
	s := &Server{
		logger:  logger,
		clients: make(map[uuid.UUID]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Local diagnostics endpoint, any origin may subscribe
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Run serves until the context is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("telemetry listening", zap.String("addr", s.httpServer.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Publish broadcasts a snapshot to all subscribers, dropping frames for
// clients that cannot keep up
func (s *Server) Publish(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("telemetry marshal failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.clients {
		select {
		case ch <- data:
		default:
			// frame dropped, client backlogged
		}
	}
}

// ClientCount returns the current subscriber count
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("telemetry upgrade failed", zap.Error(err))
		return
	}

	id := uuid.New()
	send := make(chan []byte, sendBuffer)

	s.mu.Lock()
	s.clients[id] = send
	s.mu.Unlock()
	s.logger.Info("telemetry client connected",
		zap.String("id", id.String()),
		zap.String("remote", conn.RemoteAddr().String()))

	defer func() {
		s.mu.Lock()
		delete(s.clients, id)
		s.mu.Unlock()
		conn.Close()
		s.logger.Info("telemetry client disconnected", zap.String("id", id.String()))
	}()

	// Reader goroutine exists only to observe the close handshake
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case data := <-send:
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}
