// Package api is the HTTP+WebSocket front end: one service.Runtime
// per session, render commands streamed to subscribers as they are
// produced.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// Server is the HTTP API server.
type Server struct {
	sessions    *SessionManager
	broadcaster *Broadcaster
	mux         *http.ServeMux
	server      *http.Server
	port        int
}

// NewServer creates a server whose sessions use the given Runtime
// sizing (sink buffer, speed bounds, and render command cap, taken
// from config).
func NewServer(port int, sinkBuffer int, defaultSpeed, minSpeed, maxSpeed uint32, maxRenderCommands uint64) *Server {
	broadcaster := NewBroadcaster()
	s := &Server{
		sessions:    NewSessionManager(broadcaster, sinkBuffer, defaultSpeed, minSpeed, maxSpeed, maxRenderCommands),
		broadcaster: broadcaster,
		mux:         http.NewServeMux(),
		port:        port,
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler with CORS middleware applied.
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/sessions", s.handleCreateSession)
	s.mux.HandleFunc("/sessions/", s.handleSessionRoute)
}

// Start runs the HTTP server, blocking until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Printf("turtlego api server starting on http://127.0.0.1:%d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and disconnects all WebSocket
// clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.broadcaster.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if isAllowedOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isAllowedOrigin restricts CORS to localhost and 127.0.0.1 origins,
// plus requests with no Origin header and file:// pages; any other
// remote page is refused.
func isAllowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	if strings.HasPrefix(origin, "file://") {
		return true
	}
	return strings.HasPrefix(origin, "http://localhost") ||
		strings.HasPrefix(origin, "https://localhost") ||
		strings.HasPrefix(origin, "http://127.0.0.1") ||
		strings.HasPrefix(origin, "https://127.0.0.1")
}
