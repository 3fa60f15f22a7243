package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleCreateSession handles POST /sessions.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	session, err := s.sessions.CreateSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, SessionCreateResponse{
		SessionID: session.ID,
		CreatedAt: session.CreatedAt,
	})
}

// handleSessionRoute dispatches /sessions/{id} and /sessions/{id}/{action}.
func (s *Server) handleSessionRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.SplitN(path, "/", 2)
	if parts[0] == "" {
		writeError(w, http.StatusBadRequest, "session id required")
		return
	}
	sessionID := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleSessionStatus(w, r, sessionID)
		case http.MethodDelete:
			s.handleDestroySession(w, r, sessionID)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	switch parts[1] {
	case "run":
		s.handleRun(w, r, sessionID)
	case "ws":
		s.handleWS(w, r, sessionID)
	default:
		writeError(w, http.StatusNotFound, "unknown route")
	}
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SessionStatusResponse{
		SessionID: session.ID,
		Running:   session.Runtime.Running(),
		Speed:     session.Runtime.Speed(),
		Output:    session.Runtime.Output(),
	})
}

func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := s.sessions.DestroySession(sessionID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRun handles POST /sessions/{id}/run: schedule the run, then
// stream its render frames (already draining to the broadcaster) and
// follow with a terminal "done" frame once the run completes.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scheduled := session.Runtime.Go(req.Source)
	if scheduled {
		go s.awaitCompletion(session)
	}
	writeJSON(w, http.StatusAccepted, RunResponse{Scheduled: scheduled})
}

// awaitCompletion polls the runtime's reentrancy guard and emits a
// "done" frame once a run finishes — the runtime has no completion
// channel, only the running flag used to prevent overlap.
func (s *Server) awaitCompletion(session *Session) {
	for session.Runtime.Running() {
		time.Sleep(5 * time.Millisecond)
	}
	s.broadcaster.Broadcast(session.ID, doneFrame{Type: "done", Output: session.Runtime.Output()})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	if _, err := s.sessions.GetSession(sessionID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	serveSessionWS(w, r, s.broadcaster, sessionID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
		"time":     time.Now().Format(time.RFC3339),
	})
}
