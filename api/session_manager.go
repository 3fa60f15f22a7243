package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/andycking/turtlego/render"
	"github.com/andycking/turtlego/service"
)

// ErrSessionNotFound is returned when a session ID has no live session.
var ErrSessionNotFound = errors.New("session not found")

// Session wraps one service.Runtime plus the render-draining goroutine
// that turns its sink into broadcast frames.
type Session struct {
	ID        string
	Runtime   *service.Runtime
	CreatedAt time.Time
}

// SessionManager owns every live session, keyed by ID.
type SessionManager struct {
	sessions    map[string]*Session
	broadcaster *Broadcaster

	sinkBuffer                       int
	defaultSpeed, minSpeed, maxSpeed uint32
	maxRenderCommands                uint64

	mu sync.RWMutex
}

// NewSessionManager creates a manager whose sessions share the given
// Runtime sizing, forwarding render events through broadcaster.
func NewSessionManager(broadcaster *Broadcaster, sinkBuffer int, defaultSpeed, minSpeed, maxSpeed uint32, maxRenderCommands uint64) *SessionManager {
	return &SessionManager{
		sessions:          make(map[string]*Session),
		broadcaster:       broadcaster,
		sinkBuffer:        sinkBuffer,
		defaultSpeed:      defaultSpeed,
		minSpeed:          minSpeed,
		maxSpeed:          maxSpeed,
		maxRenderCommands: maxRenderCommands,
	}
}

// CreateSession allocates a fresh Runtime and starts draining its sink
// into the broadcaster under a new session ID.
func (sm *SessionManager) CreateSession() (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	rt := service.New(sm.sinkBuffer, sm.defaultSpeed, sm.minSpeed, sm.maxSpeed, sm.maxRenderCommands)
	session := &Session{ID: id, Runtime: rt, CreatedAt: time.Now()}

	sm.mu.Lock()
	sm.sessions[id] = session
	sm.mu.Unlock()

	go sm.drain(session)
	return session, nil
}

// drain forwards every render command off a session's sink as a
// broadcast frame, for the lifetime of the session.
func (sm *SessionManager) drain(session *Session) {
	for cmd := range session.Runtime.Sink().Recv() {
		sm.broadcaster.Broadcast(session.ID, toFrame(cmd))
	}
}

func toFrame(cmd render.Command) any {
	switch c := cmd.(type) {
	case render.MoveTo:
		return moveFrame{
			Type: "move", X: c.Pos.X, Y: c.Pos.Y, Angle: c.Angle,
			R: c.Color.R, G: c.Color.G, B: c.Color.B,
			PenDown: render.IsPenDown(c.Flags), PenErase: render.IsPenErase(c.Flags),
		}
	case render.ShowTurtle:
		return showTurtleFrame{Type: "showTurtle", Show: c.Show}
	case render.Fill:
		return fillFrame{Type: "fill", X: c.Pos.X, Y: c.Pos.Y, R: c.Color.R, G: c.Color.G, B: c.Color.B}
	default:
		return nil
	}
}

// GetSession retrieves a session by ID.
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// DestroySession closes a session's sink and removes it.
func (sm *SessionManager) DestroySession(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	session, ok := sm.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Runtime.Sink().Close()
	delete(sm.sessions, id)
	return nil
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func generateSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
