package net

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// ErrSessionNotFound is returned when looking up a session id that is not
// connected.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager tracks the browser sessions connected to the server.
// Every session owns a private board; nothing is shared between them.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	logger   hclog.Logger
}

// NewSessionManager creates an empty manager.
func NewSessionManager(logger hclog.Logger) *SessionManager {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Add registers a session that just connected.
func (sm *SessionManager) Add(s *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[s.ID] = s
	sm.logger.Info("session connected", "id", s.ID, "remote", s.remote)
}

// Remove forgets a session.
func (sm *SessionManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return
	}
	delete(sm.sessions, id)
	sm.logger.Info("session closed", "id", id)
}

// Get returns the session with the given id.
func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Len returns how many sessions are connected.
func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
