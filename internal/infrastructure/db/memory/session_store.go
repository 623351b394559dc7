package memory

import (
	"context"
	"sync"
)

// SessionStore keeps tokens for the lifetime of the process. Nothing expires.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]string)}
}

func (s *SessionStore) Save(_ context.Context, token, username string) error {
	s.mu.Lock()
	s.sessions[token] = username
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, token string) (string, bool, error) {
	s.mu.RLock()
	username, ok := s.sessions[token]
	s.mu.RUnlock()
	return username, ok, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[token]; !ok {
		return false, nil
	}
	delete(s.sessions, token)
	return true, nil
}
