package services

import (
	"sync"

	"github.com/google/uuid"
)

// Session kinds
const (
	SessionKindAdmin = "admin"
	SessionKindUser  = "user"
)

// SessionIdentity is the authenticated identity a session id resolves to
type SessionIdentity struct {
	Kind      string `json:"kind"`
	ID        uint   `json:"id"`
	Amazina   string `json:"amazina,omitempty"`
	Email     string `json:"email,omitempty"`
	Telephone string `json:"telephone"`
}

// SessionStore maps opaque session ids to identities. Sessions live for
// the process lifetime only; there is no TTL and no persistence.
type SessionStore interface {
	Create(identity SessionIdentity) string
	Resolve(id string) (SessionIdentity, bool)
	Refresh(id string, identity SessionIdentity) bool
	Revoke(id string)
}

// memorySessionStore is the in-memory SessionStore implementation
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]SessionIdentity
}

// NewSessionStore creates a new in-memory session store
func NewSessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]SessionIdentity),
	}
}

// Create mints a new opaque session id for an identity
func (s *memorySessionStore) Create(identity SessionIdentity) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = identity

	return id
}

// Resolve looks up the identity behind a session id
func (s *memorySessionStore) Resolve(id string) (SessionIdentity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.sessions[id]
	return identity, ok
}

// Refresh replaces the identity of an existing session, keeping its id.
// Used after profile updates so the session reflects the new email and
// telephone.
func (s *memorySessionStore) Refresh(id string, identity SessionIdentity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	s.sessions[id] = identity
	return true
}

// Revoke deletes a session; revoking an unknown id is a no-op
func (s *memorySessionStore) Revoke(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
