package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session identifies one logged-in reviewer.
type Session struct {
	Token       string    `json:"token"`
	InspectorID int64     `json:"inspector_id"`
	Affiliation string    `json:"affiliation"`
	Name        string    `json:"name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Registry issues and resolves bearer session tokens. Tokens are random
// UUIDs; expired entries are pruned lazily on lookup.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

// NewRegistry returns a Registry whose sessions expire after ttl.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Issue creates a session for the inspector and returns its token.
func (r *Registry) Issue(inspectorID int64, affiliation, name string) Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	session := Session{
		Token:       uuid.NewString(),
		InspectorID: inspectorID,
		Affiliation: affiliation,
		Name:        name,
		ExpiresAt:   r.now().Add(r.ttl),
	}
	r.sessions[session.Token] = session
	return session
}

// Resolve returns the session for token; ok is false for unknown or
// expired tokens.
func (r *Registry) Resolve(token string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok {
		return Session{}, false
	}
	if r.now().After(session.ExpiresAt) {
		delete(r.sessions, token)
		return Session{}, false
	}
	return session, true
}

// Revoke removes the session for token.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}
