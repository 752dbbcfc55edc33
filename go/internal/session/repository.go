package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/sparring/go/internal/models"
	"github.com/mcdev12/sparring/go/internal/timer"
)

// Runtime binds one session's state to its countdown engine. All state is
// owned by the controller for the lifetime of the session; mutations go
// through the App under rt.mu.
type Runtime struct {
	mu      sync.Mutex
	Session *models.Session
	Engine  *timer.Engine
}

// SessionRepository defines what the session app layer needs from storage.
// Sessions never outlive the process, so the only implementation is in-memory.
type SessionRepository interface {
	Create(rt *Runtime)
	Get(id uuid.UUID) (*Runtime, error)
	Delete(id uuid.UUID) error
	List() []*Runtime
}

// Repository is the in-memory session store.
type Repository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Runtime
}

// NewRepository creates an empty session store.
func NewRepository() *Repository {
	return &Repository{
		sessions: make(map[uuid.UUID]*Runtime),
	}
}

// Create registers a session runtime.
func (r *Repository) Create(rt *Runtime) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[rt.Session.ID] = rt
}

// Get returns the runtime for a session ID.
func (r *Repository) Get(id uuid.UUID) (*Runtime, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return rt, nil
}

// Delete removes a session from the store.
func (r *Repository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// List returns all active session runtimes.
func (r *Repository) List() []*Runtime {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Runtime, 0, len(r.sessions))
	for _, rt := range r.sessions {
		out = append(out, rt)
	}
	return out
}
