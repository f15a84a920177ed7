// Package memory keeps sessions in process memory.
// Used when no database is configured; sessions are lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"socialdl/internal/domain"
)

// SessionRepo implements repository.SessionRepository
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
}

// NewSessionRepo creates an empty in-memory session repository
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[int64]domain.Session)}
}

// GetSession returns a copy of the stored session
func (r *SessionRepo) GetSession(_ context.Context, userID int64) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// SaveSession stores a copy of the session
func (r *SessionRepo) SaveSession(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.UserID] = *s
	return nil
}

// DeleteSessionsBefore removes sessions last updated before the given time
func (r *SessionRepo) DeleteSessionsBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(before) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
