package repository

import (
	"context"
	"time"

	"socialdl/internal/domain"
)

// SessionRepository defines conversation session storage
type SessionRepository interface {
	// GetSession returns nil without error when the user has no session
	GetSession(ctx context.Context, userID int64) (*domain.Session, error)
	SaveSession(ctx context.Context, session *domain.Session) error
	DeleteSessionsBefore(ctx context.Context, before time.Time) (int64, error)
}
