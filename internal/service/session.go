package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"socialdl/internal/domain"
	"socialdl/internal/repository"
)

// SessionService manages conversation sessions and their expiry
type SessionService struct {
	repo        repository.SessionRepository
	ttl         time.Duration
	defaultLang string
	logger      *zap.Logger
	now         func() time.Time
}

// NewSessionService creates a new session service.
// Sessions idle for longer than ttl start over; zero ttl keeps them forever.
func NewSessionService(repo repository.SessionRepository, ttl time.Duration, defaultLang string, logger *zap.Logger) *SessionService {
	return &SessionService{
		repo:        repo,
		ttl:         ttl,
		defaultLang: defaultLang,
		logger:      logger,
		now:         time.Now,
	}
}

// Get returns the user's session or a fresh one if none is stored or it expired
func (s *SessionService) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	session, err := s.repo.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	if session == nil {
		return domain.NewSession(userID, s.defaultLang), nil
	}

	if session.Expired(s.now(), s.ttl) {
		s.logger.Debug("Session expired",
			zap.Int64("user_id", userID),
			zap.Time("updated_at", session.UpdatedAt))
		return domain.NewSession(userID, s.defaultLang), nil
	}

	if !domain.IsSupportedLanguage(session.Language) {
		session.Language = s.defaultLang
	}

	return session, nil
}

// Save stores the session stamping it with the current time
func (s *SessionService) Save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = s.now()
	return s.repo.SaveSession(ctx, session)
}

// CleanupExpired removes sessions idle for longer than the TTL
func (s *SessionService) CleanupExpired(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}

	cutoff := s.now().Add(-s.ttl)
	s.logger.Info("Starting cleanup of expired sessions", zap.Time("cutoff", cutoff))

	n, err := s.repo.DeleteSessionsBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to cleanup expired sessions", zap.Error(err))
		return fmt.Errorf("cleanup sessions: %w", err)
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("deleted", n))
	return nil
}
