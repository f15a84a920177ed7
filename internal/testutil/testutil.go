package testutil

import (
	"time"

	"go.uber.org/zap"

	"socialdl/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestSession creates a test session updated just now
func NewTestSession(userID int64, state domain.ConversationState, lang string) *domain.Session {
	return &domain.Session{
		UserID:    userID,
		State:     state,
		Language:  lang,
		UpdatedAt: time.Now(),
	}
}
