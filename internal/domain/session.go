package domain

import "time"

// ConversationState represents user's current position in the conversation
type ConversationState string

const (
	// StateNone means no conversation was started with /start yet
	StateNone              ConversationState = ""
	StateSelectingAction   ConversationState = "selecting_action"
	StateSelectingPlatform ConversationState = "selecting_platform"
	StateProcessingLink    ConversationState = "processing_link"
)

// Valid reports whether the state is one of the known states
func (s ConversationState) Valid() bool {
	switch s {
	case StateNone, StateSelectingAction, StateSelectingPlatform, StateProcessingLink:
		return true
	}
	return false
}

// Session holds per-user conversation data
type Session struct {
	UserID    int64
	State     ConversationState
	Language  string
	UpdatedAt time.Time
}

// NewSession creates a session in its initial state
func NewSession(userID int64, language string) *Session {
	return &Session{
		UserID:   userID,
		State:    StateNone,
		Language: language,
	}
}

// Expired reports whether the session was not touched within ttl
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 || s.UpdatedAt.IsZero() {
		return false
	}
	return now.Sub(s.UpdatedAt) > ttl
}
