package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"socialdl/internal/domain"
)

// SessionRepo implements repository.SessionRepository
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// GetSession loads the user's session
func (r *SessionRepo) GetSession(ctx context.Context, userID int64) (*domain.Session, error) {
	query := `SELECT user_id, state, language, updated_at FROM sessions WHERE user_id = $1`

	var (
		s     domain.Session
		state string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.UserID, &state, &s.Language, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", userID, err)
	}

	s.State = domain.ConversationState(state)
	if !s.State.Valid() {
		s.State = domain.StateNone
	}

	return &s, nil
}

// SaveSession creates or replaces the user's session
func (r *SessionRepo) SaveSession(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (user_id, state, language, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET state = EXCLUDED.state,
		              language = EXCLUDED.language,
		              updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, s.UserID, string(s.State), s.Language, s.UpdatedAt); err != nil {
		return fmt.Errorf("save session %d: %w", s.UserID, err)
	}
	return nil
}

// DeleteSessionsBefore removes sessions last updated before the given time
func (r *SessionRepo) DeleteSessionsBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM sessions WHERE updated_at < $1`

	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return n, nil
}
