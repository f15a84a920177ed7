// Package conversation implements the per-user dialog state machine.
//
// Dispatch loads the user's session, picks a handler from the current state and
// the event, runs gated handlers through the middleware chain and stores the
// resulting session.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"socialdl/internal/domain"
	"socialdl/internal/locale"
	"socialdl/internal/menu"
)

// SessionStore loads and stores sessions
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

// SubscriptionChecker tells whether the user joined all required channels
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, userID int64) bool
}

// Downloader fetches media behind a social network link
type Downloader interface {
	Download(ctx context.Context, url string) (*domain.Content, error)
}

// Recognizer identifies a song in an audio file. A nil song means no match.
type Recognizer interface {
	Recognize(ctx context.Context, filePath string) (*domain.Song, error)
}

// MediaFetcher saves a file sent by the user to dst
type MediaFetcher interface {
	Fetch(ctx context.Context, fileID, dst string) error
}

// Config holds Machine dependencies
type Config struct {
	Sessions     SessionStore
	Localizer    *locale.Localizer
	Subscription SubscriptionChecker
	Downloader   Downloader
	Recognizer   Recognizer
	Media        MediaFetcher
	// Channels are offered as join links when the subscription check fails
	Channels []string
	// TempDir holds downloaded voice files, os.TempDir() when empty
	TempDir string
	Logger  *zap.Logger
}

// Machine routes events to handlers according to the user's conversation state
type Machine struct {
	sessions     SessionStore
	loc          *locale.Localizer
	subscription SubscriptionChecker
	downloader   Downloader
	recognizer   Recognizer
	media        MediaFetcher
	channels     []string
	tempDir      string
	logger       *zap.Logger

	gated []MiddlewareFunc

	// Per-user locks so concurrent updates from one user apply in order.
	// An entry lives while someone holds or waits for it.
	userLocks map[int64]*userLock
	locksMux  sync.Mutex
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a machine with an empty gated middleware chain
func New(cfg Config) *Machine {
	return &Machine{
		sessions:     cfg.Sessions,
		loc:          cfg.Localizer,
		subscription: cfg.Subscription,
		downloader:   cfg.Downloader,
		recognizer:   cfg.Recognizer,
		media:        cfg.Media,
		channels:     cfg.Channels,
		tempDir:      cfg.TempDir,
		logger:       cfg.Logger,
		userLocks:    make(map[int64]*userLock),
	}
}

// Use appends middlewares run before every gated handler, in the order given
func (m *Machine) Use(mw ...MiddlewareFunc) {
	m.gated = append(m.gated, mw...)
}

// Dispatch handles one event and persists the session if a handler ran
func (m *Machine) Dispatch(ctx context.Context, ev domain.Event, out Responder) error {
	m.lockUser(ev.UserID)
	defer m.unlockUser(ev.UserID)

	session, err := m.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	h := m.route(ev, session.State)
	if h == nil {
		m.logger.Debug("No handler for event",
			zap.Int64("user_id", ev.UserID),
			zap.Stringer("kind", ev.Kind),
			zap.String("state", string(session.State)),
			zap.String("data", ev.Data),
		)
		return nil
	}

	handleErr := h(NewContext(ctx, ev, session, out))

	if err := m.sessions.Save(ctx, session); err != nil {
		if handleErr != nil {
			m.logger.Error("Failed to save session", zap.Int64("user_id", ev.UserID), zap.Error(err))
			return handleErr
		}
		return fmt.Errorf("save session: %w", err)
	}

	return handleErr
}

// route picks the handler for ev in the given state, nil when the event is not expected
func (m *Machine) route(ev domain.Event, state domain.ConversationState) HandlerFunc {
	switch ev.Kind {
	case domain.EventCommand:
		switch ev.Command {
		case "start":
			return m.gate(m.handleStart)
		case "lang":
			return m.handleLanguageMenu
		}

	case domain.EventCallback:
		switch {
		case strings.HasPrefix(ev.Data, menu.LanguagePrefix):
			return m.handleLanguage
		case ev.Data == menu.PayloadCheckSubscription:
			return m.handleCheckSubscription
		}

		switch state {
		case domain.StateSelectingAction:
			if menu.IsMainAction(ev.Data) {
				return m.gate(m.handleMainMenu)
			}
		case domain.StateSelectingPlatform:
			if ev.Data == menu.PayloadBack {
				return m.gate(m.handleStart)
			}
			if strings.HasPrefix(ev.Data, menu.PlatformPrefix) {
				return m.gate(m.handlePlatform)
			}
		}

	case domain.EventText:
		if state == domain.StateProcessingLink {
			return m.gate(m.handleMessage)
		}

	case domain.EventVoice:
		if state == domain.StateProcessingLink {
			return m.gate(m.handleVoice)
		}
	}

	return nil
}

// gate wraps h with the gated middleware chain
func (m *Machine) gate(h HandlerFunc) HandlerFunc {
	for i := len(m.gated) - 1; i >= 0; i-- {
		h = m.gated[i](h)
	}
	return h
}

func (m *Machine) lockUser(userID int64) {
	m.locksMux.Lock()
	lock, ok := m.userLocks[userID]
	if !ok {
		lock = &userLock{}
		m.userLocks[userID] = lock
	}
	lock.refs++
	m.locksMux.Unlock()

	lock.mu.Lock()
}

func (m *Machine) unlockUser(userID int64) {
	m.locksMux.Lock()
	defer m.locksMux.Unlock()

	lock := m.userLocks[userID]
	lock.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(m.userLocks, userID)
	}
}
