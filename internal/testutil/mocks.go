package testutil

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"socialdl/internal/domain"
)

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetSession(ctx context.Context, userID int64) (*domain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteSessionsBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockChatMemberFetcher is a mock for ChatMemberFetcher
type MockChatMemberFetcher struct {
	mock.Mock
}

func (m *MockChatMemberFetcher) MemberStatus(ctx context.Context, channel string, userID int64) (string, error) {
	args := m.Called(ctx, channel, userID)
	return args.String(0), args.Error(1)
}

// MockSubscriptionChecker is a mock for SubscriptionChecker
type MockSubscriptionChecker struct {
	mock.Mock
}

func (m *MockSubscriptionChecker) IsSubscribed(ctx context.Context, userID int64) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

// MockDownloader is a mock for Downloader
type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Download(ctx context.Context, url string) (*domain.Content, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Content), args.Error(1)
}

// MockRecognizer is a mock for Recognizer
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) Recognize(ctx context.Context, filePath string) (*domain.Song, error) {
	args := m.Called(ctx, filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Song), args.Error(1)
}

// MockMediaFetcher is a mock for MediaFetcher.
// When Fetch succeeds it writes Content to dst so callers see a real file.
type MockMediaFetcher struct {
	mock.Mock
	Content []byte
}

func (m *MockMediaFetcher) Fetch(ctx context.Context, fileID, dst string) error {
	args := m.Called(ctx, fileID, dst)
	if err := args.Error(0); err != nil {
		return err
	}
	return os.WriteFile(dst, m.Content, 0o600)
}

// RecordingResponder collects replies sent during dispatch
type RecordingResponder struct {
	mu      sync.Mutex
	Replies []domain.Reply
	Err     error
}

func (r *RecordingResponder) Respond(_ context.Context, reply domain.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Replies = append(r.Replies, reply)
	return r.Err
}

// Last returns the most recent reply
func (r *RecordingResponder) Last() domain.Reply {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Replies) == 0 {
		return domain.Reply{}
	}
	return r.Replies[len(r.Replies)-1]
}

// Texts returns texts of all recorded replies
func (r *RecordingResponder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	texts := make([]string, 0, len(r.Replies))
	for _, reply := range r.Replies {
		texts = append(texts, reply.Text)
	}
	return texts
}
