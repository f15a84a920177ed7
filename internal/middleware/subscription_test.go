package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialdl/internal/conversation"
	"socialdl/internal/domain"
	"socialdl/internal/locale"
	"socialdl/internal/testutil"
)

func TestSubscriptionRequired(t *testing.T) {
	loc, err := locale.New(domain.DefaultLanguage)
	require.NoError(t, err)

	tests := []struct {
		name         string
		subscribed   bool
		lang         string
		expectNext   bool
		expectedText string
	}{
		{
			name:       "subscribed user passes",
			subscribed: true,
			lang:       "en",
			expectNext: true,
		},
		{
			name:         "not subscribed gets prompt",
			subscribed:   false,
			lang:         "en",
			expectNext:   false,
			expectedText: "📢 To use the bot, please subscribe to the following channels:",
		},
		{
			name:         "prompt in user language",
			subscribed:   false,
			lang:         "uz",
			expectNext:   false,
			expectedText: "📢 Botdan foydalanish uchun quyidagi kanallarga obuna bo'ling:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(testutil.MockSubscriptionChecker)
			checker.On("IsSubscribed", mock.Anything, int64(5)).Return(tt.subscribed)

			called := false
			next := func(c *conversation.Context) error {
				called = true
				return nil
			}

			mw := SubscriptionRequired(checker, loc, []string{"@xtarjima"}, testutil.NewTestLogger())
			out := &testutil.RecordingResponder{}
			session := testutil.NewTestSession(5, domain.StateSelectingAction, tt.lang)
			c := conversation.NewContext(context.Background(), domain.Event{Kind: domain.EventCallback, UserID: 5}, session, out)

			err := mw(next)(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectNext, called)
			if tt.expectNext {
				assert.Empty(t, out.Replies)
			} else {
				require.Len(t, out.Replies, 1)
				reply := out.Last()
				assert.Equal(t, tt.expectedText, reply.Text)
				assert.False(t, reply.Edit)
				assert.Equal(t, []string{"https://t.me/xtarjima", "check_subscription"}, reply.Keyboard.Payloads())
			}
			assert.Equal(t, domain.StateSelectingAction, session.State)
			checker.AssertExpectations(t)
		})
	}
}
