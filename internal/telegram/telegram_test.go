package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdl/internal/testutil"
)

func TestChatMembers_MemberStatus(t *testing.T) {
	tests := []struct {
		name           string
		result         string
		apiError       string
		expectedStatus string
		expectedError  bool
	}{
		{
			name:           "member",
			result:         `{"status":"member","user":{"id":42}}`,
			expectedStatus: "member",
		},
		{
			name:           "left",
			result:         `{"status":"left","user":{"id":42}}`,
			expectedStatus: "left",
		},
		{
			name:          "chat not found",
			apiError:      "Bad Request: chat not found",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testutil.NewFakeBotAPI(t)
			if tt.apiError != "" {
				api.SetError("getChatMember", tt.apiError)
			} else {
				api.SetResult("getChatMember", tt.result)
			}

			members := NewChatMembers(api.Bot(t))

			status, err := members.MemberStatus(context.Background(), "@xtarjima", 42)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "@xtarjima")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, status)
			}

			calls := api.CallsTo("getChatMember")
			require.Len(t, calls, 1)
			assert.Equal(t, "@xtarjima", calls[0].Params["chat_id"])
			assert.Equal(t, "42", calls[0].Params["user_id"])
		})
	}
}

func TestFileFetcher_Fetch(t *testing.T) {
	api := testutil.NewFakeBotAPI(t)
	api.SetResult("getFile", `{"file_id":"voice-1","file_path":"voice/file_7.oga"}`)
	api.SetFile("voice/file_7.oga", []byte("OggS-audio"))

	fetcher := NewFileFetcher(api.Bot(t), 5*time.Second)
	dst := filepath.Join(t.TempDir(), "voice.ogg")

	err := fetcher.Fetch(context.Background(), "voice-1", dst)

	require.NoError(t, err)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "OggS-audio", string(data))
	assert.Equal(t, "voice-1", api.CallsTo("getFile")[0].Params["file_id"])
}

func TestFileFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(api *testutil.FakeBotAPI)
		errSubstr string
	}{
		{
			name: "get file fails",
			setup: func(api *testutil.FakeBotAPI) {
				api.SetError("getFile", "Bad Request: invalid file_id")
			},
			errSubstr: "get file voice-1",
		},
		{
			name: "no file path",
			setup: func(api *testutil.FakeBotAPI) {
				api.SetResult("getFile", `{"file_id":"voice-1"}`)
			},
			errSubstr: "no file path",
		},
		{
			name: "download not found",
			setup: func(api *testutil.FakeBotAPI) {
				api.SetResult("getFile", `{"file_id":"voice-1","file_path":"voice/missing.oga"}`)
			},
			errSubstr: "unexpected status 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testutil.NewFakeBotAPI(t)
			tt.setup(api)

			fetcher := NewFileFetcher(api.Bot(t), 5*time.Second)

			err := fetcher.Fetch(context.Background(), "voice-1", filepath.Join(t.TempDir(), "voice.ogg"))

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestFileFetcher_Fetch_HidesToken(t *testing.T) {
	t.Run("bot api unreachable", func(t *testing.T) {
		api := testutil.NewFakeBotAPI(t)
		bot := api.Bot(t)
		api.Server.Close()

		fetcher := NewFileFetcher(bot, 2*time.Second)

		err := fetcher.Fetch(context.Background(), "voice-1", filepath.Join(t.TempDir(), "voice.ogg"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "get file voice-1")
		assert.NotContains(t, err.Error(), testutil.TestToken)
	})

	t.Run("file server unreachable", func(t *testing.T) {
		api := testutil.NewFakeBotAPI(t)
		api.SetResult("getFile", `{"file_id":"voice-1","file_path":"voice/file_7.oga"}`)

		fetcher := newFileFetcher(api.Bot(t), "http://127.0.0.1:1", testutil.TestToken, 2*time.Second)

		err := fetcher.Fetch(context.Background(), "voice-1", filepath.Join(t.TempDir(), "voice.ogg"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "download file voice-1")
		assert.NotContains(t, err.Error(), testutil.TestToken)
	})
}

func TestFileFetcher_Redact(t *testing.T) {
	fetcher := newFileFetcher(nil, "", "123:SECRET", time.Second)

	urlErr := &url.Error{Op: "Get", URL: "https://api.telegram.org/file/bot123:SECRET/a.oga", Err: errors.New("timeout")}
	assert.EqualError(t, fetcher.redact(fmt.Errorf("telebot: %w", urlErr)), "Get: timeout")

	assert.EqualError(t, fetcher.redact(errors.New("bad token 123:SECRET")), "bad token <token>")
	assert.EqualError(t, fetcher.redact(errors.New("plain")), "plain")
}
