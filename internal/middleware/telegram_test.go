package middleware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"

	"socialdl/internal/testutil"
)

func textUpdate() tele.Update {
	return tele.Update{
		ID: 1,
		Message: &tele.Message{
			ID:     1,
			Text:   "hello",
			Sender: &tele.User{ID: 7},
			Chat:   &tele.Chat{ID: 9},
		},
	}
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	api := testutil.NewFakeBotAPI(t)
	bot := api.Bot(t)

	handlerErr := errors.New("boom")
	h := Logging(zap.New(core))(func(c tele.Context) error {
		return handlerErr
	})

	err := h(bot.NewContext(textUpdate()))

	assert.ErrorIs(t, err, handlerErr)
	entries := logs.FilterMessage("Update processed").All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "message", fields["type"])
	assert.Equal(t, int64(7), fields["user_id"])
	assert.Equal(t, int64(9), fields["chat_id"])
	assert.Equal(t, "boom", fields["error"])
}

func TestTyping(t *testing.T) {
	api := testutil.NewFakeBotAPI(t)
	bot := api.Bot(t)

	called := false
	h := Typing(testutil.NewTestLogger())(func(c tele.Context) error {
		called = true
		return nil
	})

	err := h(bot.NewContext(textUpdate()))

	assert.NoError(t, err)
	assert.True(t, called)
	calls := api.CallsTo("sendChatAction")
	if assert.Len(t, calls, 1) {
		assert.Equal(t, "typing", calls[0].Params["action"])
		assert.Equal(t, "9", calls[0].Params["chat_id"])
	}
}

func TestTyping_IgnoresNotifyError(t *testing.T) {
	api := testutil.NewFakeBotAPI(t)
	api.SetError("sendChatAction", "Forbidden: bot was blocked by the user")
	bot := api.Bot(t)

	called := false
	h := Typing(testutil.NewTestLogger())(func(c tele.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, h(bot.NewContext(textUpdate())))
	assert.True(t, called)
}

func TestUpdateType(t *testing.T) {
	assert.Equal(t, "callback_query", updateType(tele.Update{Callback: &tele.Callback{}}))
	assert.Equal(t, "voice", updateType(tele.Update{Message: &tele.Message{Voice: &tele.Voice{}}}))
	assert.Equal(t, "audio", updateType(tele.Update{Message: &tele.Message{Audio: &tele.Audio{}}}))
	assert.Equal(t, "message", updateType(tele.Update{Message: &tele.Message{Text: "hi"}}))
	assert.Equal(t, "unknown", updateType(tele.Update{}))
}
