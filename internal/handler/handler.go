package handler

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"socialdl/internal/conversation"
	"socialdl/internal/domain"
)

// Dispatcher runs one event through the conversation
type Dispatcher interface {
	Dispatch(ctx context.Context, ev domain.Event, out conversation.Responder) error
}

// Handler turns Telegram updates into conversation events
type Handler struct {
	bot        *tele.Bot
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, dispatcher Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		bot:        bot,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleCommand("start"))
	h.bot.Handle("/lang", h.handleCommand("lang"))

	// Messages
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnVoice, h.handleMedia)
	h.bot.Handle(tele.OnAudio, h.handleMedia)

	// Callback queries (inline buttons)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// dispatch sends ev to the conversation with replies going back through c
func (h *Handler) dispatch(c tele.Context, ev domain.Event) error {
	ctx := context.Background()
	return h.dispatcher.Dispatch(ctx, ev, newResponder(c, h.logger))
}

// newEvent fills the sender and chat of an event from c
func newEvent(c tele.Context, kind domain.EventKind) domain.Event {
	ev := domain.Event{Kind: kind}
	if sender := c.Sender(); sender != nil {
		ev.UserID = sender.ID
		ev.Username = sender.Username
	}
	if chat := c.Chat(); chat != nil {
		ev.ChatID = chat.ID
	}
	return ev
}
