package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"socialdl/internal/domain"
)

// handleCommand handles a bot command such as /start
func (h *Handler) handleCommand(name string) tele.HandlerFunc {
	return func(c tele.Context) error {
		ev := newEvent(c, domain.EventCommand)
		ev.Command = name
		ev.Text = c.Text()

		h.logger.Info("Command received",
			zap.String("command", name),
			zap.Int64("user_id", ev.UserID),
			zap.String("username", ev.Username),
		)

		return h.dispatch(c, ev)
	}
}

// handleText handles plain text messages
func (h *Handler) handleText(c tele.Context) error {
	ev := newEvent(c, domain.EventText)
	ev.Text = c.Text()
	return h.dispatch(c, ev)
}

// handleMedia handles voice and audio messages
func (h *Handler) handleMedia(c tele.Context) error {
	msg := c.Message()
	if msg == nil {
		return nil
	}

	ev := newEvent(c, domain.EventVoice)
	switch {
	case msg.Voice != nil:
		ev.FileID = msg.Voice.FileID
	case msg.Audio != nil:
		ev.FileID = msg.Audio.FileID
	default:
		h.logger.Warn("Media message without voice or audio", zap.Int64("user_id", ev.UserID))
		return nil
	}

	return h.dispatch(c, ev)
}
