package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"socialdl/internal/domain"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles ALL callback queries.
// The query is always acknowledged so the button stops loading, whatever the outcome.
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	ev := newEvent(c, domain.EventCallback)
	ev.Data = cleanCallbackData(callback.Data)

	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", ev.Data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", ev.UserID),
	)

	err := h.dispatch(c, ev)

	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}
