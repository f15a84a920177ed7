package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates middleware that logs every processed update
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			err := next(c)

			fields := []zap.Field{
				zap.String("type", updateType(c.Update())),
				zap.Duration("duration", time.Since(start)),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			if chat := c.Chat(); chat != nil {
				fields = append(fields, zap.Int64("chat_id", chat.ID))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}

			logger.Debug("Update processed", fields...)
			return err
		}
	}
}

// Typing creates middleware that shows the typing indicator before handling an update
func Typing(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Chat() != nil {
				if err := c.Notify(tele.Typing); err != nil {
					logger.Debug("Failed to send typing action", zap.Error(err))
				}
			}
			return next(c)
		}
	}
}

func updateType(u tele.Update) string {
	switch {
	case u.Callback != nil:
		return "callback_query"
	case u.Message != nil && u.Message.Voice != nil:
		return "voice"
	case u.Message != nil && u.Message.Audio != nil:
		return "audio"
	case u.Message != nil:
		return "message"
	}
	return "unknown"
}
