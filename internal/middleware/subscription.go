package middleware

import (
	"go.uber.org/zap"

	"socialdl/internal/conversation"
	"socialdl/internal/menu"
)

// SubscriptionRequired creates middleware that lets a gated handler run only for
// users subscribed to every required channel. Others get the subscribe prompt.
func SubscriptionRequired(
	checker conversation.SubscriptionChecker,
	tr menu.Translator,
	channels []string,
	logger *zap.Logger,
) conversation.MiddlewareFunc {
	return func(next conversation.HandlerFunc) conversation.HandlerFunc {
		return func(c *conversation.Context) error {
			userID := c.Event.UserID

			if checker.IsSubscribed(c.Context(), userID) {
				return next(c)
			}

			logger.Info("Subscription required", zap.Int64("user_id", userID))

			lang := c.Lang()
			return c.Send(tr.Get(lang, "subscribe_prompt"), menu.Subscription(tr, lang, channels))
		}
	}
}
