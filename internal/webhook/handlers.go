package webhook

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"socialdl/internal/domain"
	"socialdl/internal/menu"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// handleWebhook feeds one update to the bot.
// It always answers 200 so Telegram never retries because of handler errors.
func (s *Server) handleWebhook(c *gin.Context) {
	if !s.validSecret(c.GetHeader(secretTokenHeader)) {
		s.logger.Warn("Webhook request with invalid secret token", zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	var update tele.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.logger.Warn("Failed to decode update", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	s.processUpdate(update)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) processUpdate(update tele.Update) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic while processing update",
				zap.Int("update_id", update.ID),
				zap.Any("panic", r),
			)
		}
	}()

	s.processor.ProcessUpdate(update)
}

func (s *Server) validSecret(got string) bool {
	if s.opts.SecretToken == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.opts.SecretToken)) == 1
}

// handleSetWebhook registers the public webhook URL with Telegram
func (s *Server) handleSetWebhook(c *gin.Context) {
	url := s.WebhookURL()

	err := s.registrar.SetWebhook(&tele.Webhook{
		Endpoint:    &tele.WebhookEndpoint{PublicURL: url},
		SecretToken: s.opts.SecretToken,
	})
	if err != nil {
		s.logger.Error("Failed to set webhook", zap.String("url", url), zap.Error(err))
		c.String(http.StatusOK, "Webhook setup failed")
		return
	}

	s.logger.Info("Webhook registered", zap.String("url", url))
	c.String(http.StatusOK, fmt.Sprintf("Webhook setup ok: %s", url))
}

type channelLink struct {
	Name string
	URL  string
}

// handleIndex renders the landing page
func (s *Server) handleIndex(c *gin.Context) {
	links := make([]channelLink, 0, len(s.opts.Channels))
	for _, ch := range s.opts.Channels {
		links = append(links, channelLink{Name: ch, URL: menu.ChannelURL(ch)})
	}

	platforms := make([]string, 0, len(domain.Platforms))
	for _, p := range domain.Platforms {
		platforms = append(platforms, p.Label)
	}

	var botURL string
	if s.opts.BotUsername != "" {
		botURL = "https://t.me/" + s.opts.BotUsername
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"BotURL":    botURL,
		"Platforms": platforms,
		"Channels":  links,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
