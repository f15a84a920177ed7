// Package webhook serves the HTTP endpoints Telegram and operators talk to.
package webhook

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

//go:embed templates/*.html
var templates embed.FS

// UpdateProcessor handles one decoded update synchronously
type UpdateProcessor interface {
	ProcessUpdate(u tele.Update)
}

// WebhookRegistrar registers the webhook URL with Telegram
type WebhookRegistrar interface {
	SetWebhook(w *tele.Webhook) error
}

// Options configures the server
type Options struct {
	Addr string
	// PublicURL is the externally reachable base URL, without trailing slash
	PublicURL string
	// SecretToken is checked against the X-Telegram-Bot-Api-Secret-Token header when set
	SecretToken string
	// BotUsername and Channels are linked from the landing page
	BotUsername string
	Channels    []string
}

// Server exposes the webhook, webhook registration, landing page and health check
type Server struct {
	opts      Options
	processor UpdateProcessor
	registrar WebhookRegistrar
	logger    *zap.Logger

	engine *gin.Engine
	srv    *http.Server
}

// NewServer creates a server with all routes registered
func NewServer(opts Options, processor UpdateProcessor, registrar WebhookRegistrar, logger *zap.Logger) *Server {
	s := &Server{
		opts:      opts,
		processor: processor,
		registrar: registrar,
		logger:    logger,
	}

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)
	r.POST("/webhook", s.handleWebhook)
	r.GET("/set_webhook", s.handleSetWebhook)
	r.POST("/set_webhook", s.handleSetWebhook)

	s.engine = r
	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler with all routes
func (s *Server) Handler() http.Handler {
	return s.engine
}

// WebhookURL returns the URL Telegram should deliver updates to
func (s *Server) WebhookURL() string {
	return strings.TrimRight(s.opts.PublicURL, "/") + "/webhook"
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.opts.Addr))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
