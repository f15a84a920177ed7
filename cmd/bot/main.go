package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	telemw "gopkg.in/telebot.v3/middleware"

	"socialdl/internal/config"
	"socialdl/internal/conversation"
	"socialdl/internal/handler"
	"socialdl/internal/locale"
	"socialdl/internal/middleware"
	"socialdl/internal/repository"
	"socialdl/internal/repository/memory"
	"socialdl/internal/repository/postgres"
	"socialdl/internal/service"
	"socialdl/internal/telegram"
	"socialdl/internal/webhook"
	"socialdl/migrations"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Social Downloader Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("public_url", cfg.PublicURL),
		zap.Strings("required_channels", cfg.RequiredChannels),
		zap.Bool("postgres", cfg.UsePostgres()),
	)

	// Initialize session storage
	var sessionRepo repository.SessionRepository
	if cfg.UsePostgres() {
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		sessionRepo = postgres.NewSessionRepo(db)
	} else {
		logger.Warn("DB_PASSWORD not set, sessions are kept in memory")
		sessionRepo = memory.NewSessionRepo()
	}

	loc, err := locale.New(cfg.DefaultLanguage)
	if err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}

	// Initialize Telegram bot. Updates arrive through the webhook and are handled inline.
	bot, err := tele.NewBot(tele.Settings{
		Token:       cfg.BotToken,
		Synchronous: true,
		Client:      &http.Client{Timeout: cfg.HTTPTimeout},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Failed to handle update", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	// Initialize services
	sessionService := service.NewSessionService(sessionRepo, cfg.SessionTTL, cfg.DefaultLanguage, logger)
	subscriptionService := service.NewSubscriptionService(telegram.NewChatMembers(bot), cfg.RequiredChannels, logger)

	machine := conversation.New(conversation.Config{
		Sessions:     sessionService,
		Localizer:    loc,
		Subscription: subscriptionService,
		Downloader:   service.NewStubDownloader(logger),
		Recognizer:   service.NewStubRecognizer(logger),
		Media:        telegram.NewFileFetcher(bot, cfg.HTTPTimeout),
		Channels:     cfg.RequiredChannels,
		Logger:       logger,
	})
	machine.Use(middleware.SubscriptionRequired(subscriptionService, loc, cfg.RequiredChannels, logger))

	// Initialize handler
	bot.Use(
		telemw.Recover(func(err error, c tele.Context) {
			logger.Error("Recovered from panic in handler", zap.Error(err))
		}),
		middleware.Logging(logger),
		middleware.Typing(logger),
	)
	h := handler.NewHandler(bot, machine, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCleanupJob(ctx, sessionService, cfg.CleanupInterval, logger)

	// Start HTTP server in background
	gin.SetMode(gin.ReleaseMode)
	server := webhook.NewServer(webhook.Options{
		Addr:        ":" + cfg.Port,
		PublicURL:   cfg.PublicURL,
		SecretToken: cfg.WebhookSecret(),
		BotUsername: bot.Me.Username,
		Channels:    cfg.RequiredChannels,
	}, bot, bot, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("Bot started successfully", zap.String("webhook_url", server.WebhookURL()))

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to stop HTTP server", zap.Error(err))
	}
	cancel()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies the embedded schema migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob periodically removes expired sessions
func runCleanupJob(ctx context.Context, sessions *service.SessionService, interval time.Duration, logger *zap.Logger) {
	// Run cleanup once at startup
	if err := sessions.CleanupExpired(ctx); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup")
			if err := sessions.CleanupExpired(ctx); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
