package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"socialdl/internal/domain"
)

// Config holds all application configuration
type Config struct {
	BotToken string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	// SecretKey protects the webhook endpoint. A random one is generated if unset.
	SecretKey string `env:"SECRET_KEY"`
	// PublicURL is where Telegram reaches the webhook. Vercel sets VERCEL_URL without scheme.
	PublicURL string `env:"VERCEL_URL" envDefault:"https://your-vercel-app.vercel.app"`
	Port      string `env:"PORT" envDefault:"8080"`

	DefaultLanguage  string   `env:"DEFAULT_LANGUAGE" envDefault:"ru"`
	RequiredChannels []string `env:"REQUIRED_CHANNELS" envSeparator:"," envDefault:"@xtarjima,@moshinabozorim_n"`

	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	Database DatabaseConfig

	secretGenerated bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Name     string `env:"DB_NAME" envDefault:"socialdl"`
	User     string `env:"DB_USER" envDefault:"socialdl"`
	Password string `env:"DB_PASSWORD"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) normalize() error {
	if !domain.IsSupportedLanguage(c.DefaultLanguage) {
		return fmt.Errorf("DEFAULT_LANGUAGE %q: %w", c.DefaultLanguage, domain.ErrUnsupportedLanguage)
	}

	if c.SecretKey == "" {
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("generate secret key: %w", err)
		}
		c.SecretKey = secret
		c.secretGenerated = true
	}

	c.PublicURL = strings.TrimRight(strings.TrimSpace(c.PublicURL), "/")
	if c.PublicURL != "" && !strings.Contains(c.PublicURL, "://") {
		c.PublicURL = "https://" + c.PublicURL
	}

	channels := c.RequiredChannels[:0]
	for _, ch := range c.RequiredChannels {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			continue
		}
		if !strings.HasPrefix(ch, "@") {
			ch = "@" + ch
		}
		channels = append(channels, ch)
	}
	c.RequiredChannels = channels

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}

	return nil
}

// WebhookSecret returns the token Telegram must send with every update,
// empty when SECRET_KEY was not configured explicitly
func (c *Config) WebhookSecret() string {
	if c.secretGenerated {
		return ""
	}
	return c.SecretKey
}

// UsePostgres reports whether sessions are stored in PostgreSQL
func (c *Config) UsePostgres() bool {
	return c.Database.Password != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func randomSecret() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
