package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdl/internal/domain"
)

var configEnv = []string{
	"TELEGRAM_TOKEN", "SECRET_KEY", "VERCEL_URL", "PORT", "DEFAULT_LANGUAGE",
	"REQUIRED_CHANNELS", "SESSION_TTL", "SESSION_CLEANUP_INTERVAL", "HTTP_TIMEOUT",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
}

// clearEnv unsets config variables for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		// Setenv registers restoring the original value
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "https://your-vercel-app.vercel.app", cfg.PublicURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ru", cfg.DefaultLanguage)
	assert.Equal(t, []string{"@xtarjima", "@moshinabozorim_n"}, cfg.RequiredChannels)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "socialdl", cfg.Database.Name)
	assert.False(t, cfg.UsePostgres())

	// generated secret is not used for the webhook
	assert.Len(t, cfg.SecretKey, 48)
	assert.Empty(t, cfg.WebhookSecret())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("VERCEL_URL", "my-bot.vercel.app/")
	t.Setenv("DEFAULT_LANGUAGE", "uz")
	t.Setenv("REQUIRED_CHANNELS", " @one , two,,")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("DB_PASSWORD", "pass")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://my-bot.vercel.app", cfg.PublicURL)
	assert.Equal(t, "uz", cfg.DefaultLanguage)
	assert.Equal(t, []string{"@one", "@two"}, cfg.RequiredChannels)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "s3cret", cfg.WebhookSecret())
	assert.True(t, cfg.UsePostgres())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		errSubstr string
	}{
		{
			name:      "missing token",
			env:       map[string]string{},
			errSubstr: "TELEGRAM_TOKEN",
		},
		{
			name:      "unsupported default language",
			env:       map[string]string{"TELEGRAM_TOKEN": "123:abc", "DEFAULT_LANGUAGE": "de"},
			errSubstr: "DEFAULT_LANGUAGE",
		},
		{
			name:      "invalid duration",
			env:       map[string]string{"TELEGRAM_TOKEN": "123:abc", "SESSION_TTL": "forever"},
			errSubstr: "forever",
		},
		{
			name:      "zero http timeout",
			env:       map[string]string{"TELEGRAM_TOKEN": "123:abc", "HTTP_TIMEOUT": "0s"},
			errSubstr: "HTTP_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_UnsupportedLanguageError(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DEFAULT_LANGUAGE", "fr")

	_, err := Load()

	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}
