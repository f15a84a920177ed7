package locale

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdl/internal/domain"
)

func newTestLocalizer(t *testing.T) *Localizer {
	t.Helper()
	l, err := New(domain.DefaultLanguage)
	require.NoError(t, err)
	return l
}

func TestNew_LoadsAllSupportedLanguages(t *testing.T) {
	l := newTestLocalizer(t)

	assert.Equal(t, []string{"en", "ru", "uz"}, l.Languages())
	assert.Equal(t, "ru", l.DefaultLanguage())
}

func TestNew_UnknownDefaultLanguage(t *testing.T) {
	_, err := New("de")

	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestLocalizer_Get(t *testing.T) {
	l := newTestLocalizer(t)

	tests := []struct {
		name     string
		lang     string
		key      string
		expected string
	}{
		{
			name:     "top level key",
			lang:     "en",
			key:      "language_changed",
			expected: "Language changed to English",
		},
		{
			name:     "nested key",
			lang:     "en",
			key:      "buttons.download",
			expected: "📥 Download",
		},
		{
			name:     "russian nested key",
			lang:     "ru",
			key:      "song.artist",
			expected: "Исполнитель",
		},
		{
			name:     "unknown language falls back to default",
			lang:     "de",
			key:      "buttons.back",
			expected: "⬅️ Назад",
		},
		{
			name:     "missing key returns key",
			lang:     "en",
			key:      "nope",
			expected: "nope",
		},
		{
			name:     "missing nested segment returns key",
			lang:     "en",
			key:      "buttons.nope",
			expected: "buttons.nope",
		},
		{
			name:     "non string value returns key",
			lang:     "en",
			key:      "buttons",
			expected: "buttons",
		},
		{
			name:     "list value returns key",
			lang:     "uz",
			key:      "shazam_features.features",
			expected: "shazam_features.features",
		},
		{
			name:     "descending into string returns key",
			lang:     "en",
			key:      "welcome.extra",
			expected: "welcome.extra",
		},
		{
			name:     "empty key",
			lang:     "en",
			key:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, l.Get(tt.lang, tt.key))
		})
	}
}

func TestLocalizer_Get_EmptyValue(t *testing.T) {
	fsys := fstest.MapFS{
		"ru.json": {Data: []byte(`{"blank": "", "group": {}, "list": []}`)},
	}
	l, err := NewFromFS(fsys, "ru")
	require.NoError(t, err)

	assert.Equal(t, "blank", l.Get("ru", "blank"))
	assert.Equal(t, "group.inner", l.Get("ru", "group.inner"))
	assert.Nil(t, l.List("ru", "list"))
}

func TestLocalizer_List(t *testing.T) {
	l := newTestLocalizer(t)

	features := l.List("en", "shazam_features.features")
	assert.Len(t, features, 6)
	assert.Equal(t, "Song title or artist name", features[0])

	assert.Nil(t, l.List("en", "welcome"))
	assert.Nil(t, l.List("en", "missing.list"))
}

func TestLocalizer_Format(t *testing.T) {
	l := newTestLocalizer(t)

	assert.Equal(t, "❌ An error occurred: boom", l.Format("en", "error", map[string]string{"error": "boom"}))
	assert.Equal(t, "❌ Произошла ошибка: {error}", l.Format("ru", "error", nil))
	assert.Equal(t, "missing", l.Format("en", "missing", map[string]string{"error": "boom"}))
}

func TestCatalogs_HaveSameKeys(t *testing.T) {
	l := newTestLocalizer(t)

	keys := []string{
		"welcome", "instructions", "language_changed", "processing", "error",
		"unsupported", "audio_recognizing", "audio_download_failed", "subscribe_prompt",
		"subscribed_success", "not_subscribed",
		"buttons.download", "buttons.shazam", "buttons.settings", "buttons.help",
		"buttons.back", "buttons.check_subscription",
		"song.title", "song.artist", "song.no_lyrics", "song.not_recognized",
		"shazam_features.title", "shazam_features.prompt",
		"menus.select_platform", "menus.settings", "menus.select_language",
	}
	for _, p := range domain.Platforms {
		keys = append(keys, "platforms."+p.Name)
	}

	for _, lang := range domain.SupportedLanguages {
		for _, key := range keys {
			assert.NotEqual(t, key, l.Get(lang, key), "lang %s key %s", lang, key)
		}
		assert.Len(t, l.List(lang, "shazam_features.features"), 6, "lang %s", lang)
	}
}

func TestNewFromFS_InvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"ru.json": {Data: []byte(`{`)},
	}

	_, err := NewFromFS(fsys, "ru")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse locale ru.json")
}
