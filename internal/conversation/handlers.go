package conversation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"socialdl/internal/domain"
	"socialdl/internal/menu"
)

// errVoiceFetch marks failures to get the voice file onto disk.
// Their details stay in the logs.
var errVoiceFetch = errors.New("fetch voice")

// handleStart shows the welcome text with the main menu
func (m *Machine) handleStart(c *Context) error {
	c.Session.State = domain.StateSelectingAction
	return c.Show(m.welcomeText(c.Lang()), menu.Main(m.loc, c.Lang()))
}

// handleLanguageMenu shows the language picker
func (m *Machine) handleLanguageMenu(c *Context) error {
	return c.Send(m.loc.Get(c.Lang(), "menus.select_language"), menu.Language())
}

// handleLanguage applies the language picked with a lang_{code} button
func (m *Machine) handleLanguage(c *Context) error {
	code := strings.TrimPrefix(c.Event.Data, menu.LanguagePrefix)

	if domain.IsSupportedLanguage(code) {
		c.Session.Language = code
	} else {
		m.logger.Warn("Unsupported language selected",
			zap.Int64("user_id", c.Event.UserID),
			zap.String("code", code),
		)
	}
	c.Session.State = domain.StateSelectingAction

	return c.Show(m.loc.Get(code, "language_changed"), menu.Main(m.loc, code))
}

// handleCheckSubscription re-runs the subscription check after the user joined channels
func (m *Machine) handleCheckSubscription(c *Context) error {
	lang := c.Lang()

	if !m.subscription.IsSubscribed(c.Context(), c.Event.UserID) {
		return c.Show(m.loc.Get(lang, "not_subscribed"), menu.Subscription(m.loc, lang, m.channels))
	}

	c.Session.State = domain.StateSelectingAction
	return c.Show(m.loc.Get(lang, "subscribed_success"), menu.Main(m.loc, lang))
}

// handleMainMenu handles main menu buttons
func (m *Machine) handleMainMenu(c *Context) error {
	lang := c.Lang()

	switch c.Event.Data {
	case menu.PayloadDownload:
		c.Session.State = domain.StateSelectingPlatform
		return c.Show(m.loc.Get(lang, "menus.select_platform"), menu.Platforms(m.loc, lang))
	case menu.PayloadShazam:
		c.Session.State = domain.StateProcessingLink
		return c.Show(m.shazamText(lang), nil)
	case menu.PayloadSettings:
		return c.Show(m.loc.Get(lang, "menus.settings"), menu.Language())
	case menu.PayloadHelp:
		return c.Show(m.loc.Get(lang, "instructions"), nil)
	}
	return nil
}

// handlePlatform asks for a link after a platform was picked.
// The platform itself does not restrict which links are accepted.
func (m *Machine) handlePlatform(c *Context) error {
	name := strings.TrimPrefix(c.Event.Data, menu.PlatformPrefix)
	if _, ok := domain.PlatformByName(name); !ok {
		m.logger.Warn("Unknown platform selected",
			zap.Int64("user_id", c.Event.UserID),
			zap.String("platform", name),
		)
		return nil
	}

	m.logger.Debug("Platform selected", zap.Int64("user_id", c.Event.UserID), zap.String("platform", name))

	c.Session.State = domain.StateProcessingLink
	lang := c.Lang()
	return c.Show(m.loc.Get(lang, "instructions"), menu.Main(m.loc, lang))
}

// handleMessage downloads content behind a supported link
func (m *Machine) handleMessage(c *Context) error {
	lang := c.Lang()

	link, ok := domain.DetectLink(c.Event.Text)
	if !ok {
		return c.Send(m.loc.Get(lang, "instructions"), nil)
	}

	if err := c.Send(m.loc.Get(lang, "processing"), nil); err != nil {
		return err
	}

	content, err := m.downloader.Download(c.Context(), link)
	if err != nil {
		m.logger.Error("Error processing link",
			zap.Int64("user_id", c.Event.UserID),
			zap.String("link", link),
			zap.Error(err),
		)
		return c.Send(m.errorText(lang, err), nil)
	}

	reply, ok := contentReply(content)
	if !ok {
		m.logger.Warn("Unsupported content kind", zap.String("kind", string(content.Kind)))
		return c.Send(m.loc.Get(lang, "unsupported"), nil)
	}
	reply.Keyboard = menu.Main(m.loc, lang)
	return c.Reply(reply)
}

// handleVoice recognizes a song in a voice or audio message
func (m *Machine) handleVoice(c *Context) error {
	lang := c.Lang()

	if err := c.Send(m.loc.Get(lang, "audio_recognizing"), nil); err != nil {
		return err
	}

	song, err := m.recognizeVoice(c)
	if err != nil {
		m.logger.Error("Error recognizing audio",
			zap.Int64("user_id", c.Event.UserID),
			zap.String("file_id", c.Event.FileID),
			zap.Error(err),
		)
		if errors.Is(err, errVoiceFetch) {
			return c.Send(m.loc.Get(lang, "audio_download_failed"), nil)
		}
		return c.Send(m.errorText(lang, err), nil)
	}

	if song == nil {
		return c.Send(m.loc.Get(lang, "song.not_recognized"), nil)
	}
	return c.Send(m.songText(lang, song), nil)
}

// recognizeVoice saves the voice file to a temporary file and runs recognition on it.
// The file is removed on every return path, panics included.
func (m *Machine) recognizeVoice(c *Context) (*domain.Song, error) {
	f, err := os.CreateTemp(m.tempDir, "voice-*.ogg")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %w", errVoiceFetch, err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("Failed to remove temp file", zap.String("path", path), zap.Error(err))
		}
	}()

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close temp file: %w", errVoiceFetch, err)
	}

	if err := m.media.Fetch(c.Context(), c.Event.FileID, path); err != nil {
		return nil, fmt.Errorf("%w: %w", errVoiceFetch, err)
	}

	return m.recognizer.Recognize(c.Context(), path)
}

func (m *Machine) welcomeText(lang string) string {
	var b strings.Builder
	b.WriteString(m.loc.Get(lang, "welcome"))
	b.WriteString("\n")
	for _, p := range domain.Platforms {
		b.WriteString("\n• ")
		b.WriteString(m.loc.Get(lang, "platforms."+p.Name))
	}
	return b.String()
}

func (m *Machine) shazamText(lang string) string {
	return m.loc.Get(lang, "shazam_features.title") + "\n\n" +
		strings.Join(m.loc.List(lang, "shazam_features.features"), "\n") + "\n\n" +
		m.loc.Get(lang, "shazam_features.prompt")
}

func (m *Machine) songText(lang string, song *domain.Song) string {
	lyrics := song.Lyrics
	if lyrics == "" {
		lyrics = m.loc.Get(lang, "song.no_lyrics")
	}
	return fmt.Sprintf("🎶 %s: %s\n🎤 %s: %s\n\n%s",
		m.loc.Get(lang, "song.title"), song.Title,
		m.loc.Get(lang, "song.artist"), song.Artist,
		lyrics,
	)
}

func (m *Machine) errorText(lang string, err error) string {
	return m.loc.Format(lang, "error", map[string]string{"error": err.Error()})
}

func contentReply(content *domain.Content) (domain.Reply, bool) {
	var kind domain.ReplyKind
	switch content.Kind {
	case domain.ContentVideo:
		kind = domain.ReplyVideo
	case domain.ContentAudio:
		kind = domain.ReplyAudio
	case domain.ContentPhoto:
		kind = domain.ReplyPhoto
	default:
		return domain.Reply{}, false
	}
	return domain.Reply{Kind: kind, Media: content.Source, Text: content.Caption}, true
}
