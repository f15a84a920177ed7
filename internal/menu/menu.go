// Package menu builds the inline keyboards shown by the bot.
// Payloads are read back by the conversation dispatcher and must stay stable.
package menu

import (
	"strings"

	"socialdl/internal/domain"
)

// Callback payloads
const (
	PayloadDownload          = "download"
	PayloadShazam            = "shazam"
	PayloadSettings          = "settings"
	PayloadHelp              = "help"
	PayloadBack              = "back"
	PayloadCheckSubscription = "check_subscription"

	LanguagePrefix = "lang_"
	PlatformPrefix = "platform_"
)

// Translator resolves localized labels
type Translator interface {
	Get(lang, key string) string
}

var languageLabels = map[string]string{
	domain.LangEnglish: "🇬🇧 English",
	domain.LangRussian: "🇷🇺 Русский",
	domain.LangUzbek:   "🇺🇿 O'zbekcha",
}

// Language returns the language picker: one row with a button per supported language
func Language() domain.Keyboard {
	row := make([]domain.Button, 0, len(domain.SupportedLanguages))
	for _, lang := range domain.SupportedLanguages {
		row = append(row, callback(languageLabels[lang], LanguagePrefix+lang))
	}
	return domain.Keyboard{row}
}

// Main returns the main menu, one action per row
func Main(tr Translator, lang string) domain.Keyboard {
	return domain.Keyboard{
		{callback(tr.Get(lang, "buttons.download"), PayloadDownload)},
		{callback(tr.Get(lang, "buttons.shazam"), PayloadShazam)},
		{callback(tr.Get(lang, "buttons.settings"), PayloadSettings)},
		{callback(tr.Get(lang, "buttons.help"), PayloadHelp)},
	}
}

// Platforms returns the platform picker followed by a back button
func Platforms(tr Translator, lang string) domain.Keyboard {
	kb := make(domain.Keyboard, 0, len(domain.Platforms)+1)
	for _, p := range domain.Platforms {
		kb = append(kb, []domain.Button{callback(p.Label, PlatformPrefix+p.Name)})
	}
	return append(kb, []domain.Button{callback(tr.Get(lang, "buttons.back"), PayloadBack)})
}

// Subscription returns join links for every channel and the check button
func Subscription(tr Translator, lang string, channels []string) domain.Keyboard {
	kb := make(domain.Keyboard, 0, len(channels)+1)
	for _, ch := range channels {
		kb = append(kb, []domain.Button{{
			Label:   "📢 Join " + ch,
			Kind:    domain.ButtonURL,
			Payload: ChannelURL(ch),
		}})
	}
	return append(kb, []domain.Button{callback(tr.Get(lang, "buttons.check_subscription"), PayloadCheckSubscription)})
}

// ChannelURL converts a public channel username like @name to its t.me link
func ChannelURL(channel string) string {
	return "https://t.me/" + strings.TrimPrefix(channel, "@")
}

// IsMainAction reports whether payload belongs to a main menu button
func IsMainAction(payload string) bool {
	switch payload {
	case PayloadDownload, PayloadShazam, PayloadSettings, PayloadHelp:
		return true
	}
	return false
}

func callback(label, payload string) domain.Button {
	return domain.Button{Label: label, Kind: domain.ButtonCallback, Payload: payload}
}
