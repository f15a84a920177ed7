package domain

import "errors"

// Supported interface languages
const (
	LangEnglish = "en"
	LangRussian = "ru"
	LangUzbek   = "uz"

	DefaultLanguage = LangRussian
)

// ErrUnsupportedLanguage is returned for language codes outside SupportedLanguages
var ErrUnsupportedLanguage = errors.New("unsupported language")

// SupportedLanguages lists language codes in the order they are offered to users
var SupportedLanguages = []string{LangEnglish, LangRussian, LangUzbek}

// IsSupportedLanguage checks if code is one of SupportedLanguages
func IsSupportedLanguage(code string) bool {
	for _, lang := range SupportedLanguages {
		if lang == code {
			return true
		}
	}
	return false
}
