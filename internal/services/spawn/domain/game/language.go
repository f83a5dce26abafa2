package game

import (
	"fmt"
	"strings"

	i18ncatalog "github.com/louisbranch/spawning/internal/platform/i18n/catalog"
)

// Language selects the language monster and rule names are printed in.
type Language uint8

const (
	LanguageEN Language = iota
	LanguageDE
)

// Languages lists every supported language.
func Languages() []Language {
	return []Language{LanguageEN, LanguageDE}
}

// Code returns the short persisted form ("en", "de").
func (l Language) Code() string {
	switch l {
	case LanguageDE:
		return "de"
	default:
		return "en"
	}
}

// Locale returns the i18n bundle locale for the language.
func (l Language) Locale() string {
	switch l {
	case LanguageDE:
		return "de-DE"
	default:
		return i18ncatalog.BaseLocale
	}
}

// Name returns the language's own name as shown in language pickers.
func (l Language) Name(in Language) string {
	return in.text("game.language." + l.Code())
}

func (l Language) String() string {
	return l.Code()
}

// ParseLanguage accepts a short code, a BCP 47 tag, or the English name.
func ParseLanguage(value string) (Language, error) {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "english":
		return LanguageEN, nil
	case "german", "deutsch":
		return LanguageDE, nil
	case "":
		return LanguageEN, fmt.Errorf("language is required")
	}
	locale := i18ncatalog.Default().MatchLocale(trimmed)
	for _, lang := range Languages() {
		if lang.Locale() == locale && strings.HasPrefix(strings.ToLower(trimmed), lang.Code()) {
			return lang, nil
		}
	}
	return LanguageEN, fmt.Errorf("unsupported language %q", value)
}

// text resolves a registered message key for the language. Unknown keys
// fall back to the base locale, then to the key itself.
func (l Language) text(key string) string {
	if msg, ok := i18ncatalog.Default().Message(l.Locale(), key); ok {
		return msg
	}
	return key
}

// Text resolves a UI message key from the core namespace.
func (l Language) Text(key string) string {
	return l.text(key)
}
