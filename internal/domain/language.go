package domain

import "strings"

// Language is the spoken language selected before a listening session.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageUrdu    Language = "ur"
)

// DefaultLanguage is used when nothing is configured.
const DefaultLanguage = LanguageEnglish

// AllLanguages returns all supported languages.
func AllLanguages() []Language {
	return []Language{LanguageEnglish, LanguageUrdu}
}

// ParseLanguage converts a tag such as "en", "EN" or "ur-PK" into a Language.
func ParseLanguage(s string) (Language, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch Language(tag) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageUrdu:
		return LanguageUrdu, nil
	default:
		return "", ErrInvalidLanguage
	}
}

// IsValid returns true if the language is supported.
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageUrdu
}

// Display returns the language name.
func (l Language) Display() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageUrdu:
		return "Urdu"
	default:
		return string(l)
	}
}

// Locale returns the BCP-47 locale handed to speech engines.
func (l Language) Locale() string {
	switch l {
	case LanguageEnglish:
		return "en-US"
	case LanguageUrdu:
		return "ur-PK"
	default:
		return string(l)
	}
}
