package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/vtodo/internal/domain"
)

func TestTranslations_Complete(t *testing.T) {
	english := translations[domain.LanguageEnglish]
	for _, lang := range domain.AllLanguages() {
		messages, ok := translations[lang]
		if !assert.True(t, ok, "missing table for %s", lang) {
			continue
		}
		for key := range english {
			assert.NotEmpty(t, messages[key], "%s: missing %s", lang, key)
		}
		assert.Len(t, messages, len(english), "%s has extra keys", lang)
	}
}

func TestT(t *testing.T) {
	assert.Equal(t, "Listening...", T(domain.LanguageEnglish, KeyListening))
	assert.Equal(t, "سن رہے ہیں...", T(domain.LanguageUrdu, KeyListening))
	assert.Equal(t, "Listening...", T(domain.Language("fr"), KeyListening))
	assert.Equal(t, "no_such_key", T(domain.LanguageUrdu, "no_such_key"))
}

func TestTf(t *testing.T) {
	assert.Equal(t, `Added "Buy milk".`, Tf(domain.LanguageEnglish, KeyCreated, "Buy milk"))
	assert.Equal(t, `"دودھ" مکمل ہو گیا۔`, Tf(domain.LanguageUrdu, KeyCompleted, "دودھ"))
}

func TestCommandLabel(t *testing.T) {
	tests := []struct {
		kind domain.CommandKind
		want string
	}{
		{domain.CommandCreate, "Add task"},
		{domain.CommandComplete, "Complete task"},
		{domain.CommandSetHighPriority, "Set high priority"},
		{domain.CommandSetNormalPriority, "Set normal priority"},
		{domain.CommandUnknown, "Unknown command"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, CommandLabel(domain.LanguageEnglish, tt.kind))
		})
	}
}

func TestRecognitionErrorKey(t *testing.T) {
	codes := []domain.RecognitionErrorCode{
		domain.ErrorNotSupported,
		domain.ErrorNoSpeech,
		domain.ErrorNoMicrophone,
		domain.ErrorPermissionDenied,
		domain.ErrorNetwork,
		domain.ErrorAborted,
		domain.ErrorOther,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		key := RecognitionErrorKey(code)
		assert.NotEqual(t, key, T(domain.LanguageUrdu, key), "no Urdu message for %s", code)
		seen[key] = true
	}
	assert.Len(t, seen, len(codes), "each code has its own message")
	assert.Equal(t, KeyErrOther, RecognitionErrorKey("vendor-specific"))
}
