// Package i18n provides user-facing messages in every supported language.
package i18n

import (
	"fmt"

	"github.com/runoshun/vtodo/internal/domain"
)

// Message keys.
const (
	KeyCreated            = "created"
	KeyCompleted          = "completed"
	KeyAlreadyCompleted   = "already_completed"
	KeyHighPriority       = "high_priority"
	KeyAlreadyHigh        = "already_high"
	KeyNormalPriority     = "normal_priority"
	KeyAlreadyNormal      = "already_normal"
	KeyUnknownCommand     = "unknown_command"
	KeyNoMatch            = "no_match"
	KeyNoMatchHint        = "no_match_hint"
	KeyLowConfidence      = "low_confidence"
	KeyNoTranscript       = "no_transcript"
	KeyErrNotSupported    = "err_not_supported"
	KeyErrNoSpeech        = "err_no_speech"
	KeyErrNoMicrophone    = "err_no_microphone"
	KeyErrPermission      = "err_permission_denied"
	KeyErrNetwork         = "err_network"
	KeyErrAborted         = "err_aborted"
	KeyErrOther           = "err_other"
	KeyListening          = "listening"
	KeyHeard              = "heard"
	KeyDryRun             = "dry_run"
	KeyStopHint           = "stop_hint"
	KeyListSeparator      = "list_separator"
	KeyCommandCreate      = "cmd_create"
	KeyCommandComplete    = "cmd_complete"
	KeyCommandHigh        = "cmd_high"
	KeyCommandNormal      = "cmd_normal"
	KeyCommandUnknown     = "cmd_unknown"
	KeyTaskFailed         = "task_failed"
	KeyRecognitionStopped = "recognition_stopped"
	KeyRecognizerBusy     = "recognizer_busy"
)

// Translations for all supported languages.
var translations = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		// Command results
		KeyCreated:          "Added %q.",
		KeyCompleted:        "Marked %q as done.",
		KeyAlreadyCompleted: "%q is already done.",
		KeyHighPriority:     "%q is now high priority.",
		KeyAlreadyHigh:      "%q is already high priority.",
		KeyNormalPriority:   "%q is back to normal priority.",
		KeyAlreadyNormal:    "%q already has normal priority.",
		KeyTaskFailed:       "Could not update your tasks. Please try again.",

		// Misses
		KeyUnknownCommand: "Sorry, I didn't understand %q. Try \"add todo: buy milk\".",
		KeyNoMatch:        "No task matches %q.",
		KeyNoMatchHint:    "Did you mean %s?",
		KeyLowConfidence:  "I'm not sure I heard that right. Please say it again.",
		KeyNoTranscript:   "Nothing was recognized. Please try again.",

		// Recognition errors
		KeyErrNotSupported:    "Voice input isn't available here. Type the command instead.",
		KeyErrNoSpeech:        "I didn't hear anything. Please try again.",
		KeyErrNoMicrophone:    "No microphone was found. Check that one is connected.",
		KeyErrPermission:      "Microphone access was denied. Allow it and try again.",
		KeyErrNetwork:         "Speech recognition needs a network connection. Check it and try again.",
		KeyErrAborted:         "Listening was cancelled.",
		KeyErrOther:           "Speech recognition failed. Please try again.",
		KeyRecognitionStopped: "Stopped listening.",
		KeyRecognizerBusy:     "Already listening. Wait for the current session to end, then try again.",

		// Session
		KeyListening:     "Listening...",
		KeyHeard:         "Heard: %s",
		KeyDryRun:        "%s: %q (dry run, nothing changed)",
		KeyStopHint:      "Press q to stop.",
		KeyListSeparator: ", ",

		// Command labels
		KeyCommandCreate:   "Add task",
		KeyCommandComplete: "Complete task",
		KeyCommandHigh:     "Set high priority",
		KeyCommandNormal:   "Set normal priority",
		KeyCommandUnknown:  "Unknown command",
	},
	domain.LanguageUrdu: {
		// Command results
		KeyCreated:          "%q شامل کر دیا گیا۔",
		KeyCompleted:        "%q مکمل ہو گیا۔",
		KeyAlreadyCompleted: "%q پہلے ہی مکمل ہے۔",
		KeyHighPriority:     "%q اب اہم ہے۔",
		KeyAlreadyHigh:      "%q پہلے ہی اہم ہے۔",
		KeyNormalPriority:   "%q اب عام ترجیح پر ہے۔",
		KeyAlreadyNormal:    "%q پہلے ہی عام ترجیح پر ہے۔",
		KeyTaskFailed:       "کام محفوظ نہیں ہو سکے۔ دوبارہ کوشش کریں۔",

		// Misses
		KeyUnknownCommand: "معاف کیجیے، %q سمجھ نہیں آیا۔ مثال: \"نیا کام: دودھ خریدیں\"",
		KeyNoMatch:        "%q سے ملتا کوئی کام نہیں ملا۔",
		KeyNoMatchHint:    "کیا آپ کا مطلب %s تھا؟",
		KeyLowConfidence:  "آواز واضح نہیں تھی۔ براہ کرم دوبارہ بولیں۔",
		KeyNoTranscript:   "کچھ پہچانا نہیں جا سکا۔ دوبارہ کوشش کریں۔",

		// Recognition errors
		KeyErrNotSupported:    "یہاں آواز سے ان پٹ دستیاب نہیں۔ حکم لکھ کر دیں۔",
		KeyErrNoSpeech:        "کوئی آواز سنائی نہیں دی۔ دوبارہ کوشش کریں۔",
		KeyErrNoMicrophone:    "مائیکروفون نہیں ملا۔ چیک کریں کہ وہ لگا ہوا ہے۔",
		KeyErrPermission:      "مائیکروفون کی اجازت نہیں ملی۔ اجازت دے کر دوبارہ کوشش کریں۔",
		KeyErrNetwork:         "آواز پہچاننے کے لیے انٹرنیٹ درکار ہے۔ کنکشن چیک کریں۔",
		KeyErrAborted:         "سننا منسوخ کر دیا گیا۔",
		KeyErrOther:           "آواز پہچاننے میں خرابی ہوئی۔ دوبارہ کوشش کریں۔",
		KeyRecognitionStopped: "سننا بند کر دیا گیا۔",
		KeyRecognizerBusy:     "پہلے ہی سن رہے ہیں۔ موجودہ سیشن ختم ہونے دیں، پھر دوبارہ کوشش کریں۔",

		// Session
		KeyListening:     "سن رہے ہیں...",
		KeyHeard:         "سنا: %s",
		KeyDryRun:        "%s: %q (آزمائشی، کچھ تبدیل نہیں ہوا)",
		KeyStopHint:      "روکنے کے لیے q دبائیں۔",
		KeyListSeparator: "، ",

		// Command labels
		KeyCommandCreate:   "نیا کام",
		KeyCommandComplete: "کام مکمل",
		KeyCommandHigh:     "اہم بنائیں",
		KeyCommandNormal:   "عام ترجیح",
		KeyCommandUnknown:  "نامعلوم حکم",
	},
}

// T returns the message for key in lang. Unsupported languages and missing
// keys fall back to English, then to the key itself.
func T(lang domain.Language, key string) string {
	if messages, ok := translations[lang]; ok {
		if s, ok := messages[key]; ok {
			return s
		}
	}
	if s, ok := translations[domain.DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Tf formats the message for key in lang with args.
func Tf(lang domain.Language, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// CommandLabel returns the localized label for a command kind.
func CommandLabel(lang domain.Language, kind domain.CommandKind) string {
	switch kind {
	case domain.CommandCreate:
		return T(lang, KeyCommandCreate)
	case domain.CommandComplete:
		return T(lang, KeyCommandComplete)
	case domain.CommandSetHighPriority:
		return T(lang, KeyCommandHigh)
	case domain.CommandSetNormalPriority:
		return T(lang, KeyCommandNormal)
	default:
		return T(lang, KeyCommandUnknown)
	}
}

// RecognitionErrorKey returns the message key for a session error code.
func RecognitionErrorKey(code domain.RecognitionErrorCode) string {
	switch code {
	case domain.ErrorNotSupported:
		return KeyErrNotSupported
	case domain.ErrorNoSpeech:
		return KeyErrNoSpeech
	case domain.ErrorNoMicrophone:
		return KeyErrNoMicrophone
	case domain.ErrorPermissionDenied:
		return KeyErrPermission
	case domain.ErrorNetwork:
		return KeyErrNetwork
	case domain.ErrorAborted:
		return KeyErrAborted
	default:
		return KeyErrOther
	}
}
