package domain

import (
	"context"
	"errors"
	"fmt"
)

// Transcript is one speech-to-text result for an utterance.
// Confidence is advisory; rejecting low-confidence results is caller policy.
type Transcript struct {
	Text       string
	Confidence float64 // 0..1
	IsFinal    bool
}

// SessionState is the lifecycle state of a recognition adapter.
type SessionState string

const (
	SessionIdle      SessionState = "idle" // Also after a session that ended with an error
	SessionListening SessionState = "listening"
)

// RecognitionErrorCode is the closed set of session error categories.
type RecognitionErrorCode string

const (
	ErrorNotSupported     RecognitionErrorCode = "not-supported" // Capability error
	ErrorNoSpeech         RecognitionErrorCode = "no-speech"
	ErrorNoMicrophone     RecognitionErrorCode = "no-microphone"
	ErrorPermissionDenied RecognitionErrorCode = "permission-denied"
	ErrorNetwork          RecognitionErrorCode = "network"
	ErrorAborted          RecognitionErrorCode = "aborted"
	ErrorOther            RecognitionErrorCode = "other"
)

// RecognitionErrorCodeFromEngine maps vendor error codes (including the
// browser Web Speech API names) onto the closed set.
func RecognitionErrorCodeFromEngine(code string) RecognitionErrorCode {
	switch code {
	case "not-supported", "unsupported":
		return ErrorNotSupported
	case "no-speech", "silence":
		return ErrorNoSpeech
	case "no-microphone", "audio-capture":
		return ErrorNoMicrophone
	case "permission-denied", "not-allowed", "service-not-allowed":
		return ErrorPermissionDenied
	case "network":
		return ErrorNetwork
	case "aborted":
		return ErrorAborted
	default:
		return ErrorOther
	}
}

// RecognitionError is delivered through the adapter's error channel.
type RecognitionError struct {
	Err  error
	Code RecognitionErrorCode
}

// NewRecognitionError creates a RecognitionError with the given code.
func NewRecognitionError(code RecognitionErrorCode, err error) *RecognitionError {
	return &RecognitionError{Code: code, Err: err}
}

// Error implements error.
func (e *RecognitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech recognition %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("speech recognition %s", e.Code)
}

// Unwrap returns the underlying error.
func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// Is reports capability errors as ErrSpeechUnsupported.
func (e *RecognitionError) Is(target error) bool {
	return target == ErrSpeechUnsupported && e.Code == ErrorNotSupported
}

// AsRecognitionError extracts a RecognitionError from err.
func AsRecognitionError(err error) (*RecognitionError, bool) {
	var re *RecognitionError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// RecognitionHandlers receive the events of one listening session.
// Order: zero or more interim results, at most one final result, then
// exactly one of OnEnd or OnError.
type RecognitionHandlers struct {
	OnResult func(Transcript)
	OnError  func(*RecognitionError)
	OnEnd    func()
}

// SpeechRecognizer is the uniform listening contract used by use cases.
type SpeechRecognizer interface {
	// IsSupported checks engine capability without side effects.
	IsSupported() bool

	// StartListening begins one single-utterance session. Returns false
	// when the engine is unsupported or a session is already active.
	StartListening(ctx context.Context, lang Language, h RecognitionHandlers) bool

	// StopListening requests early termination. No-op when idle.
	StopListening()

	// IsListening reports whether a session is active.
	IsListening() bool
}

// ListenOptions are engine settings fixed by the adapter.
type ListenOptions struct {
	Language        Language
	MaxAlternatives int
	Continuous      bool
	InterimResults  bool
}

// SpeechEvent is one item emitted by a speech engine.
// Exactly one of Transcript or Err is meaningful; Err is terminal.
type SpeechEvent struct {
	Err        error
	Transcript Transcript
}

// SpeechEngine is a platform speech-to-text backend.
type SpeechEngine interface {
	// Name returns the engine name (for logging).
	Name() string

	// Supported reports whether the engine can run in this environment.
	Supported() bool

	// Listen starts recognition. The returned channel is closed when the
	// engine stops; cancelling ctx asks the engine to stop.
	Listen(ctx context.Context, opts ListenOptions) (<-chan SpeechEvent, error)
}
