// Package recognition adapts a speech engine to the single-session listening
// contract used by the voice commands.
package recognition

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/runoshun/vtodo/internal/domain"
)

const logCategory = "speech"

// Ensure Adapter implements domain.SpeechRecognizer.
var _ domain.SpeechRecognizer = (*Adapter)(nil)

// Adapter runs at most one listening session at a time on top of a
// domain.SpeechEngine. Callbacks are invoked from a dispatch goroutine in
// the order: interim results, at most one final result, then exactly one
// of OnEnd or OnError.
// Fields are ordered to minimize memory padding.
type Adapter struct {
	engine  domain.SpeechEngine
	logger  domain.Logger
	current *session
	lastErr *domain.RecognitionError
	state   domain.SessionState
	lastID  string
	mu      sync.Mutex
}

// session is one listening session. stopRequested is guarded by Adapter.mu.
type session struct {
	cancel        context.CancelFunc
	handlers      domain.RecognitionHandlers
	id            string
	lang          domain.Language
	stopRequested bool
}

// New creates an Adapter over the given engine.
func New(engine domain.SpeechEngine, logger domain.Logger) *Adapter {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Adapter{
		engine: engine,
		logger: logger,
		state:  domain.SessionIdle,
	}
}

// IsSupported reports whether the engine can run here.
func (a *Adapter) IsSupported() bool {
	return a.engine != nil && a.engine.Supported()
}

// StartListening begins a session in lang. It returns false without
// starting anything when the engine is unsupported (after reporting a
// capability error through h.OnError) or when a session is already active.
func (a *Adapter) StartListening(ctx context.Context, lang domain.Language, h domain.RecognitionHandlers) bool {
	if !a.IsSupported() {
		name := "speech"
		if a.engine != nil {
			name = a.engine.Name()
		}
		a.logger.Warn(0, logCategory, fmt.Sprintf("%s engine is not supported", name))
		if h.OnError != nil {
			h.OnError(domain.NewRecognitionError(domain.ErrorNotSupported,
				fmt.Errorf("%s engine: %w", name, domain.ErrSpeechUnsupported)))
		}
		return false
	}

	a.mu.Lock()
	if a.state == domain.SessionListening {
		a.mu.Unlock()
		a.logger.Debug(0, logCategory, "start ignored: session already active")
		return false
	}
	sessCtx, cancel := context.WithCancel(ctx)
	s := &session{
		id:       uuid.NewString(),
		lang:     lang,
		handlers: h,
		cancel:   cancel,
	}
	a.current = s
	a.lastID = s.id
	a.lastErr = nil
	a.state = domain.SessionListening
	a.mu.Unlock()

	a.logger.Info(0, logCategory, fmt.Sprintf("session %s started (engine=%s, lang=%s)", s.id, a.engine.Name(), lang))
	go a.run(sessCtx, s)
	return true
}

// StopListening asks the active session to end. The session reports OnEnd
// once the engine has actually stopped. No-op when idle.
func (a *Adapter) StopListening() {
	a.mu.Lock()
	s := a.current
	if s == nil || s.stopRequested {
		a.mu.Unlock()
		return
	}
	s.stopRequested = true
	a.mu.Unlock()

	a.logger.Info(0, logCategory, fmt.Sprintf("session %s stop requested", s.id))
	s.cancel()
}

// IsListening reports whether a session is active.
func (a *Adapter) IsListening() bool {
	return a.State() == domain.SessionListening
}

// State returns the adapter's session state.
func (a *Adapter) State() domain.SessionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// LastError returns the error that ended the most recent session, or nil.
func (a *Adapter) LastError() *domain.RecognitionError {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// SessionID returns the id of the active or most recent session.
func (a *Adapter) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastID
}

func (a *Adapter) run(ctx context.Context, s *session) {
	defer s.cancel()

	events, err := a.engine.Listen(ctx, listenOptions(s.lang))
	if err != nil {
		a.finish(s, err)
		return
	}

	gotFinal := false
	for ev := range events {
		if ev.Err != nil {
			s.cancel()
			go drain(events)
			a.finish(s, ev.Err)
			return
		}
		if gotFinal {
			continue
		}
		if ev.Transcript.IsFinal {
			gotFinal = true
		}
		if s.handlers.OnResult != nil {
			s.handlers.OnResult(ev.Transcript)
		}
	}
	a.finish(s, nil)
}

// finish returns the adapter to idle, whatever ended the session, and
// delivers the terminal callback.
func (a *Adapter) finish(s *session, err error) {
	a.mu.Lock()
	var recErr *domain.RecognitionError
	if err != nil && !(s.stopRequested && isAbort(err)) {
		recErr = classify(err)
	}
	if a.current == s {
		a.current = nil
		a.lastErr = recErr
		a.state = domain.SessionIdle
	}
	a.mu.Unlock()

	if recErr != nil {
		a.logger.Warn(0, logCategory, fmt.Sprintf("session %s failed: %v", s.id, recErr))
		if s.handlers.OnError != nil {
			s.handlers.OnError(recErr)
		}
		return
	}
	a.logger.Info(0, logCategory, fmt.Sprintf("session %s ended", s.id))
	if s.handlers.OnEnd != nil {
		s.handlers.OnEnd()
	}
}

// listenOptions are the fixed engine settings: one utterance, interim
// results on, a single alternative.
func listenOptions(lang domain.Language) domain.ListenOptions {
	return domain.ListenOptions{
		Language:        lang,
		Continuous:      false,
		InterimResults:  true,
		MaxAlternatives: 1,
	}
}

// classify maps an engine error onto the closed error set.
func classify(err error) *domain.RecognitionError {
	if re, ok := domain.AsRecognitionError(err); ok {
		return re
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewRecognitionError(domain.ErrorAborted, err)
	}
	if errors.Is(err, domain.ErrSpeechUnsupported) {
		return domain.NewRecognitionError(domain.ErrorNotSupported, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.NewRecognitionError(domain.ErrorNetwork, err)
	}
	return domain.NewRecognitionError(domain.ErrorOther, err)
}

func isAbort(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	re, ok := domain.AsRecognitionError(err)
	return ok && re.Code == domain.ErrorAborted
}

func drain(events <-chan domain.SpeechEvent) {
	for range events {
	}
}
