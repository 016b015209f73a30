package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/runoshun/vtodo/internal/domain"
)

// ListenInput contains the parameters for a listening session.
// Fields are ordered to minimize memory padding.
type ListenInput struct {
	OnInterim func(domain.Transcript) // Called for each interim result (optional)
	Owner     string                  // User issuing the command
	Language  domain.Language         // Language selected before listening
	DryRun    bool                    // Classify and resolve only, change nothing
}

// ListenOutput contains the result of a listening session.
type ListenOutput struct {
	Result     *VoiceCommandOutput // Nil when the command failed
	Transcript domain.Transcript   // Final transcript
}

// Listen runs one recognition session and executes the command it hears.
type Listen struct {
	recognizer domain.SpeechRecognizer
	voice      *VoiceCommand
	logger     domain.Logger
}

// NewListen creates a new Listen use case.
func NewListen(recognizer domain.SpeechRecognizer, voice *VoiceCommand, logger domain.Logger) *Listen {
	return &Listen{
		recognizer: recognizer,
		voice:      voice,
		logger:     logger,
	}
}

// Execute listens for one utterance and runs it through VoiceCommand.
// Cancelling ctx stops the session. When the command itself fails, the
// returned output still carries the transcript so callers can echo it.
func (uc *Listen) Execute(ctx context.Context, in ListenInput) (*ListenOutput, error) {
	if !in.Language.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, in.Language)
	}

	var (
		mu    sync.Mutex
		final *domain.Transcript
	)
	terminal := make(chan *domain.RecognitionError, 1)
	handlers := domain.RecognitionHandlers{
		OnResult: func(t domain.Transcript) {
			if t.IsFinal {
				mu.Lock()
				final = &t
				mu.Unlock()
				return
			}
			if in.OnInterim != nil {
				in.OnInterim(t)
			}
		},
		OnError: func(e *domain.RecognitionError) { terminal <- e },
		OnEnd:   func() { terminal <- nil },
	}

	if !uc.recognizer.StartListening(ctx, in.Language, handlers) {
		select {
		case e := <-terminal:
			if e != nil {
				return nil, e
			}
		default:
		}
		return nil, domain.ErrRecognizerBusy
	}

	var recErr *domain.RecognitionError
	select {
	case recErr = <-terminal:
	case <-ctx.Done():
		uc.recognizer.StopListening()
		recErr = <-terminal
	}

	mu.Lock()
	heard := final
	mu.Unlock()

	if heard == nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if recErr != nil {
			return nil, recErr
		}
		return nil, domain.ErrNoTranscript
	}
	if recErr != nil && uc.logger != nil {
		uc.logger.Warn(0, "speech", fmt.Sprintf("session ended with %s after the final result", recErr.Code))
	}

	out := &ListenOutput{Transcript: *heard}
	res, err := uc.voice.Execute(ctx, VoiceCommandInput{
		Transcript: *heard,
		Owner:      in.Owner,
		Language:   in.Language,
		DryRun:     in.DryRun,
	})
	out.Result = res
	return out, err
}
