// Package scripted provides a speech engine that replays a recorded script.
// It backs `vtodo listen --script` and the recognition tests.
package scripted

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/vtodo/internal/domain"
)

// EngineName is the configuration name of this engine.
const EngineName = domain.EngineScript

// ErrEmptyScript is returned when a script contains no steps.
var ErrEmptyScript = errors.New("speech script has no events")

// Step is one scripted engine event. A step with Error ends the session
// with that engine error code; otherwise it emits a transcript.
// Fields are ordered to minimize memory padding.
type Step struct {
	Text       string        `yaml:"text"`
	Error      string        `yaml:"error,omitempty"`
	Confidence float64       `yaml:"confidence"`
	Delay      time.Duration `yaml:"delay,omitempty"`
	Final      bool          `yaml:"final"`
}

// script is the YAML file layout.
type script struct {
	Events []Step `yaml:"events"`
}

// Ensure Engine implements domain.SpeechEngine.
var _ domain.SpeechEngine = (*Engine)(nil)

// Engine replays the same steps for every session.
type Engine struct {
	steps []Step
}

// New creates an Engine from steps.
func New(steps ...Step) *Engine {
	return &Engine{steps: steps}
}

// Load reads a YAML script file.
func Load(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read speech script: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML script.
func Parse(data []byte) (*Engine, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse speech script: %w", err)
	}
	if len(s.Events) == 0 {
		return nil, ErrEmptyScript
	}
	return New(s.Events...), nil
}

// Name returns the engine name.
func (e *Engine) Name() string { return EngineName }

// Supported always reports true.
func (e *Engine) Supported() bool { return true }

// Steps returns a copy of the script steps.
func (e *Engine) Steps() []Step {
	out := make([]Step, len(e.steps))
	copy(out, e.steps)
	return out
}

// Listen replays the script. Cancelling ctx ends the session with the
// context error.
func (e *Engine) Listen(ctx context.Context, _ domain.ListenOptions) (<-chan domain.SpeechEvent, error) {
	events := make(chan domain.SpeechEvent)
	go func() {
		defer close(events)
		for _, step := range e.steps {
			if err := sleep(ctx, step.Delay); err != nil {
				events <- domain.SpeechEvent{Err: err}
				return
			}

			ev := domain.SpeechEvent{Transcript: domain.Transcript{
				Text:       step.Text,
				Confidence: step.Confidence,
				IsFinal:    step.Final,
			}}
			if step.Error != "" {
				code := domain.RecognitionErrorCodeFromEngine(step.Error)
				ev = domain.SpeechEvent{Err: domain.NewRecognitionError(code, fmt.Errorf("script: %s", step.Error))}
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				events <- domain.SpeechEvent{Err: ctx.Err()}
				return
			}
			if ev.Err != nil {
				return
			}
		}
	}()
	return events, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
