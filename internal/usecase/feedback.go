package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/i18n"
)

// FeedbackMessage turns the outcome of a voice command into a sentence for
// the user in lang. heard is the transcript the user said; err may come
// from recognition or from VoiceCommand. Every outcome yields a message.
func FeedbackMessage(lang domain.Language, heard string, out *VoiceCommandOutput, err error) string {
	if err != nil {
		return errorMessage(lang, heard, err)
	}
	if out == nil {
		return i18n.T(lang, i18n.KeyNoTranscript)
	}

	title := out.Command.Title
	if out.Task != nil {
		title = out.Task.Title
	}

	if out.DryRun {
		return i18n.Tf(lang, i18n.KeyDryRun, i18n.CommandLabel(lang, out.Command.Kind), title)
	}

	switch out.Command.Kind {
	case domain.CommandCreate:
		return i18n.Tf(lang, i18n.KeyCreated, title)
	case domain.CommandComplete:
		if out.Changed {
			return i18n.Tf(lang, i18n.KeyCompleted, title)
		}
		return i18n.Tf(lang, i18n.KeyAlreadyCompleted, title)
	case domain.CommandSetHighPriority:
		if out.Changed {
			return i18n.Tf(lang, i18n.KeyHighPriority, title)
		}
		return i18n.Tf(lang, i18n.KeyAlreadyHigh, title)
	case domain.CommandSetNormalPriority:
		if out.Changed {
			return i18n.Tf(lang, i18n.KeyNormalPriority, title)
		}
		return i18n.Tf(lang, i18n.KeyAlreadyNormal, title)
	default:
		return i18n.Tf(lang, i18n.KeyUnknownCommand, heard)
	}
}

func errorMessage(lang domain.Language, heard string, err error) string {
	if re, ok := domain.AsRecognitionError(err); ok {
		return i18n.T(lang, i18n.RecognitionErrorKey(re.Code))
	}
	if nm, ok := IsNoMatch(err); ok {
		msg := i18n.Tf(lang, i18n.KeyNoMatch, nm.Fragment)
		if len(nm.Suggestions) > 0 {
			titles := make([]string, 0, len(nm.Suggestions))
			for _, s := range nm.Suggestions {
				titles = append(titles, strconv.Quote(s.Title))
			}
			msg += " " + i18n.Tf(lang, i18n.KeyNoMatchHint, strings.Join(titles, i18n.T(lang, i18n.KeyListSeparator)))
		}
		return msg
	}

	switch {
	case errors.Is(err, domain.ErrUnknownCommand):
		return i18n.Tf(lang, i18n.KeyUnknownCommand, heard)
	case errors.Is(err, domain.ErrLowConfidence):
		return i18n.T(lang, i18n.KeyLowConfidence)
	case errors.Is(err, domain.ErrNoTranscript):
		return i18n.T(lang, i18n.KeyNoTranscript)
	case errors.Is(err, domain.ErrSpeechUnsupported):
		return i18n.T(lang, i18n.KeyErrNotSupported)
	case errors.Is(err, context.Canceled):
		return i18n.T(lang, i18n.KeyRecognitionStopped)
	case errors.Is(err, domain.ErrRecognizerBusy):
		return i18n.T(lang, i18n.KeyRecognizerBusy)
	default:
		return i18n.T(lang, i18n.KeyTaskFailed)
	}
}
