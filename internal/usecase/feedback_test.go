package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/vtodo/internal/domain"
)

func TestFeedbackMessage_Success(t *testing.T) {
	task := &domain.Task{ID: 1, Title: "Buy milk"}

	tests := []struct {
		name string
		out  *VoiceCommandOutput
		want string
	}{
		{
			name: "created",
			out:  &VoiceCommandOutput{Task: task, Command: domain.Command{Kind: domain.CommandCreate, Title: "Buy milk"}, Changed: true},
			want: `Added "Buy milk".`,
		},
		{
			name: "completed",
			out:  &VoiceCommandOutput{Task: task, Command: domain.Command{Kind: domain.CommandComplete, Title: "milk"}, Changed: true},
			want: `Marked "Buy milk" as done.`,
		},
		{
			name: "already completed",
			out:  &VoiceCommandOutput{Task: task, Command: domain.Command{Kind: domain.CommandComplete, Title: "milk"}},
			want: `"Buy milk" is already done.`,
		},
		{
			name: "high",
			out:  &VoiceCommandOutput{Task: task, Command: domain.Command{Kind: domain.CommandSetHighPriority}, Changed: true},
			want: `"Buy milk" is now high priority.`,
		},
		{
			name: "already high",
			out:  &VoiceCommandOutput{Task: task, Command: domain.Command{Kind: domain.CommandSetHighPriority}},
			want: `"Buy milk" is already high priority.`,
		},
		{
			name: "normal",
			out:  &VoiceCommandOutput{Task: task, Command: domain.Command{Kind: domain.CommandSetNormalPriority}, Changed: true},
			want: `"Buy milk" is back to normal priority.`,
		},
		{
			name: "dry run create uses the parsed title",
			out:  &VoiceCommandOutput{Command: domain.Command{Kind: domain.CommandCreate, Title: "Walk the dog"}, DryRun: true},
			want: `Add task: "Walk the dog" (dry run, nothing changed)`,
		},
		{
			name: "dry run update uses the resolved title",
			out:  &VoiceCommandOutput{Task: task, Command: domain.Command{Kind: domain.CommandComplete, Title: "milk"}, DryRun: true},
			want: `Complete task: "Buy milk" (dry run, nothing changed)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FeedbackMessage(domain.LanguageEnglish, "", tt.out, nil))
		})
	}
}

func TestFeedbackMessage_Urdu(t *testing.T) {
	out := &VoiceCommandOutput{
		Task:    &domain.Task{ID: 1, Title: "دودھ"},
		Command: domain.Command{Kind: domain.CommandComplete, Title: "دودھ"},
		Changed: true,
	}

	assert.Equal(t, `"دودھ" مکمل ہو گیا۔`, FeedbackMessage(domain.LanguageUrdu, "دودھ مکمل ہو گیا", out, nil))
}

func TestFeedbackMessage_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unknown command echoes the transcript",
			err:  fmt.Errorf("%w: %q", domain.ErrUnknownCommand, "hello"),
			want: `Sorry, I didn't understand "hello". Try "add todo: buy milk".`,
		},
		{
			name: "no match with suggestions",
			err: &NoMatchError{Fragment: "buy bred", Suggestions: []domain.TaskRef{
				{ID: 1, Title: "Buy bread"},
				{ID: 2, Title: "Buy butter"},
			}},
			want: `No task matches "buy bred". Did you mean "Buy bread", "Buy butter"?`,
		},
		{
			name: "no match without suggestions",
			err:  &NoMatchError{Fragment: "taxes"},
			want: `No task matches "taxes".`,
		},
		{
			name: "low confidence",
			err:  fmt.Errorf("%w: 0.30", domain.ErrLowConfidence),
			want: "I'm not sure I heard that right. Please say it again.",
		},
		{
			name: "no transcript",
			err:  domain.ErrNoTranscript,
			want: "Nothing was recognized. Please try again.",
		},
		{
			name: "recognition error",
			err:  domain.NewRecognitionError(domain.ErrorNoMicrophone, nil),
			want: "No microphone was found. Check that one is connected.",
		},
		{
			name: "wrapped recognition error",
			err:  fmt.Errorf("listen: %w", domain.NewRecognitionError(domain.ErrorNetwork, errors.New("dial tcp"))),
			want: "Speech recognition needs a network connection. Check it and try again.",
		},
		{
			name: "stopped",
			err:  context.Canceled,
			want: "Stopped listening.",
		},
		{
			name: "busy",
			err:  fmt.Errorf("listen: %w", domain.ErrRecognizerBusy),
			want: "Already listening. Wait for the current session to end, then try again.",
		},
		{
			name: "storage failure",
			err:  errors.New("save task: disk full"),
			want: "Could not update your tasks. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FeedbackMessage(domain.LanguageEnglish, "hello", nil, tt.err))
		})
	}
}

func TestFeedbackMessage_UrduNoMatchSeparator(t *testing.T) {
	err := &NoMatchError{Fragment: "رپورٹ", Suggestions: []domain.TaskRef{
		{ID: 1, Title: "رپورٹس"},
		{ID: 2, Title: "رپورٹر"},
	}}

	got := FeedbackMessage(domain.LanguageUrdu, "", nil, err)

	assert.Contains(t, got, `"رپورٹس"، "رپورٹر"`)
}

func TestFeedbackMessage_UrduBusy(t *testing.T) {
	got := FeedbackMessage(domain.LanguageUrdu, "", nil, domain.ErrRecognizerBusy)

	assert.Equal(t, "پہلے ہی سن رہے ہیں۔ موجودہ سیشن ختم ہونے دیں، پھر دوبارہ کوشش کریں۔", got)
}

func TestFeedbackMessage_NilOutput(t *testing.T) {
	assert.Equal(t, "Nothing was recognized. Please try again.", FeedbackMessage(domain.LanguageEnglish, "", nil, nil))
}
