package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/testutil"
)

func newTestListen(repo *testutil.MockTaskRepository, rec domain.SpeechRecognizer, logger domain.Logger) *Listen {
	return NewListen(rec, NewVoiceCommand(repo, newTestClock(), logger, 0.5), logger)
}

func TestListen_Execute(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	rec := &testutil.MockRecognizer{Results: []domain.Transcript{
		{Text: "add", Confidence: 0.4},
		{Text: "add todo", Confidence: 0.6},
		{Text: "add todo: Buy milk", Confidence: 0.9, IsFinal: true},
	}}
	uc := newTestListen(repo, rec, nil)

	var (
		mu      sync.Mutex
		interim []string
	)

	// Execute
	out, err := uc.Execute(context.Background(), ListenInput{
		Owner:    "alice",
		Language: domain.LanguageEnglish,
		OnInterim: func(t domain.Transcript) {
			mu.Lock()
			interim = append(interim, t.Text)
			mu.Unlock()
		},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "add todo: Buy milk", out.Transcript.Text)
	require.NotNil(t, out.Result)
	assert.Equal(t, "Buy milk", out.Result.Task.Title)
	assert.Equal(t, domain.LanguageEnglish, rec.Language)
	assert.Equal(t, []string{"add", "add todo"}, interim)
	assert.Len(t, repo.Tasks, 1)
}

func TestListen_Execute_Urdu(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	rec := &testutil.MockRecognizer{Results: []domain.Transcript{
		{Text: "نیا کام: دودھ خریدیں", Confidence: 0.8, IsFinal: true},
	}}
	uc := newTestListen(repo, rec, nil)

	out, err := uc.Execute(context.Background(), ListenInput{Owner: "alice", Language: domain.LanguageUrdu})

	require.NoError(t, err)
	assert.Equal(t, domain.LanguageUrdu, rec.Language)
	assert.Equal(t, "دودھ خریدیں", out.Result.Task.Title)
}

func TestListen_Execute_CommandErrorKeepsTranscript(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	rec := &testutil.MockRecognizer{Results: []domain.Transcript{
		{Text: "what's the weather", Confidence: 0.9, IsFinal: true},
	}}
	uc := newTestListen(repo, rec, nil)

	out, err := uc.Execute(context.Background(), ListenInput{Owner: "alice", Language: domain.LanguageEnglish})

	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
	require.NotNil(t, out)
	assert.Nil(t, out.Result)
	assert.Equal(t, "what's the weather", out.Transcript.Text)
}

func TestListen_Execute_RecognitionError(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	rec := &testutil.MockRecognizer{
		Results: []domain.Transcript{{Text: "add", Confidence: 0.3}},
		Err:     domain.NewRecognitionError(domain.ErrorNoSpeech, nil),
	}
	uc := newTestListen(repo, rec, nil)

	// Execute
	out, err := uc.Execute(context.Background(), ListenInput{Owner: "alice", Language: domain.LanguageEnglish})

	// Assert
	assert.Nil(t, out)
	re, ok := domain.AsRecognitionError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrorNoSpeech, re.Code)
	assert.Empty(t, repo.Tasks)
}

func TestListen_Execute_ErrorAfterFinal(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	logger := &testutil.MockLogger{}
	rec := &testutil.MockRecognizer{
		Results: []domain.Transcript{{Text: "add todo: Buy milk", Confidence: 0.9, IsFinal: true}},
		Err:     domain.NewRecognitionError(domain.ErrorNetwork, errors.New("connection reset")),
	}
	uc := newTestListen(repo, rec, logger)

	// Execute
	out, err := uc.Execute(context.Background(), ListenInput{Owner: "alice", Language: domain.LanguageEnglish})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", out.Result.Task.Title)

	var warned bool
	for _, e := range logger.Snapshot() {
		if e.Level == "WARN" && e.Category == "speech" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestListen_Execute_NoFinal(t *testing.T) {
	rec := &testutil.MockRecognizer{Results: []domain.Transcript{{Text: "add", Confidence: 0.3}}}
	uc := newTestListen(testutil.NewMockTaskRepository(), rec, nil)

	out, err := uc.Execute(context.Background(), ListenInput{Owner: "alice", Language: domain.LanguageEnglish})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNoTranscript)
}

func TestListen_Execute_Unsupported(t *testing.T) {
	rec := &testutil.MockRecognizer{Unsupported: true}
	uc := newTestListen(testutil.NewMockTaskRepository(), rec, nil)

	_, err := uc.Execute(context.Background(), ListenInput{Owner: "alice", Language: domain.LanguageEnglish})

	assert.ErrorIs(t, err, domain.ErrSpeechUnsupported)
}

func TestListen_Execute_Busy(t *testing.T) {
	rec := &testutil.MockRecognizer{Busy: true}
	uc := newTestListen(testutil.NewMockTaskRepository(), rec, nil)

	_, err := uc.Execute(context.Background(), ListenInput{Owner: "alice", Language: domain.LanguageEnglish})

	assert.ErrorIs(t, err, domain.ErrRecognizerBusy)
}

func TestListen_Execute_InvalidLanguage(t *testing.T) {
	rec := &testutil.MockRecognizer{}
	uc := newTestListen(testutil.NewMockTaskRepository(), rec, nil)

	_, err := uc.Execute(context.Background(), ListenInput{Owner: "alice", Language: "de"})

	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
	assert.Empty(t, rec.Language, "no session is started")
}

func TestListen_Execute_Cancelled(t *testing.T) {
	// Setup
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &testutil.MockRecognizer{}
	uc := newTestListen(testutil.NewMockTaskRepository(), rec, nil)

	// Execute
	out, err := uc.Execute(ctx, ListenInput{Owner: "alice", Language: domain.LanguageEnglish})

	// Assert
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
}
