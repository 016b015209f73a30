package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/testutil"
	"github.com/runoshun/vtodo/internal/tui/listen"
	"github.com/runoshun/vtodo/internal/usecase"
)

// =============================================================================
// Say Command Tests
// =============================================================================

func TestNewSayCommand_Create(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	container := newTestContainer(t, repo)

	// Execute
	out, _, err := runCommand(newSayCommand(container), "add", "todo:", "Buy", "milk")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Added \"Buy milk\".\n", out)
	require.Contains(t, repo.Tasks, 1)
	assert.Equal(t, "Buy milk", repo.Tasks[1].Title)
	assert.Equal(t, "alice", repo.Tasks[1].Owner)
}

func TestNewSayCommand_UrduRoman(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	seedCLITasks(repo)
	container := newTestContainer(t, repo)

	out, _, err := runCommand(newSayCommand(container), "--lang", "ur", "file taxes mukammal ho gaya")

	require.NoError(t, err)
	assert.Contains(t, out, "File taxes")
	assert.True(t, repo.Tasks[2].Completed)
}

func TestNewSayCommand_DryRun(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	seedCLITasks(repo)
	container := newTestContainer(t, repo)

	out, _, err := runCommand(newSayCommand(container), "-n", "mark buy milk as done")

	require.NoError(t, err)
	assert.Contains(t, out, "dry run")
	assert.False(t, repo.Tasks[1].Completed)
}

func TestNewSayCommand_NoMatch(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	seedCLITasks(repo)
	container := newTestContainer(t, repo)

	// Execute
	out, errOut, err := runCommand(newSayCommand(container), "mark walk the dog as done")

	// Assert
	var reported *ReportedError
	require.ErrorAs(t, err, &reported)
	assert.ErrorIs(t, err, domain.ErrNoMatchingTask)
	assert.Empty(t, out)
	assert.Contains(t, errOut, `No task matches "walk the dog".`)
}

func TestNewSayCommand_Unknown(t *testing.T) {
	container := newTestContainer(t, testutil.NewMockTaskRepository())

	_, errOut, err := runCommand(newSayCommand(container), "play some music")

	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
	assert.Contains(t, errOut, "didn't understand")
}

func TestNewSayCommand_InvalidLanguage(t *testing.T) {
	container := newTestContainer(t, testutil.NewMockTaskRepository())

	_, _, err := runCommand(newSayCommand(container), "--lang", "fr", "add todo: pain")

	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
}

func TestNewSayCommand_NotInitialized(t *testing.T) {
	repo := &testutil.MockTaskRepositoryWithListError{
		MockTaskRepository: testutil.NewMockTaskRepository(),
		ListErr:            domain.ErrNotInitialized,
	}
	container := newTestContainer(t, repo.MockTaskRepository)
	container.Tasks = repo

	_, errOut, err := runCommand(newSayCommand(container), "mark buy milk as done")

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
	var reported *ReportedError
	assert.False(t, errors.As(err, &reported), "not-initialized errors are printed by main")
	assert.Empty(t, errOut)
}

// =============================================================================
// Listen Command Tests
// =============================================================================

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewListenCommand_Script(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	container := newTestContainer(t, repo)
	script := writeScript(t, `events:
  - text: "add todo"
    confidence: 0.4
  - text: "add todo: Buy milk"
    confidence: 0.93
    final: true
`)

	// Execute
	out, errOut, err := runCommand(newListenCommand(container), "--script", script)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, errOut, "Listening...")
	assert.Contains(t, errOut, "  ... add todo\n")
	assert.Equal(t, "Heard: add todo: Buy milk\nAdded \"Buy milk\".\n", out)
	require.Contains(t, repo.Tasks, 1)
	assert.Equal(t, "Buy milk", repo.Tasks[1].Title)
}

func TestNewListenCommand_RecognitionError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	container := newTestContainer(t, repo)
	script := writeScript(t, `events:
  - error: no-speech
`)

	out, errOut, err := runCommand(newListenCommand(container), "--script", script)

	var recErr *domain.RecognitionError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, domain.ErrorNoSpeech, recErr.Code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "I didn't hear anything.")
	assert.Empty(t, repo.Tasks)
}

func TestNewListenCommand_MissingScript(t *testing.T) {
	container := newTestContainer(t, testutil.NewMockTaskRepository())

	_, _, err := runCommand(newListenCommand(container))

	assert.ErrorContains(t, err, "--script is required")
}

func TestNewListenCommand_UnknownEngine(t *testing.T) {
	container := newTestContainer(t, testutil.NewMockTaskRepository())

	_, _, err := runCommand(newListenCommand(container), "--engine", "whisper")

	assert.ErrorIs(t, err, domain.ErrUnknownEngine)
}

func TestNewListenCommand_TUI(t *testing.T) {
	// Save original function and restore after test
	originalFunc := runListenTUIFunc
	defer func() {
		runListenTUIFunc = originalFunc
	}()

	var (
		gotLang domain.Language
		gotOut  *usecase.ListenOutput
		interim []string
	)
	runListenTUIFunc = func(ctx context.Context, lang domain.Language, run listen.RunFunc) error {
		gotLang = lang
		out, err := run(ctx, func(tr domain.Transcript) { interim = append(interim, tr.Text) })
		gotOut = out
		return err
	}

	repo := testutil.NewMockTaskRepository()
	container := newTestContainer(t, repo)
	script := writeScript(t, `events:
  - text: "naya kaam"
    confidence: 0.5
  - text: "naya kaam: doodh khareedein"
    confidence: 0.9
    final: true
`)

	_, _, err := runCommand(newListenCommand(container), "--tui", "--lang", "ur", "--script", script)

	require.NoError(t, err)
	assert.Equal(t, domain.LanguageUrdu, gotLang)
	assert.Equal(t, []string{"naya kaam"}, interim)
	require.NotNil(t, gotOut)
	require.NotNil(t, gotOut.Result)
	assert.Equal(t, "doodh khareedein", gotOut.Result.Task.Title)
	assert.Equal(t, "doodh khareedein", repo.Tasks[1].Title)
}
