package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vtodo/internal/app"
	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/infra/jsonstore"
	"github.com/runoshun/vtodo/internal/testutil"
)

// =============================================================================
// Prune Command Tests
// =============================================================================

func TestNewPruneCommand_Yes(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	seedCLITasks(repo)
	container := newTestContainer(t, repo)

	// Execute
	out, _, err := runCommand(newPruneCommand(container), "-y")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "  - #3 Old chore")
	assert.Contains(t, out, "Deleted 1 completed task(s).")
	assert.NotContains(t, repo.Tasks, 3)
	assert.Contains(t, repo.Tasks, 1)
}

func TestNewPruneCommand_Confirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		deleted bool
	}{
		{"yes", "y\n", true},
		{"no", "n\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockTaskRepository()
			seedCLITasks(repo)
			container := newTestContainer(t, repo)
			cmd := newPruneCommand(container)
			cmd.SetIn(strings.NewReader(tt.input))

			out, _, err := runCommand(cmd)

			require.NoError(t, err)
			assert.Contains(t, out, "Are you sure")
			if tt.deleted {
				assert.NotContains(t, repo.Tasks, 3)
			} else {
				assert.Contains(t, out, "Aborted.")
				assert.Contains(t, repo.Tasks, 3)
			}
		})
	}
}

func TestNewPruneCommand_DryRunAndNothing(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	seedCLITasks(repo)
	container := newTestContainer(t, repo)

	out, _, err := runCommand(newPruneCommand(container), "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: no changes made.")
	assert.Contains(t, repo.Tasks, 3)

	t.Setenv(app.EnvOwner, "carol")
	out, _, err = runCommand(newPruneCommand(container))
	require.NoError(t, err)
	assert.Equal(t, "Nothing to prune.\n", out)
}

// =============================================================================
// Logs Command Tests
// =============================================================================

func TestNewLogsCommand(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	seedCLITasks(repo)
	container := newTestContainer(t, repo)
	dataDir := container.Config.DataDir
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "logs"), 0o750))
	require.NoError(t, os.WriteFile(domain.GlobalLogPath(dataDir), []byte("one\ntwo\nthree\n"), 0o600))
	require.NoError(t, os.WriteFile(domain.TaskLogPath(dataDir, 1), []byte("created\n"), 0o600))

	// Execute / Assert
	out, _, err := runCommand(newLogsCommand(container), "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "two\nthree\n", out)

	out, _, err = runCommand(newLogsCommand(container), "1")
	require.NoError(t, err)
	assert.Equal(t, "created\n", out)

	_, _, err = runCommand(newLogsCommand(container), "4")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestNewLogsCommand_NoLogs(t *testing.T) {
	container := newTestContainer(t, testutil.NewMockTaskRepository())

	_, _, err := runCommand(newLogsCommand(container))

	assert.ErrorIs(t, err, domain.ErrNoLogs)
}

// =============================================================================
// Migrate Command Tests
// =============================================================================

func TestNewMigrateCommand(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	seedCLITasks(repo)
	container := newTestContainer(t, repo)
	dest := filepath.Join(t.TempDir(), "export.json")

	// Execute
	out, _, err := runCommand(newMigrateCommand(container), "--to", "json", "--path", dest)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 4 task(s) to "+dest)

	store := jsonstore.New(dest)
	tasks, err := store.List(domain.TaskFilter{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}

func TestNewMigrateCommand_DryRun(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	seedCLITasks(repo)
	container := newTestContainer(t, repo)
	dest := filepath.Join(t.TempDir(), "export.db")

	out, _, err := runCommand(newMigrateCommand(container), "--to", "sqlite", "--path", dest, "-n")

	require.NoError(t, err)
	assert.Contains(t, out, "Would migrate 4 task(s)")
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewMigrateCommand_Errors(t *testing.T) {
	container := newTestContainer(t, testutil.NewMockTaskRepository())
	container.Config.StorePath = filepath.Join(container.Config.DataDir, domain.JSONStoreName)

	_, _, err := runCommand(newMigrateCommand(container), "--to", "json")
	assert.ErrorIs(t, err, domain.ErrSameStore)

	_, _, err = runCommand(newMigrateCommand(container), "--to", "csv")
	assert.ErrorIs(t, err, domain.ErrUnknownStore)

	_, _, err = runCommand(newMigrateCommand(container))
	assert.Error(t, err, "--to is required")
}

func TestNewMigrateCommand_Empty(t *testing.T) {
	container := newTestContainer(t, testutil.NewMockTaskRepository())

	out, _, err := runCommand(newMigrateCommand(container), "--to", "sqlite", "--path", filepath.Join(t.TempDir(), "x.db"))

	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found")
}
