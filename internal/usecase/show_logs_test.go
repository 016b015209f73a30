package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/testutil"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestShowLogs_Execute_Global(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeLog(t, domain.GlobalLogPath(dataDir), "line1\nline2\nline3\n")
	uc := NewShowLogs(testutil.NewMockTaskRepository(), dataDir)

	// Execute
	out, err := uc.Execute(context.Background(), ShowLogsInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.GlobalLogPath(dataDir), out.LogPath)
	assert.Equal(t, "line1\nline2\nline3", out.Content)
}

func TestShowLogs_Execute_TaskTail(t *testing.T) {
	dataDir := t.TempDir()
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[3] = &domain.Task{ID: 3, Owner: "alice", Title: "Buy milk"}
	writeLog(t, domain.TaskLogPath(dataDir, 3), "a\nb\nc\nd\n")
	uc := NewShowLogs(repo, dataDir)

	out, err := uc.Execute(context.Background(), ShowLogsInput{Owner: "alice", TaskID: 3, Lines: 2})

	require.NoError(t, err)
	assert.Equal(t, "c\nd", out.Content)
}

func TestShowLogs_Execute_OtherOwner(t *testing.T) {
	dataDir := t.TempDir()
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[3] = &domain.Task{ID: 3, Owner: "bob", Title: "Fix bike"}
	writeLog(t, domain.TaskLogPath(dataDir, 3), "secret\n")
	uc := NewShowLogs(repo, dataDir)

	_, err := uc.Execute(context.Background(), ShowLogsInput{Owner: "alice", TaskID: 3})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestShowLogs_Execute_NoFile(t *testing.T) {
	uc := NewShowLogs(testutil.NewMockTaskRepository(), t.TempDir())

	_, err := uc.Execute(context.Background(), ShowLogsInput{})

	assert.ErrorIs(t, err, domain.ErrNoLogs)
}
