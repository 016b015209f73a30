package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vtodo/internal/testutil"
)

func TestInitStore_Execute(t *testing.T) {
	// Setup
	dataDir := filepath.Join(t.TempDir(), "vtodo")
	storeInit := &testutil.MockStoreInitializer{}
	uc := NewInitStore(storeInit)

	// Execute
	out, err := uc.Execute(context.Background(), InitStoreInput{DataDir: dataDir})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, dataDir, out.DataDir)
	assert.False(t, out.AlreadyInitialized)
	assert.False(t, out.Repaired)
	assert.True(t, storeInit.Initialized)
	assert.DirExists(t, filepath.Join(dataDir, "logs"))
}

func TestInitStore_Execute_Repair(t *testing.T) {
	storeInit := &testutil.MockStoreInitializer{Initialized: true, Repaired: true}
	uc := NewInitStore(storeInit)

	out, err := uc.Execute(context.Background(), InitStoreInput{DataDir: t.TempDir()})

	require.NoError(t, err)
	assert.True(t, out.AlreadyInitialized)
	assert.True(t, out.Repaired)
}

func TestInitStore_Execute_Error(t *testing.T) {
	storeInit := &testutil.MockStoreInitializer{InitErr: errors.New("read-only file system")}
	uc := NewInitStore(storeInit)

	_, err := uc.Execute(context.Background(), InitStoreInput{DataDir: t.TempDir()})

	assert.ErrorContains(t, err, "initialize task store: read-only file system")
}
