package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vtodo/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_DataConfigOnly(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
owner = "alice"

[voice]
language = "ur"
engine = "deepgram"
min_confidence = 0.6

[deepgram]
model = "nova-3"
api_key_env = "MY_DG_KEY"

[tasks]
store = "sqlite"
path = "/tmp/todos.db"

[log]
level = "debug"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Owner)
	assert.Equal(t, domain.LanguageUrdu, cfg.VoiceLanguage())
	assert.Equal(t, domain.EngineDeepgram, cfg.Voice.Engine)
	assert.InDelta(t, 0.6, cfg.Voice.MinConfidence, 1e-9)
	assert.Equal(t, "nova-3", cfg.Deepgram.Model)
	assert.Equal(t, domain.DefaultDeepgramEndpoint, cfg.Deepgram.Endpoint)
	assert.Equal(t, "MY_DG_KEY", cfg.Deepgram.APIKeyEnv)
	assert.Equal(t, domain.StoreSQLite, cfg.Tasks.Store)
	assert.Equal(t, "/tmp/todos.db", cfg.Tasks.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_DataOverridesGlobal(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
owner = "global-user"

[voice]
language = "ur"
min_confidence = 1

[log]
level = "warn"
`)
	writeConfig(t, dataDir, `
[voice]
language = "en"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "global-user", cfg.Owner)
	assert.Equal(t, "en", cfg.Voice.Language)
	assert.InDelta(t, 1.0, cfg.Voice.MinConfidence, 1e-9)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, domain.EngineScript, cfg.Voice.Engine)
}

func TestLoader_Load_Warnings(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[speech]
rate = 2
`)
	writeConfig(t, dataDir, `
log = "debug"

[voice]
language = "ur"
wake_word = "hey"
min_confidence = 1.5

[tasks]
encrypt = true
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"unknown section: speech",
		"[log] must be a table",
		"[voice] min_confidence must be between 0 and 1: 1.5",
		"unknown key in [tasks]: encrypt",
		"unknown key in [voice]: wake_word",
	}, cfg.Warnings)
	assert.Equal(t, "ur", cfg.Voice.Language)
	assert.Zero(t, cfg.Voice.MinConfidence)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[voice\nlanguage = ")

	_, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()

	assert.ErrorContains(t, err, domain.ConfigFileName)
}

func TestLoader_LoadGlobal(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir()).LoadGlobal()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no global dir", func(t *testing.T) {
		_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("reads only global", func(t *testing.T) {
		dataDir := t.TempDir()
		globalDir := t.TempDir()
		writeConfig(t, globalDir, "owner = \"g\"\n")
		writeConfig(t, dataDir, "owner = \"d\"\n")

		cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).LoadGlobal()

		require.NoError(t, err)
		assert.Equal(t, "g", cfg.Owner)
	})
}

func TestDefaultGlobalConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	assert.Equal(t, filepath.Join("/xdg/config", "vtodo"), defaultGlobalConfigDir())
}
