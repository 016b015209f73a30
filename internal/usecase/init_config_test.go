package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vtodo/internal/domain"
	"github.com/runoshun/vtodo/internal/testutil"
)

func TestInitConfig_Execute(t *testing.T) {
	t.Run("data dir config with defaults", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		uc := NewInitConfig(manager)

		out, err := uc.Execute(context.Background(), InitConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, manager.DataConfigInfo.Path, out.Path)
		assert.True(t, manager.InitDataCalled)
		assert.False(t, manager.InitGlobalCalled)
		assert.Equal(t, domain.NewDefaultConfig(), manager.InitConfig)
	})

	t.Run("global config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		cfg := domain.NewDefaultConfig()
		cfg.Voice.Language = "ur"
		uc := NewInitConfig(manager)

		out, err := uc.Execute(context.Background(), InitConfigInput{Global: true, Config: cfg})

		require.NoError(t, err)
		assert.Equal(t, manager.GlobalConfigInfo.Path, out.Path)
		assert.True(t, manager.InitGlobalCalled)
		assert.Same(t, cfg, manager.InitConfig)
	})

	t.Run("existing file", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitDataErr = domain.ErrConfigExists
		uc := NewInitConfig(manager)

		_, err := uc.Execute(context.Background(), InitConfigInput{})

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}
