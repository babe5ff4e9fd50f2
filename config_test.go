package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vennekilde/go-ordmap/ordmap"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "amqp://localhost:5672", cfg.AMQP.Addr)
	assert.Equal(t, "ordmap.entries", cfg.AMQP.Queue)
	assert.Equal(t, 15*time.Second, cfg.AMQP.SendTimeout)
	assert.Equal(t, 3*time.Second, cfg.AMQP.DrainTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "doubling", cfg.Map.KeyGrowth)
	assert.Equal(t, 10, cfg.Map.GrowthIncrement)
	assert.Zero(t, cfg.Map.Budget)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("AMQP_QUEUE", "entries.test")
	t.Setenv("MAP_KEY_GROWTH", "fixed")
	t.Setenv("MAP_BUDGET", "512")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "entries.test", cfg.AMQP.Queue)
	assert.Equal(t, "fixed", cfg.Map.KeyGrowth)
	assert.Equal(t, 512, cfg.Map.Budget)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
amqp:
  addr: amqps://broker:5671
  queue: custom.queue
map:
  key_growth: fixed
  growth_increment: 4
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "amqps://broker:5671", cfg.AMQP.Addr)
	assert.Equal(t, "custom.queue", cfg.AMQP.Queue)
	assert.Equal(t, "fixed", cfg.Map.KeyGrowth)
	assert.Equal(t, 4, cfg.Map.GrowthIncrement)
	assert.Equal(t, "admin", cfg.AMQP.User)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMapOptions(t *testing.T) {
	logger := zap.NewNop()

	t.Run("budget", func(t *testing.T) {
		opts, err := MapConfig{KeyGrowth: "fixed", GrowthIncrement: 10, Budget: ordmap.EntrySize + ordmap.InitialKeyCapacity}.MapOptions(logger)
		require.NoError(t, err)
		m := ordmap.New(opts...)
		require.NoError(t, m.Put("a", 1))
		require.ErrorIs(t, m.Put("b", 2), ordmap.ErrAllocation)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, c := range []MapConfig{
			{KeyGrowth: "tripling"},
			{KeyGrowth: "fixed", GrowthIncrement: 0},
			{KeyGrowth: "doubling", Budget: -1},
		} {
			_, err := c.MapOptions(logger)
			assert.Error(t, err, "%+v", c)
		}
	})
}

func TestSetGlobalLogger(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())

	require.NoError(t, SetGlobalLogger("debug", "capital", "json"))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, SetGlobalLogger("warn", "lowercase", "console"))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	require.Error(t, SetGlobalLogger("loud", "capital", "console"))
}
