package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kamisado.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, 200, cfg.DrawThreshold)
	require.Equal(t, 1000, cfg.CheckpointInterval)
	require.Equal(t, "greedy", cfg.Policy)
}

func TestLoad(t *testing.T) {
	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
learning_rate: 0.2
policy: softmax
autosave_interval: 30s
curriculum:
  - {until: 10, depth: 1}
  - {depth: 2}
`)
		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 0.2, cfg.LearningRate)
		require.Equal(t, 0.9, cfg.Discount, "Unset fields keep defaults")
		require.Equal(t, "softmax", cfg.Policy)
		require.Equal(t, 30*time.Second, cfg.AutosaveInterval)
		require.Equal(t, []Stage{{Until: 10, Depth: 1}, {Depth: 2}}, cfg.Curriculum)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv("KAMISADO_STORE", "memory://")
		t.Setenv("KAMISADO_POLICY", "softmax")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load(writeConfig(t, "store: other.db\n"))

		require.NoError(t, err)
		require.Equal(t, "memory://", cfg.Store)
		require.Equal(t, "softmax", cfg.Policy)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		require.Equal(t, Default().RecordName, cfg.RecordName)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "learning_rate: [oops"))

		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "discount: 1.5\n"))

		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"exploration floor above start", func(c *Config) { c.ExplorationFloor = 0.5; c.ExplorationStart = 0.2 }},
		{"decay", func(c *Config) { c.ExplorationDecay = 1.2 }},
		{"temperature", func(c *Config) { c.Temperature = 0 }},
		{"draw threshold", func(c *Config) { c.DrawThreshold = 0 }},
		{"policy", func(c *Config) { c.Policy = "random" }},
		{"store", func(c *Config) { c.Store = "" }},
		{"empty curriculum", func(c *Config) { c.Curriculum = nil }},
		{"curriculum order", func(c *Config) { c.Curriculum = []Stage{{Until: 5, Depth: 1}, {Until: 5, Depth: 2}, {Depth: 3}} }},
		{"open last stage", func(c *Config) { c.Curriculum = []Stage{{Until: 5, Depth: 1}} }},
		{"stage depth", func(c *Config) { c.Curriculum = []Stage{{Depth: 0}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestDepthAt(t *testing.T) {
	cfg := Default()

	require.Equal(t, 1, cfg.DepthAt(0))
	require.Equal(t, 1, cfg.DepthAt(2999))
	require.Equal(t, 2, cfg.DepthAt(3000))
	require.Equal(t, 2, cfg.DepthAt(7999))
	require.Equal(t, 3, cfg.DepthAt(8000))
	require.Equal(t, 3, cfg.DepthAt(1_000_000))
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount(" 250\n")
	require.NoError(t, err)
	require.Equal(t, 250, n)

	for _, input := range []string{"", "abc", "0", "-3", "1.5", "99999999999"} {
		_, err := ParseCount(input)
		require.ErrorIs(t, err, ErrInvalid, "Input %q should be rejected", input)
	}
}
