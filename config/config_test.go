package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 12, cfg.Engine.ShardCount)
	assert.Equal(t, 5, cfg.Engine.PageSize)
	assert.Equal(t, "and with", cfg.Corpus.StopWords)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
engine:
  shard_count: 4
  parallel: true
corpus:
  stop_words: "in the"
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Engine.ShardCount)
	assert.True(t, cfg.Engine.Parallel)
	assert.Equal(t, "in the", cfg.Corpus.StopWords)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5, cfg.Engine.PageSize)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SEARCHD_LOG__LEVEL", "warn")
	t.Setenv("SEARCHD_ENGINE__SHARD_COUNT", "3")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Engine.ShardCount)
}

func TestOverridesBeatEverything(t *testing.T) {
	t.Setenv("SEARCHD_LOG__LEVEL", "warn")

	cfg, err := Load("", map[string]interface{}{"log.level": "error"})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"Zero shard count", map[string]interface{}{"engine.shard_count": 0}},
		{"Bad log level", map[string]interface{}{"log.level": "loud"}},
		{"Bad log format", map[string]interface{}{"log.format": "xml"}},
		{"Zero page size", map[string]interface{}{"engine.page_size": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", tt.overrides)
			require.Error(t, err)
			var details ValidationErrors
			assert.ErrorAs(t, err, &details)
			assert.NotEmpty(t, details)
		})
	}
}

func TestUnsupportedConfigFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := Load(path, nil)
	assert.ErrorContains(t, err, "unsupported config format")
}
