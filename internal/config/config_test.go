package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pokedeck/internal/config"
)

func TestDefault(t *testing.T) {
	t.Setenv(config.EnvHome, "/tmp/pokedeck-home")

	cfg := config.Default()
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout, "no timeout by default")
	assert.Equal(t, 7, cfg.Deck.BatchSize)
	assert.Equal(t, 898, cfg.Deck.MaxID)
	assert.Equal(t, []string{"unknown", "shadow"}, cfg.Deck.ExcludedTypes)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, filepath.Join("/tmp/pokedeck-home", "logs", "pokedeck.log"), cfg.Logging.File)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"zero batch", func(c *config.Config) { c.Deck.BatchSize = 0 }, config.ErrInvalidBatchSize},
		{"max below batch", func(c *config.Config) { c.Deck.MaxID = 3 }, config.ErrInvalidMaxID},
		{"bad format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }, config.ErrInvalidOutputFormat},
		{"negative timeout", func(c *config.Config) { c.API.Timeout = -time.Second }, config.ErrNegativeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	t.Run("bad log level", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Level = "shouty"
		require.Error(t, cfg.Validate())
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvAPIBaseURL:   "http://localhost:9999",
		config.EnvAPITimeout:   "3s",
		config.EnvBatchSize:    "5",
		config.EnvMaxID:        "151",
		config.EnvOutputFormat: "json",
		config.EnvLogLevel:     "debug",
		config.EnvLogFile:      "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Default()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5, cfg.Deck.BatchSize)
	assert.Equal(t, 151, cfg.Deck.MaxID)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.File, "empty POKEDECK_LOG_FILE switches to stderr")
}

func TestApplyEnv_IgnoresGarbage(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == config.EnvBatchSize || k == config.EnvAPITimeout {
			return "many", true
		}
		return "", false
	}

	cfg := config.Default()
	cfg.ApplyEnv(lookup)
	assert.Equal(t, 7, cfg.Deck.BatchSize)
	assert.Zero(t, cfg.API.Timeout)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.API.Timeout = 10 * time.Second
	cfg.Deck.ExcludedTypes = []string{"shadow"}
	require.NoError(t, cfg.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "timeout: 10s")

	loaded := config.Default()
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, 10*time.Second, loaded.API.Timeout)
	assert.Equal(t, []string{"shadow"}, loaded.Deck.ExcludedTypes)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deck: [not, a, map"), 0600))

	require.Error(t, config.Default().LoadFile(path))
	require.Error(t, config.Default().LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestNew_ReadsConfigFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvMaxID, "200")
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
deck:
  batch_size: 3
  max_id: 151
`), 0600))

	cfg := config.New()
	assert.Equal(t, 3, cfg.Deck.BatchSize)
	assert.Equal(t, 200, cfg.Deck.MaxID, "env beats file")
}

func TestGetAndSet(t *testing.T) {
	cfg := config.Default()

	v, err := cfg.Get("deck.batch_size")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	v, err = cfg.Get("deck.excluded_types")
	require.NoError(t, err)
	assert.Equal(t, "[unknown, shadow]", v)

	require.NoError(t, cfg.Set("deck.batch_size", "4"))
	assert.Equal(t, 4, cfg.Deck.BatchSize)

	require.NoError(t, cfg.Set("api.timeout", "15s"))
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)

	require.NoError(t, cfg.Set("api.base_url", "http://localhost:8080/api/v2"))
	assert.Equal(t, "http://localhost:8080/api/v2", cfg.API.BaseURL)

	require.NoError(t, cfg.Set("deck.excluded_types", "[shadow, unknown, stellar]"))
	assert.Equal(t, []string{"shadow", "unknown", "stellar"}, cfg.Deck.ExcludedTypes)

	_, err = cfg.Get("deck.nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("plugins.x", "1"), config.ErrUnknownKey)
	require.Error(t, cfg.Set("deck.batch_size", "seven"))

	keys, err := cfg.Keys()
	require.NoError(t, err)
	assert.Contains(t, keys, "logging.level")
	assert.Contains(t, keys, "output.default_format")
}
