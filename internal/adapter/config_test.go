package adapter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/pixgrid/internal/domain"
)

// chdir moves into an empty directory so no stray .env or config.yaml is read
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := chdir(t)
	t.Setenv("PIXABAY_API_KEY", "")
	t.Setenv("PIXGRID_API_KEY", "")

	cfg, err := LoadConfig(NewViper(filepath.Join(dir, "missing.yaml")))
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.API.PerPage)
	assert.True(t, cfg.API.SafeSearch)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 2, cfg.Search.BottomTolerance)
	assert.Equal(t, 4, cfg.UI.MaxColumns)
	assert.False(t, cfg.IsConfigured())
	assert.ErrorIs(t, cfg.Validate(), domain.ErrMissingAPIKey)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := chdir(t)
	t.Setenv("PIXABAY_API_KEY", "")
	path := filepath.Join(dir, "config.yaml")
	content := "api:\n  key: file-key\n  per_page: 50\n  order: latest\nsearch:\n  debounce: 150ms\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(NewViper(path))
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, 50, cfg.API.PerPage)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.True(t, cfg.API.SafeSearch, "unset keys keep their defaults")
	require.NoError(t, cfg.Validate())

	params := cfg.SearchDefaults()
	assert.Equal(t, 50, params.PerPage)
	assert.Equal(t, "latest", params.Order)
}

func TestLoadConfigEnvironment(t *testing.T) {
	dir := chdir(t)
	t.Setenv("PIXGRID_API_KEY", "")
	t.Setenv("PIXABAY_API_KEY", "env-key")
	t.Setenv("PIXGRID_API_SAFESEARCH", "false")

	cfg, err := LoadConfig(NewViper(filepath.Join(dir, "missing.yaml")))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.False(t, cfg.API.SafeSearch)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := chdir(t)
	t.Setenv("PIXGRID_API_KEY", "")
	t.Setenv("PIXABAY_API_KEY", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PIXABAY_API_KEY=dotenv-key\n"), 0644))
	// godotenv sets the variable for the process; restore it afterwards
	t.Cleanup(func() { os.Unsetenv("PIXABAY_API_KEY") })
	require.NoError(t, os.Unsetenv("PIXABAY_API_KEY"))

	cfg, err := LoadConfig(NewViper(filepath.Join(dir, "missing.yaml")))
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.API.Key)
}

func TestValidatePerPage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Key = "k"
	cfg.API.PerPage = 500
	assert.Error(t, cfg.Validate())
}

func TestSaveAPIKey(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  max_columns: 3\n"), 0644))

	v := NewViper(path)
	_, err := LoadConfig(v)
	require.NoError(t, err)

	written, err := SaveAPIKey(v, "saved-key")
	require.NoError(t, err)
	assert.Equal(t, path, written)

	t.Setenv("PIXABAY_API_KEY", "")
	cfg, err := LoadConfig(NewViper(path))
	require.NoError(t, err)
	assert.Equal(t, "saved-key", cfg.API.Key)
	assert.Equal(t, 3, cfg.UI.MaxColumns)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("nonsense"))
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "INFO")
	logger.Debug("hidden")
	logger.Info("search", "query", "cat")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"query":"cat"`)
}

func TestSetupLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "pixgrid.log")

	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
