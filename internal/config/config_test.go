package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultStorePath, cfg.Store.Path)
	assert.Equal(t, DefaultServerName, cfg.Server.Name)
	assert.Empty(t, cfg.History.Path)
	assert.Empty(t, cfg.Metrics.Listen)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestLoad_MissingFileSkipsDotEnv(t *testing.T) {
	const key = "TASKTIMER_DOTENV_MARKER"
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte(key+"=loaded\n"), 0o600))
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	_, err := Load(DefaultConfigPath)
	require.NoError(t, err)
	_, set := os.LookupEnv(key)
	assert.False(t, set, ".env must not be read without a config file")

	require.NoError(t, os.WriteFile(DefaultConfigPath, []byte("store:\n  path: ${"+key+"}.json\n"), 0o600))
	cfg, err := Load(DefaultConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "loaded.json", cfg.Store.Path)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesAndExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKTIMER_TEST_DIR", dir)
	path := filepath.Join(dir, "tasktimer.yaml")
	content := `
store:
  path: ${TASKTIMER_TEST_DIR}/timers.json
history:
  path: ${TASKTIMER_TEST_DIR}/history.db
metrics:
  listen: "127.0.0.1:9464"
logging:
  level: DEBUG
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "timers.json"), cfg.Store.Path)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.History.Path)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Listen)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, DefaultServerName, cfg.Server.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unterminated"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, terrors.IsCategory(err, terrors.CategoryConfig))
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasktimer.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultStorePath, cfg.Store.Path)
	assert.Equal(t, "timer-history.db", cfg.History.Path)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, terrors.IsCategory(err, terrors.CategoryValidation))

	require.NoError(t, Init(path, true))
}

func TestNormalizeLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":        LogLevelInfo,
		"debug":   LogLevelDebug,
		" WARN ":  LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"verbose": LogLevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeLogLevel(raw), "raw=%q", raw)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}.NewLogger(&buf, false)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger = LoggingConfig{Level: LogLevelError, Format: LogFormatText}.NewLogger(&buf, true)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}
