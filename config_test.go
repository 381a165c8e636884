package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLecternEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LECTERN_EXPORT_DIR", "LECTERN_CONFIRMATIONS", "LECTERN_UNDO_DEPTH", "LECTERN_LOG_FILE", "LECTERN_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearLecternEnv(t)

	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.True(t, config.Confirmations)
	assert.Equal(t, defaultUndoDepth, config.UndoDepth)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.ExportDirectory)
	assert.Empty(t, config.LogFile)
}

func TestLoadConfigYAML(t *testing.T) {
	clearLecternEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "lectern.yaml")
	data := "export_dir: " + filepath.Join(dir, "out") + "\nconfirmations: false\nundo_depth: 7\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	config, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out"), config.ExportDirectory)
	assert.False(t, config.Confirmations)
	assert.Equal(t, 7, config.UndoDepth)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigBadYAML(t *testing.T) {
	clearLecternEnv(t)
	path := filepath.Join(t.TempDir(), "lectern.yaml")
	require.NoError(t, os.WriteFile(path, []byte("undo_depth: [1, 2"), 0644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lectern.yaml")
	require.NoError(t, os.WriteFile(path, []byte("undo_depth: 7\n"), 0644))

	t.Setenv("HOME", dir)
	t.Setenv("LECTERN_EXPORT_DIR", "~/slides")
	t.Setenv("LECTERN_CONFIRMATIONS", "false")
	t.Setenv("LECTERN_UNDO_DEPTH", "3")
	t.Setenv("LECTERN_LOG_FILE", "")
	t.Setenv("LECTERN_LOG_LEVEL", "warn")

	config, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slides"), config.ExportDirectory)
	assert.False(t, config.Confirmations)
	assert.Equal(t, 3, config.UndoDepth)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoadConfigIgnoresBadEnvValues(t *testing.T) {
	clearLecternEnv(t)
	t.Setenv("LECTERN_CONFIRMATIONS", "perhaps")
	t.Setenv("LECTERN_UNDO_DEPTH", "-5")

	config, err := loadConfig("")
	require.NoError(t, err)
	assert.True(t, config.Confirmations)
	assert.Equal(t, defaultUndoDepth, config.UndoDepth)
}

func TestConfigLevel(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"debug", "DEBUG"},
		{"WARN", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"chatty", "INFO"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			config := &Config{LogLevel: tt.value}
			assert.Equal(t, tt.want, config.level().String())
		})
	}
}

func TestOpenLog(t *testing.T) {
	config := defaultConfig()
	logger, closer, err := config.openLog()
	require.NoError(t, err)
	logger.Info("discarded")
	require.NoError(t, closer.Close())

	config.LogFile = filepath.Join(t.TempDir(), "lectern.log")
	logger, closer, err = config.openLog()
	require.NoError(t, err)
	logger.Info("written", "page", "page-1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(config.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page=page-1")
}

func TestGetSavePath(t *testing.T) {
	config := &Config{}
	path, err := config.GetSavePath("a.png")
	require.NoError(t, err)
	assert.Equal(t, "a.png", path)

	config.ExportDirectory = filepath.Join(t.TempDir(), "exports")
	path, err = config.GetSavePath("a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(config.ExportDirectory, "a.png"), path)
	assert.DirExists(t, config.ExportDirectory)
}

func TestGetSavePathUncreatableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	config := &Config{ExportDirectory: filepath.Join(blocker, "exports")}
	_, err := config.GetSavePath("a.png")
	assert.ErrorContains(t, err, "create export dir")
}
