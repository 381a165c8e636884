package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ExportDirectory string `yaml:"export_dir"`
	Confirmations   bool   `yaml:"confirmations"`
	UndoDepth       int    `yaml:"undo_depth"`
	LogFile         string `yaml:"log_file"`
	LogLevel        string `yaml:"log_level"`
}

func defaultConfig() *Config {
	return &Config{
		Confirmations: true,
		UndoDepth:     defaultUndoDepth,
		LogLevel:      "info",
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".lectern.yaml")
}

// loadConfig reads the YAML file at path (a missing file is not an error),
// then applies LECTERN_* overrides from the environment and a local .env.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	if v := os.Getenv("LECTERN_EXPORT_DIR"); v != "" {
		config.ExportDirectory = v
	}
	if v := os.Getenv("LECTERN_CONFIRMATIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Confirmations = b
		}
	}
	if v := os.Getenv("LECTERN_UNDO_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.UndoDepth = n
		}
	}
	if v := os.Getenv("LECTERN_LOG_FILE"); v != "" {
		config.LogFile = v
	}
	if v := os.Getenv("LECTERN_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}

	if config.UndoDepth <= 0 {
		config.UndoDepth = defaultUndoDepth
	}
	config.ExportDirectory = expandPath(config.ExportDirectory)
	config.LogFile = expandPath(config.LogFile)
	return config, nil
}

func expandPath(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places filename in the export directory, creating it if needed.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.ExportDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDirectory, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return filepath.Join(c.ExportDirectory, filename), nil
}

func (c *Config) level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// openLog returns a text logger writing to the configured log file. Without a
// log file everything is discarded; stdout belongs to the terminal UI.
func (c *Config) openLog() (*slog.Logger, io.Closer, error) {
	if c.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	file, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: c.level()})
	return slog.New(handler), file, nil
}
