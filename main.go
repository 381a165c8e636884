package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lectern/internal/document"
)

var (
	rootCmd = &cobra.Command{
		Use:          "lectern",
		Short:        "Terminal editor for Go lecture slides",
		SilenceUsage: true,
		RunE:         run,
	}
	configPath string
	exportDir  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "Path to the YAML config file")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory exports are written to (overrides config)")
}

func run(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if exportDir != "" {
		config.ExportDirectory = expandPath(exportDir)
	}

	logger, closer, err := config.openLog()
	if err != nil {
		return err
	}
	defer closer.Close()

	m := initialModel(config, logger)
	logger.Info("starting", "session", m.store.Session(), "export_dir", config.ExportDirectory)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func initialModel(config *Config, logger *slog.Logger) model {
	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.Placeholder = "Type here"

	return model{
		store:         document.New(document.WithLogger(logger)),
		history:       NewHistory(config.UndoDepth),
		config:        config,
		log:           logger,
		mode:          ModeNormal,
		selectedBlock: -1,
		editor:        editor,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}
