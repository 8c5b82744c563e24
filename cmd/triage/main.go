package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/email-triage/internal/apiclient"
	"github.com/nhle/email-triage/internal/app"
	"github.com/nhle/email-triage/internal/logging"
	"github.com/nhle/email-triage/internal/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "triage:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// stdout belongs to the terminal UI, so logs go to a file.
	logPath := filepath.Join(filepath.Dir(configPath), "triage.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logger := logging.NewFile(cfg.Log.Level, logFile)
	logger.Info("starting dashboard", "server", cfg.Server.URL)

	m := app.New(app.Deps{
		Client:           apiclient.New(cfg.Server.URL),
		Prefs:            model.NewThemePreference(configPath, cfg),
		Tokens:           app.KeyringTokens{},
		Logger:           logger,
		ServerURL:        cfg.Server.URL,
		MobileBreakpoint: cfg.Display.MobileBreakpoint,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	logger.Info("dashboard stopped")
	return nil
}
