package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"voltgui/internal/hostinfo"
	"voltgui/internal/logging"
	"voltgui/internal/tui"
)

// restoreTimeout bounds the restore-on-close helper runs after the UI has
// exited.
const restoreTimeout = 2 * time.Minute

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logPath := cfg.Logging.File
	if logPath == "" {
		logPath = logging.DefaultLogPath()
	}
	logger, err := logging.NewFileLogger(logging.ParseLevel(cfg.Logging.Level), logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		logger = logging.Discard()
	}
	defer logger.Close()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	logger.Info("app.started", "Application started", map[string]interface{}{
		"version": version,
		"ts":      startTime.UTC().Format(time.RFC3339),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report := newProber(a.query, cfg.Paths.ICDDir, cfg.Paths.OverlaySearch, logger).Collect(ctx)
	host := hostinfo.Collect(hostSources(), logger)

	model := tui.NewModel(tui.Deps{
		Set:              a.set,
		Reader:           a.reader,
		Runner:           a.query,
		Planner:          a.planner,
		Controller:       a.controller,
		Profiles:         a.profiles,
		Options:          a.options,
		Logger:           logger,
		StateDir:         a.stateDir,
		ScriptDir:        cfg.Paths.ScriptDir,
		ICDDir:           cfg.Paths.ICDDir,
		RefreshInterval:  cfg.RefreshInterval(),
		NVIDIAAvailable:  report.NVIDIA.NVMLOk,
		OverlayAvailable: report.OverlayAvailable,
		Host:             &host,
		GPU:              &report,
	})

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	exitReason := "normal"
	if err != nil {
		exitReason = "error"
		logger.Error("app.error", "Application error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("run TUI: %w", err)
	}

	if m, ok := finalModel.(tui.Model); ok {
		restoreCtx, cancel := context.WithTimeout(ctx, restoreTimeout)
		for _, c := range m.Shutdown(restoreCtx) {
			if !c.OK() {
				fmt.Fprintf(os.Stderr, "Warning: restoring %s settings failed (exit %d)\n", c.Subsystem, c.ExitCode)
			}
		}
		cancel()
	}

	logger.Info("app.exited", "Application exited", map[string]interface{}{
		"ts":       time.Now().UTC().Format(time.RFC3339),
		"reason":   exitReason,
		"duration": time.Since(startTime).String(),
	})
	return nil
}
