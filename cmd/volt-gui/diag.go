package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"voltgui/internal/config"
	"voltgui/internal/diag"
	"voltgui/internal/hostinfo"
	"voltgui/internal/logging"
)

var (
	diagOutput     string
	diagNoLogs     bool
	diagNoProfiles bool
)

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "Create a support bundle",
	Long: `Write a ZIP with logs, profiles, options, the effective configuration and
graphics and host reports. Secrets in launch options and user names in paths
are redacted.`,
	Args: cobra.NoArgs,
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().StringVarP(&diagOutput, "output", "o", "", "bundle path (default: volt-gui-diag-<timestamp>.zip)")
	diagCmd.Flags().BoolVar(&diagNoLogs, "no-logs", false, "leave log files out")
	diagCmd.Flags().BoolVar(&diagNoProfiles, "no-profiles", false, "leave profiles and options out")
	rootCmd.AddCommand(diagCmd)
}

func runDiag(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	logDir := filepath.Dir(logging.DefaultLogPath())
	if a.cfg.Logging.File != "" {
		logDir = filepath.Dir(a.cfg.Logging.File)
	}

	cfg := diag.NewConfig(version, logDir, a.userDir)
	if diagOutput != "" {
		cfg.OutputPath = diagOutput
	}
	cfg.IncludeLogs = !diagNoLogs
	cfg.IncludeProfiles = !diagNoProfiles

	effective, err := config.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	cfg.Extra["config/effective.yaml"] = effective

	report := newProber(a.query, a.cfg.Paths.ICDDir, a.cfg.Paths.OverlaySearch, a.logger).Collect(cmd.Context())
	if data, err := json.MarshalIndent(report, "", "  "); err == nil {
		cfg.Extra["reports/gpu.json"] = data
	}
	host := hostinfo.Collect(hostSources(), a.logger)
	if data, err := json.MarshalIndent(host, "", "  "); err == nil {
		cfg.Extra["reports/host.json"] = data
	}

	path, err := diag.NewPackager(cfg, a.logger).CreatePackage()
	if err != nil {
		return err
	}
	color.New(color.FgHiGreen).Fprintf(cmd.OutOrStdout(), "Support bundle written to %s\n", path)
	return nil
}
