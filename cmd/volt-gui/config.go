package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"voltgui/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the application configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file, or the system and user merge",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var (
		cfg config.Config
		err error
	)
	switch {
	case len(args) == 1:
		fmt.Fprintf(out, "Testing configuration file: %s\n", args[0])
		cfg, err = config.LoadFrom(args[0])
	case configPath != "":
		fmt.Fprintf(out, "Testing configuration file: %s\n", configPath)
		cfg, err = config.LoadFrom(configPath)
	default:
		fmt.Fprintln(out, "Testing configuration (system + user merge):")
		fmt.Fprintf(out, "  System config: %s\n", config.SystemConfigPath())
		fmt.Fprintf(out, "  User config:   %s\n", config.UserConfigPath())
		fmt.Fprintln(out)
		cfg, err = config.Load()
	}

	if err != nil {
		color.New(color.FgRed).Fprintf(out, "Configuration validation FAILED:\n   %v\n", err)
		return errors.New("invalid configuration")
	}

	color.New(color.FgHiGreen, color.Bold).Fprintln(out, "Configuration is VALID")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration Summary:")
	fmt.Fprintf(out, "  Helper:           %s %s\n", cfg.Helper.Elevator, cfg.Helper.Path)
	fmt.Fprintf(out, "  Sysfs Root:       %s\n", cfg.Paths.SysfsRoot)
	fmt.Fprintf(out, "  ICD Directory:    %s\n", cfg.Paths.ICDDir)
	fmt.Fprintf(out, "  Refresh Interval: %s\n", cfg.RefreshInterval())
	fmt.Fprintf(out, "  Process Timeout:  %s\n", cfg.ProcessTimeout())
	fmt.Fprintf(out, "  Log Level:        %s\n", cfg.Logging.Level)
	return nil
}
