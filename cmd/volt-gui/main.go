package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

const version = "0.1.0-dev"

var (
	configPath string
	logLevel   string
)

// errRoot is returned when the front-end is started with root privileges.
// Privileged work belongs to the helper, not to the UI.
var errRoot = errors.New("volt-gui must not be run as root; privileged changes go through the helper")

var rootCmd = &cobra.Command{
	Use:   "volt-gui",
	Short: "Tune CPU, kernel, disk and GPU settings",
	Long: `volt-gui edits CPU, kernel, disk and GPU launch settings, stores them as
named profiles and applies them through a privileged helper.

Run without arguments to open the terminal UI.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "volt-gui version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "load configuration from this file instead of the system and user files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
}

func checkNotRoot(euid int) error {
	if euid == 0 {
		return errRoot
	}
	return nil
}

func main() {
	if err := checkNotRoot(unix.Geteuid()); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
