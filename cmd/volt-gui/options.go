package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"voltgui/internal/options"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show or change global options",
}

var optionsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every option",
	Args:  cobra.NoArgs,
	RunE:  runOptionsShow,
}

var optionsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change one option",
	Long: `Change one option. Flags accept enable/disable, true/false, on/off or 1/0.

Options: theme, transparency, tray, start-minimized, start-maximized, scaling,
welcome, restore-on-close, last-profile.`,
	Args: cobra.ExactArgs(2),
	RunE: runOptionsSet,
}

func init() {
	optionsCmd.AddCommand(optionsShowCmd)
	optionsCmd.AddCommand(optionsSetCmd)
	rootCmd.AddCommand(optionsCmd)
}

func runOptionsShow(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	o, err := a.options.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", a.options.Path())
	for _, name := range options.Names() {
		v, err := o.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-18s %s\n", name, v)
	}
	return nil
}

func runOptionsSet(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	name, value := args[0], args[1]
	o, err := a.options.Update(func(o *options.Options) error {
		return o.Set(name, value)
	})
	if err != nil {
		return err
	}

	stored, err := o.Get(name)
	if err != nil {
		return err
	}
	color.New(color.FgHiGreen).Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, stored)
	return nil
}
