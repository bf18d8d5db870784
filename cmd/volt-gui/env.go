package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	envProfile string
	envWrite   bool
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the launch environment of a profile",
	Long: `Render the GPU launch environment a profile generates. With --write the file
is written the way apply would write it and its path is printed.`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().StringVarP(&envProfile, "profile", "p", "", "profile to render (default: the active profile)")
	envCmd.Flags().BoolVarP(&envWrite, "write", "w", false, "write the environment file and print its path")
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	sel, err := a.selections(envProfile)
	if err != nil {
		return err
	}

	script := a.envScript(sel)
	out := cmd.OutOrStdout()

	if envWrite {
		path, err := script.WriteTemp(a.cfg.Paths.ScriptDir)
		if err != nil {
			return fmt.Errorf("write environment file: %w", err)
		}
		fmt.Fprintln(out, path)
		return nil
	}

	if script.Empty() {
		fmt.Fprintln(out, "# no GPU settings selected")
		return nil
	}
	fmt.Fprint(out, script.Render())
	return nil
}
