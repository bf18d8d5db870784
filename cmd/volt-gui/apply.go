package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"voltgui/internal/apply"
	"voltgui/internal/reconcile"
)

var applyProfile string

var applyCmd = &cobra.Command{
	Use:   "apply <cpu|kernel|disk|gpu|all>...",
	Short: "Apply a profile through the helper",
	Long: `Apply the selections of a profile (the active one unless --profile is given)
for each named subsystem. Subsystems whose settings already match the system
are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyProfile, "profile", "p", "", "profile to apply (default: the active profile)")
	rootCmd.AddCommand(applyCmd)
}

func parseSubsystems(args []string) ([]reconcile.Subsystem, error) {
	var out []reconcile.Subsystem
	seen := map[reconcile.Subsystem]bool{}
	add := func(s reconcile.Subsystem) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, arg := range args {
		if strings.EqualFold(arg, "all") {
			for _, s := range reconcile.Subsystems {
				add(s)
			}
			continue
		}
		s, ok := reconcile.ParseSubsystem(arg)
		if !ok {
			return nil, fmt.Errorf("unknown subsystem %q (want cpu, kernel, disk, gpu or all)", arg)
		}
		add(s)
	}
	return out, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	subs, err := parseSubsystems(args)
	if err != nil {
		return err
	}

	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	name := applyProfile
	if name == "" {
		name = a.activeProfile()
	}
	sel, err := a.selections(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	green := color.New(color.FgHiGreen)
	red := color.New(color.FgRed)
	failed := 0

	for _, sub := range subs {
		plan, err := a.plan(cmd.Context(), sub, sel)
		if err != nil {
			red.Fprintf(out, "%-7s %v\n", sub, err)
			failed++
			continue
		}

		switch {
		case plan.AlreadyApplied:
			fmt.Fprintf(out, "%-7s already applied\n", sub)
			continue
		case plan.Empty():
			fmt.Fprintf(out, "%-7s nothing to apply\n", sub)
			continue
		}

		for _, c := range plan.Pending() {
			fmt.Fprintf(out, "        %s: %s -> %s\n", c.Key, displayValue(c.Current), c.Target)
		}

		done := a.controller.RunSync(cmd.Context(), plan)
		if !done.OK() {
			red.Fprintf(out, "%-7s failed: %s\n", sub, failureText(done))
			failed++
			continue
		}
		green.Fprintf(out, "%-7s applied\n", sub)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d subsystems failed", failed, len(subs))
	}
	return nil
}

func failureText(c apply.Completion) string {
	if c.Err != nil && c.ExitCode == 0 {
		return c.Err.Error()
	}
	msg := fmt.Sprintf("exit %d", c.ExitCode)
	if text := strings.TrimSpace(c.Output); text != "" {
		msg += ": " + text
	} else if c.Err != nil {
		msg += ": " + c.Err.Error()
	}
	return msg
}

func displayValue(v string) string {
	if v == "" {
		return "?"
	}
	return v
}
