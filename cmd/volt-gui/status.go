package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"voltgui/internal/catalog"
	"voltgui/internal/hostinfo"
	"voltgui/internal/procexec"
	"voltgui/internal/sysfs"
)

// hostSources supplies the hardware summary. Tests replace it.
var hostSources = hostinfo.SystemSources

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show live settings next to the active profile",
	Long: `Print the host summary and every live CPU, kernel and disk value. Values the
active profile would change are marked with "*".`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	name := a.activeProfile()
	sel, err := a.selections(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintln(out, "Profile:")
	fmt.Fprintf(out, "  %-26s %s\n", "Active", name)

	host := hostinfo.Collect(hostSources(), a.logger)
	fmt.Fprintln(out)
	heading.Fprintln(out, "Host:")
	fmt.Fprintf(out, "  %-26s %s\n", "CPU", orNone(host.CPU.Model))
	fmt.Fprintf(out, "  %-26s %d physical, %d logical\n", "Cores", host.CPU.PhysicalCore, host.CPU.LogicalCore)
	for _, e := range host.Errors {
		color.New(color.FgYellow).Fprintf(out, "  warning: %s\n", e)
	}

	cpu := a.reader.ReadAll(a.set.CPU)
	cpu[catalog.KeyScheduler] = sysfs.Reading{Value: procexec.RunningScheduler(cmd.Context(), a.query)}

	fmt.Fprintln(out)
	heading.Fprintln(out, "CPU:")
	printReadings(out, a.set.CPU, cpu, sel.CPU)

	fmt.Fprintln(out)
	heading.Fprintln(out, "Kernel:")
	printReadings(out, a.set.Kernel, a.reader.ReadAll(a.set.Kernel), sel.Kernel)

	fmt.Fprintln(out)
	heading.Fprintln(out, "Disk:")
	disks := a.reader.DiskSchedulers()
	if len(disks) == 0 {
		fmt.Fprintln(out, "  no block devices with a queue scheduler")
	}
	for _, d := range disks {
		label := d.Device
		if info, ok := host.Lookup(d.Device); ok && info.Model != "" {
			label = fmt.Sprintf("%s (%s)", d.Device, info.Model)
		}
		target := sel.Disk[d.Device][catalog.KeyDiskScheduler]
		printLine(out, label, d.Current, target)
	}
	return nil
}

func printReadings(out io.Writer, c *catalog.Catalog, readings map[string]sysfs.Reading, targets map[string]string) {
	for _, d := range c.Descriptors() {
		r, ok := readings[d.Key]
		if !ok {
			continue
		}
		target := strings.TrimSpace(targets[d.Key])
		if d.IsDefault(target) {
			target = ""
		}
		printLine(out, d.Label, r.Display(), target)
	}
}

// printLine writes one value row. A non-empty target that differs from the
// live value is appended and the row is marked.
func printLine(out io.Writer, label, live, target string) {
	if target == "" || target == catalog.Unset || target == live {
		fmt.Fprintf(out, "  %-26s %s\n", label, live)
		return
	}
	color.New(color.FgYellow).Fprintf(out, "* %-26s %s -> %s\n", label, live, target)
}
