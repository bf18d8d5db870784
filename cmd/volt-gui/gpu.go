package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"voltgui/internal/gpu"
)

var (
	gpuSave string
	gpuJSON bool
)

// newProber builds the graphics prober. Tests replace it to avoid touching
// the host PCI bus.
var newProber = gpu.NewProber

var gpuCmd = &cobra.Command{
	Use:   "gpu",
	Short: "Report graphics cards, drivers and Vulkan ICDs",
	Args:  cobra.NoArgs,
	RunE:  runGPU,
}

func init() {
	gpuCmd.Flags().StringVar(&gpuSave, "save", "", "also write the report as JSON to this file")
	gpuCmd.Flags().BoolVar(&gpuJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(gpuCmd)
}

func runGPU(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	report := newProber(a.query, a.cfg.Paths.ICDDir, a.cfg.Paths.OverlaySearch, a.logger).Collect(cmd.Context())

	if gpuSave != "" {
		if err := gpu.SaveReport(report, gpuSave, a.logger); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if gpuJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printGPUReport(out, report)
	if gpuSave != "" {
		fmt.Fprintf(out, "\nReport saved to %s\n", gpuSave)
	}
	return nil
}

func printGPUReport(out io.Writer, r gpu.Report) {
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintln(out, "Graphics Cards:")
	if len(r.Cards) == 0 {
		fmt.Fprintln(out, "  none detected")
	}
	for _, c := range r.Cards {
		fmt.Fprintf(out, "  [%d] %s\n", c.Index, c.Label())
	}

	fmt.Fprintln(out)
	heading.Fprintln(out, "NVIDIA:")
	if r.NVIDIA.NVMLOk {
		fmt.Fprintf(out, "  Driver: %s\n", r.NVIDIA.DriverVersion)
		for _, d := range r.NVIDIA.Devices {
			fmt.Fprintf(out, "  [%d] %s (%d MiB)\n", d.Index, d.Name, d.MemoryMB)
		}
	} else {
		fmt.Fprintf(out, "  unavailable: %s\n", r.NVIDIA.ErrorMessage)
	}

	fmt.Fprintln(out)
	heading.Fprintln(out, "Vulkan:")
	fmt.Fprintf(out, "  ICDs:    %s\n", joinOrNone(r.VulkanICDs))
	fmt.Fprintf(out, "  Devices: %s\n", joinOrNone(r.VulkanDevices))

	fmt.Fprintln(out)
	heading.Fprintln(out, "OpenGL:")
	fmt.Fprintf(out, "  Renderer: %s\n", orNone(r.OpenGLRenderer))
	fmt.Fprintf(out, "  Overlay:  %s\n", yesNo(r.OverlayAvailable))

	if len(r.Errors) > 0 {
		fmt.Fprintln(out)
		for _, e := range r.Errors {
			color.New(color.FgYellow).Fprintf(out, "  warning: %s\n", e)
		}
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
