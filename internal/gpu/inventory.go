package gpu

import (
	"context"
	"encoding/json"
	"fmt"

	"voltgui/internal/fsutil"
	"voltgui/internal/logging"
	"voltgui/internal/procexec"
	"voltgui/internal/sysfs"
)

// Prober gathers the graphics report. CardLister defaults to ListCards and
// is replaceable for hosts without a PCI bus.
type Prober struct {
	Runner      procexec.Runner
	Detector    *Detector
	CardLister  func(*logging.Logger) ([]Card, error)
	ICDDir      string
	OverlayDirs []string
	Logger      *logging.Logger
}

// NewProber creates a prober with the system card lister and NVML detector.
func NewProber(r procexec.Runner, icdDir string, overlayDirs []string, logger *logging.Logger) *Prober {
	return &Prober{
		Runner:      r,
		Detector:    NewDetector(logger),
		CardLister:  ListCards,
		ICDDir:      icdDir,
		OverlayDirs: overlayDirs,
		Logger:      logger,
	}
}

// Collect runs every probe. Individual failures land in Report.Errors and
// never abort the collection.
func (p *Prober) Collect(ctx context.Context) Report {
	report := Report{
		Cards:      []Card{},
		VulkanICDs: []string{},
	}

	if p.CardLister != nil {
		cards, err := p.CardLister(p.Logger)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
		} else {
			report.Cards = cards
		}
	}

	if p.Detector != nil {
		report.NVIDIA = p.Detector.ProbeNVIDIA()
	}

	if p.ICDDir != "" {
		report.VulkanICDs = sysfs.ICDOptions(p.ICDDir)
	}

	if p.Runner != nil {
		report.OpenGLRenderer = OpenGLRenderer(ctx, p.Runner)
		report.VulkanDevices = VulkanDevices(ctx, p.Runner)
		report.OverlayAvailable = procexec.OverlayAvailable(ctx, p.Runner, p.OverlayDirs)
	}

	p.Logger.Info("gpu.report.collected", "Graphics report collected", map[string]interface{}{
		"cards":   len(report.Cards),
		"icds":    len(report.VulkanICDs),
		"nvml_ok": report.NVIDIA.NVMLOk,
		"overlay": report.OverlayAvailable,
	})
	return report
}

// SaveReport writes report as indented JSON.
func SaveReport(report Report, path string, logger *logging.Logger) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := fsutil.AtomicWriteFile(path, data, fsutil.DefaultFilePermissions, logger); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	logger.Info("gpu.report.saved", "GPU report saved", map[string]interface{}{
		"filepath": path,
	})
	return nil
}
