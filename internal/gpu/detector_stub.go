//go:build !cuda

package gpu

import "voltgui/internal/logging"

// Detector reports NVML as unavailable in builds without the cuda tag.
type Detector struct {
	logger *logging.Logger
}

// NewDetector creates a detector that skips NVML.
func NewDetector(logger *logging.Logger) *Detector {
	return &Detector{logger: logger}
}

// NewDetectorWithNVML ignores the NVML implementation in this build.
func NewDetectorWithNVML(_ NVMLInterface, logger *logging.Logger) *Detector {
	return NewDetector(logger)
}

// ProbeNVIDIA returns a report with NVMLOk false.
func (d *Detector) ProbeNVIDIA() NVIDIAReport {
	d.logger.Debug("gpu.nvml.disabled", "Skipping NVML probe (built without cuda tag)", nil)
	return NVIDIAReport{
		Devices:      []NVIDIADevice{},
		ErrorMessage: "NVML disabled: rebuild with -tags cuda",
	}
}
