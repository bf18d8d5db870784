//go:build cuda

package gpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"voltgui/internal/logging"
)

// Detector probes the proprietary NVIDIA driver through NVML.
type Detector struct {
	nvml   NVMLInterface
	logger *logging.Logger
}

// NewDetector creates a detector bound to the system NVML library.
func NewDetector(logger *logging.Logger) *Detector {
	return &Detector{
		nvml:   NewRealNVML(),
		logger: logger,
	}
}

// NewDetectorWithNVML creates a detector with a custom NVML implementation.
func NewDetectorWithNVML(nvmlInterface NVMLInterface, logger *logging.Logger) *Detector {
	return &Detector{
		nvml:   nvmlInterface,
		logger: logger,
	}
}

// ProbeNVIDIA reports driver version and devices. Failure to initialize
// NVML means the proprietary driver is not in use.
func (d *Detector) ProbeNVIDIA() NVIDIAReport {
	report := NVIDIAReport{Devices: make([]NVIDIADevice, 0)}

	ret := d.nvml.Init()
	if ret != nvml.SUCCESS {
		report.ErrorMessage = fmt.Sprintf("NVML unavailable: %v", nvml.ErrorString(ret))
		d.logger.Debug("gpu.nvml.init.failed", "NVML initialization failed", map[string]interface{}{
			"error": report.ErrorMessage,
		})
		return report
	}
	defer d.nvml.Shutdown()

	report.NVMLOk = true

	if version, ret := d.nvml.SystemGetDriverVersion(); ret == nvml.SUCCESS {
		report.DriverVersion = version
	} else {
		d.logger.Warn("gpu.driver.version.failed", "Failed to get driver version", map[string]interface{}{
			"error": nvml.ErrorString(ret),
		})
	}

	if version, ret := d.nvml.SystemGetCudaDriverVersion(); ret == nvml.SUCCESS {
		report.CUDAVersion = version
	}

	count, ret := d.nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		report.ErrorMessage = fmt.Sprintf("Failed to get device count: %v", nvml.ErrorString(ret))
		d.logger.Warn("gpu.device.count.failed", "Failed to get GPU count", map[string]interface{}{
			"error": report.ErrorMessage,
		})
		return report
	}

	for i := 0; i < count; i++ {
		device, ret := d.nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			d.logger.Warn("gpu.device.handle.failed", "Failed to get device handle", map[string]interface{}{
				"index": i,
				"error": nvml.ErrorString(ret),
			})
			continue
		}

		dev := NVIDIADevice{Index: i}
		if name, ret := device.GetName(); ret == nvml.SUCCESS {
			dev.Name = name
		}
		if uuid, ret := device.GetUUID(); ret == nvml.SUCCESS {
			dev.UUID = uuid
		}
		if mem, ret := device.GetMemoryInfo(); ret == nvml.SUCCESS {
			dev.MemoryMB = mem.Total / (1024 * 1024)
		}
		report.Devices = append(report.Devices, dev)
	}

	d.logger.Info("gpu.nvml.probe", "NVIDIA driver detected", map[string]interface{}{
		"driver_version": report.DriverVersion,
		"devices":        len(report.Devices),
	})
	return report
}
