//go:build cuda

package gpu

import (
	"testing"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"voltgui/internal/logging"
)

const mockDriverVersion = "550.78"

func TestDetector_ProbeNVIDIA_Success(t *testing.T) {
	mock := NewMockNVML()
	mock.DriverVersion = mockDriverVersion
	mock.CudaVersion = 12040
	mock.DeviceCount = 2
	mock.Devices = []MockDevice{
		{
			Name:             "NVIDIA GeForce RTX 4070",
			NameReturn:       nvml.SUCCESS,
			UUID:             "GPU-aaaa",
			UUIDReturn:       nvml.SUCCESS,
			MemoryTotal:      12 * 1024 * 1024 * 1024,
			MemoryInfoReturn: nvml.SUCCESS,
		},
		{
			Name:             "NVIDIA GeForce GTX 1650",
			NameReturn:       nvml.SUCCESS,
			UUID:             "GPU-bbbb",
			UUIDReturn:       nvml.SUCCESS,
			MemoryTotal:      4 * 1024 * 1024 * 1024,
			MemoryInfoReturn: nvml.SUCCESS,
		},
	}

	report := NewDetectorWithNVML(mock, logging.Discard()).ProbeNVIDIA()

	if !report.NVMLOk {
		t.Fatal("expected NVML to be OK")
	}
	if report.DriverVersion != mockDriverVersion {
		t.Errorf("DriverVersion = %s, want %s", report.DriverVersion, mockDriverVersion)
	}
	if report.CUDAVersion != 12040 {
		t.Errorf("CUDAVersion = %d", report.CUDAVersion)
	}
	if len(report.Devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(report.Devices))
	}
	if report.Devices[0].MemoryMB != 12*1024 {
		t.Errorf("MemoryMB = %d", report.Devices[0].MemoryMB)
	}
	if report.Devices[1].Index != 1 || report.Devices[1].UUID != "GPU-bbbb" {
		t.Errorf("unexpected second device %+v", report.Devices[1])
	}
	if mock.shutdowns != 1 {
		t.Errorf("expected one Shutdown, got %d", mock.shutdowns)
	}
}

func TestDetector_ProbeNVIDIA_InitFailed(t *testing.T) {
	mock := NewMockNVML()
	mock.InitReturn = nvml.ERROR_DRIVER_NOT_LOADED

	report := NewDetectorWithNVML(mock, logging.Discard()).ProbeNVIDIA()

	if report.NVMLOk {
		t.Error("expected NVMLOk false")
	}
	if report.ErrorMessage == "" {
		t.Error("expected an error message")
	}
	if mock.shutdowns != 0 {
		t.Error("Shutdown must not run after failed Init")
	}
}

func TestDetector_ProbeNVIDIA_DeviceCountFailed(t *testing.T) {
	mock := NewMockNVML()
	mock.DeviceCountReturn = nvml.ERROR_UNKNOWN

	report := NewDetectorWithNVML(mock, logging.Discard()).ProbeNVIDIA()

	if !report.NVMLOk {
		t.Error("NVML itself initialized")
	}
	if len(report.Devices) != 0 {
		t.Errorf("expected no devices, got %d", len(report.Devices))
	}
	if report.ErrorMessage == "" {
		t.Error("expected an error message")
	}
}

func TestDetector_ProbeNVIDIA_SkipsBadHandles(t *testing.T) {
	mock := NewMockNVML()
	mock.DeviceCount = 3
	mock.Devices = []MockDevice{{Name: "only", NameReturn: nvml.SUCCESS}}

	report := NewDetectorWithNVML(mock, logging.Discard()).ProbeNVIDIA()

	if len(report.Devices) != 1 || report.Devices[0].Name != "only" {
		t.Errorf("unexpected devices %+v", report.Devices)
	}
}
