//go:build !cuda

package gpu

// NVMLInterface is a placeholder for builds without NVML support.
type NVMLInterface interface{}

// NewRealNVML returns nil when NVML support is compiled out.
func NewRealNVML() NVMLInterface {
	return nil
}
