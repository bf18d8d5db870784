package gpu

// Card is one PCI display controller.
type Card struct {
	Index   int    `json:"index"`
	Address string `json:"address"`
	Vendor  string `json:"vendor"`
	Product string `json:"product"`
	Driver  string `json:"driver"`
}

// NVIDIADevice is a GPU reported by the proprietary driver.
type NVIDIADevice struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	UUID     string `json:"uuid"`
	MemoryMB uint64 `json:"memory_mb"`
}

// NVIDIAReport is the outcome of the NVML probe. NVMLOk is false when the
// proprietary driver is absent, which hides the NVIDIA settings.
type NVIDIAReport struct {
	NVMLOk        bool           `json:"nvml_ok"`
	DriverVersion string         `json:"driver_version,omitempty"`
	CUDAVersion   int            `json:"cuda_version,omitempty"`
	Devices       []NVIDIADevice `json:"devices"`
	ErrorMessage  string         `json:"error_message,omitempty"`
}

// Report summarizes the graphics stack.
type Report struct {
	Cards            []Card       `json:"cards"`
	NVIDIA           NVIDIAReport `json:"nvidia"`
	VulkanICDs       []string     `json:"vulkan_icds"`
	OpenGLRenderer   string       `json:"opengl_renderer,omitempty"`
	VulkanDevices    []string     `json:"vulkan_devices,omitempty"`
	OverlayAvailable bool         `json:"overlay_available"`
	Errors           []string     `json:"errors,omitempty"`
}

// HasVendor reports whether any card's vendor name contains name,
// ignoring case.
func (r Report) HasVendor(name string) bool {
	for _, c := range r.Cards {
		if containsFold(c.Vendor, name) {
			return true
		}
	}
	return false
}
