package profile

import "errors"

// DefaultName is the reserved profile that always exists and cannot be
// deleted.
const DefaultName = "Default"

const (
	sectionCPU           = "CPU"
	sectionGPU           = "GPU"
	sectionLaunchOptions = "LaunchOptions"
	sectionKernel        = "Kernel"
	sectionDisk          = "Disk"

	keyLaunchOptions = "launch_options"

	filePrefix = "volt-config"
	fileExt    = ".ini"
)

// legacySections were written by releases that stored each GPU panel in its
// own section. They are folded into the GPU map on load.
var legacySections = []string{"Mesa", "NVIDIA", "RenderSelector", "RenderPipeline"}

var (
	// ErrReservedProfile is returned when an operation targets Default in a
	// way it does not allow
	ErrReservedProfile = errors.New("profile is reserved")
	// ErrInvalidName is returned for names that cannot form a file name
	ErrInvalidName = errors.New("invalid profile name")
	// ErrNotFound is returned when a profile file does not exist
	ErrNotFound = errors.New("profile not found")
)

// Selections is the payload of a profile: the user's chosen values per
// subsystem. Absent keys are unset.
type Selections struct {
	CPU           map[string]string
	GPU           map[string]string
	LaunchOptions string
	Kernel        map[string]string
	// Disk maps device name to setting name to value.
	Disk map[string]map[string]string
}

// NewSelections returns empty selections with every map allocated.
func NewSelections() Selections {
	return Selections{
		CPU:    map[string]string{},
		GPU:    map[string]string{},
		Kernel: map[string]string{},
		Disk:   map[string]map[string]string{},
	}
}

// SetDisk records a per-device setting.
func (s *Selections) SetDisk(device, setting, value string) {
	if s.Disk == nil {
		s.Disk = map[string]map[string]string{}
	}
	if s.Disk[device] == nil {
		s.Disk[device] = map[string]string{}
	}
	s.Disk[device][setting] = value
}

// Clone returns a deep copy.
func (s Selections) Clone() Selections {
	out := NewSelections()
	for k, v := range s.CPU {
		out.CPU[k] = v
	}
	for k, v := range s.GPU {
		out.GPU[k] = v
	}
	for k, v := range s.Kernel {
		out.Kernel[k] = v
	}
	for dev, settings := range s.Disk {
		for k, v := range settings {
			out.SetDisk(dev, k, v)
		}
	}
	out.LaunchOptions = s.LaunchOptions
	return out
}

// DiffOp marks a line of a profile diff.
type DiffOp rune

const (
	DiffEqual  DiffOp = ' '
	DiffInsert DiffOp = '+'
	DiffDelete DiffOp = '-'
)

// DiffLine is one line of a profile diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// String renders the line in unified diff style.
func (l DiffLine) String() string {
	return string(l.Op) + " " + l.Text
}
