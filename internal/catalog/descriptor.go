package catalog

// Unset is the sentinel choice meaning "do not manage this setting".
const Unset = "unset"

// Category groups descriptors into the panels and profile sections they
// belong to.
type Category string

const (
	// CategoryCPU holds governor, frequency bounds and the sched_ext scheduler
	CategoryCPU Category = "cpu"
	// CategoryKernel holds /proc/sys and transparent hugepage tunables
	CategoryKernel Category = "kernel"
	// CategoryMesa holds Mesa driver environment toggles
	CategoryMesa Category = "mesa"
	// CategoryNVIDIA holds proprietary NVIDIA driver environment toggles
	CategoryNVIDIA Category = "nvidia"
	// CategoryRenderSelector picks OpenGL provider, PRIME GPU and Vulkan ICD
	CategoryRenderSelector Category = "render_selector"
	// CategoryRenderPipeline holds MangoHud-driven overlay and filtering options
	CategoryRenderPipeline Category = "render_pipeline"
	// CategoryUpscaling holds Proton FSR upscaling and sharpening
	CategoryUpscaling Category = "upscaling"
	// CategoryFrameGeneration holds lsfg-vk frame generation options
	CategoryFrameGeneration Category = "frame_generation"
	// CategoryDisk holds per-device block queue settings
	CategoryDisk Category = "disk"
)

// DomainKind identifies how the legal values of a setting are obtained.
type DomainKind int

const (
	// DomainFixed is a static list of choices
	DomainFixed DomainKind = iota
	// DomainRange is an integer range bounded by two auxiliary files
	DomainRange
	// DomainDynamicFile is a token list read from a file, brackets stripped
	DomainDynamicFile
	// DomainExecutableScan is the set of executables matching a prefix
	DomainExecutableScan
	// DomainVulkanICD is the set of Vulkan ICD manifests found on the system
	DomainVulkanICD
	// DomainFreeText accepts any value typed by the user
	DomainFreeText
)

func (k DomainKind) String() string {
	switch k {
	case DomainFixed:
		return "fixed"
	case DomainRange:
		return "range"
	case DomainDynamicFile:
		return "dynamic"
	case DomainExecutableScan:
		return "executable-scan"
	case DomainVulkanICD:
		return "vulkan-icd"
	case DomainFreeText:
		return "text"
	default:
		return "unknown"
	}
}

// Domain describes the value space of a descriptor.
type Domain struct {
	Kind DomainKind

	// Choices is used by DomainFixed.
	Choices []string

	// MinPath and MaxPath bound a DomainRange. Values step by Step and are
	// divided by 1000 when KHzToMHz is set. Descending reverses the list.
	MinPath    string
	MaxPath    string
	Step       int
	KHzToMHz   bool
	Descending bool

	// ChoicesPath lists legal tokens for DomainDynamicFile.
	ChoicesPath string

	// SearchDirs and Prefix drive DomainExecutableScan.
	SearchDirs []string
	Prefix     string

	// Defaults are sentinel items that always lead the list.
	Defaults []string
}

// EnvRuleKind selects how a display value becomes an environment value.
type EnvRuleKind int

const (
	// EnvLookup translates through Values; unmapped values emit nothing
	EnvLookup EnvRuleKind = iota
	// EnvDirect copies the display value
	EnvDirect
	// EnvLookupOrDirect tries Values first and falls back to the display value
	EnvLookupOrDirect
	// EnvBytes treats the display value as GiB and emits bytes
	EnvBytes
	// EnvExtractPrefix keeps the text before " - "
	EnvExtractPrefix
	// EnvVulkanICD resolves an ICD name to manifest paths
	EnvVulkanICD
)

// EnvMapping binds a descriptor to an environment variable.
type EnvMapping struct {
	Var    string
	Kind   EnvRuleKind
	Values map[string]string
	// Prefix is prepended to the translated value, e.g. "fps_limit=".
	Prefix string
	// Implies lists NAME=value assignments forced whenever this mapping
	// produces output.
	Implies []string
	// MesaOnly restricts output to Mesa OpenGL providers.
	MesaOnly bool
}

// Descriptor is the static metadata of one tunable.
type Descriptor struct {
	Key         string
	Label       string
	Description string
	Recommended string
	Category    Category
	// Path is the pseudo-file holding the live value. Empty when the value
	// comes from elsewhere (a running process, nothing at all for
	// environment-only toggles).
	Path    string
	Dynamic bool
	Domain  Domain
	Env     *EnvMapping
}

// IsEnvOnly reports whether the setting exists only in the launch
// environment and has no live system value.
func (d Descriptor) IsEnvOnly() bool {
	return d.Path == "" && d.Env != nil
}

// Default returns the sentinel choice of the descriptor.
func (d Descriptor) Default() string {
	if len(d.Domain.Defaults) > 0 {
		return d.Domain.Defaults[0]
	}
	if len(d.Domain.Choices) > 0 {
		return d.Domain.Choices[0]
	}
	return ""
}

// IsDefault reports whether value leaves the setting unmanaged.
func (d Descriptor) IsDefault(value string) bool {
	return value == "" || value == Unset || value == d.Default()
}
