package catalog

const (
	// KeyGovernor selects the cpufreq scaling governor
	KeyGovernor = "governor"
	// KeyMaxFreq caps the scaling frequency in MHz
	KeyMaxFreq = "max_freq"
	// KeyMinFreq floors the scaling frequency in MHz
	KeyMinFreq = "min_freq"
	// KeyScheduler picks a sched_ext userspace scheduler
	KeyScheduler = "scheduler"

	// SchedulerNone stops any running sched_ext scheduler
	SchedulerNone = "none"
	// SchedulerPrefix is the file name prefix of sched_ext schedulers
	SchedulerPrefix = "scx_"

	cpufreqDir = "/sys/devices/system/cpu/cpu0/cpufreq/"
)

// CPUGovernorGlob matches every per-core governor file.
const CPUGovernorGlob = "/sys/devices/system/cpu/cpu*/cpufreq/scaling_governor"

func cpuDescriptors(searchDirs []string) []Descriptor {
	return []Descriptor{
		{
			Key:         KeyGovernor,
			Label:       "CPU Governor",
			Description: "cpufreq scaling governor applied to every core.",
			Path:        cpufreqDir + "scaling_governor",
			Domain: Domain{
				Kind:        DomainDynamicFile,
				ChoicesPath: cpufreqDir + "scaling_available_governors",
				Defaults:    []string{Unset},
			},
		},
		{
			Key:         KeyMaxFreq,
			Label:       "Maximum Frequency (MHz)",
			Description: "Upper bound of the scaling frequency.",
			Path:        cpufreqDir + "scaling_max_freq",
			Domain: Domain{
				Kind:       DomainRange,
				MinPath:    cpufreqDir + "cpuinfo_min_freq",
				MaxPath:    cpufreqDir + "cpuinfo_max_freq",
				Step:       100,
				KHzToMHz:   true,
				Descending: true,
				Defaults:   []string{Unset},
			},
		},
		{
			Key:         KeyMinFreq,
			Label:       "Minimum Frequency (MHz)",
			Description: "Lower bound of the scaling frequency.",
			Path:        cpufreqDir + "scaling_min_freq",
			Domain: Domain{
				Kind:     DomainRange,
				MinPath:  cpufreqDir + "cpuinfo_min_freq",
				MaxPath:  cpufreqDir + "cpuinfo_max_freq",
				Step:     100,
				KHzToMHz: true,
				Defaults: []string{Unset},
			},
		},
		{
			Key:         KeyScheduler,
			Label:       "Pluggable CPU Scheduler",
			Description: "sched_ext scheduler binary to run. Disabled when none is installed.",
			Domain: Domain{
				Kind:       DomainExecutableScan,
				SearchDirs: searchDirs,
				Prefix:     SchedulerPrefix,
				Defaults:   []string{Unset, SchedulerNone},
			},
		},
	}
}
