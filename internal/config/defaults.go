package config

// DefaultConfig returns a configuration matching a stock installation
func DefaultConfig() Config {
	return Config{
		Helper: HelperConfig{
			Path:     "/usr/local/bin/volt-helper",
			Elevator: "pkexec",
		},
		Paths: PathsConfig{
			SysfsRoot:       "/",
			ICDDir:          "/usr/share/vulkan/icd.d",
			SchedulerSearch: []string{"/usr/bin", "/usr/local/bin"},
			OverlaySearch:   []string{"/usr/bin", "/usr/local/bin"},
		},
		Refresh: RefreshConfig{
			IntervalSeconds: 5,
		},
		Process: ProcessConfig{
			TimeoutSeconds: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
