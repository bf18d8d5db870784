package config

import "time"

// Config represents the complete volt-gui configuration
type Config struct {
	Helper  HelperConfig  `yaml:"helper"`
	Paths   PathsConfig   `yaml:"paths"`
	Refresh RefreshConfig `yaml:"refresh"`
	Process ProcessConfig `yaml:"process"`
	Logging LoggingConfig `yaml:"logging"`
}

// HelperConfig describes the privileged helper invocation
type HelperConfig struct {
	Path     string `yaml:"path"`
	Elevator string `yaml:"elevator"`
}

// PathsConfig holds filesystem locations the reader and probes consult
type PathsConfig struct {
	SysfsRoot       string   `yaml:"sysfs_root"`
	ICDDir          string   `yaml:"icd_dir"`
	SchedulerSearch []string `yaml:"scheduler_search"`
	OverlaySearch   []string `yaml:"overlay_search"`
	BundleDir       string   `yaml:"bundle_dir"`
	ScriptDir       string   `yaml:"script_dir"`
}

// RefreshConfig controls the periodic current-value refresh
type RefreshConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// ProcessConfig bounds query subprocesses
type ProcessConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// RefreshInterval returns the refresh tick as a duration
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh.IntervalSeconds) * time.Second
}

// ProcessTimeout returns the bounded wait for query subprocesses
func (c Config) ProcessTimeout() time.Duration {
	return time.Duration(c.Process.TimeoutSeconds) * time.Second
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
