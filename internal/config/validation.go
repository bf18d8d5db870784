package config

import (
	"fmt"
	"path/filepath"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateHelper()...)
	errors = append(errors, c.validatePaths()...)
	errors = append(errors, c.validateTimers()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateHelper() []ValidationError {
	var errors []ValidationError

	if !filepath.IsAbs(c.Helper.Path) {
		errors = append(errors, ValidationError{
			Path:    "helper.path",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Helper.Path),
		})
	}
	if c.Helper.Elevator == "" {
		errors = append(errors, ValidationError{
			Path:    "helper.elevator",
			Message: "must not be empty",
		})
	}

	return errors
}

func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	if !filepath.IsAbs(c.Paths.SysfsRoot) {
		errors = append(errors, ValidationError{
			Path:    "paths.sysfs_root",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Paths.SysfsRoot),
		})
	}
	if !filepath.IsAbs(c.Paths.ICDDir) {
		errors = append(errors, ValidationError{
			Path:    "paths.icd_dir",
			Message: fmt.Sprintf("must be an absolute path, got '%s'", c.Paths.ICDDir),
		})
	}
	for i, dir := range c.Paths.SchedulerSearch {
		if !filepath.IsAbs(dir) {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("paths.scheduler_search[%d]", i),
				Message: fmt.Sprintf("must be an absolute path, got '%s'", dir),
			})
		}
	}
	for i, dir := range c.Paths.OverlaySearch {
		if !filepath.IsAbs(dir) {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("paths.overlay_search[%d]", i),
				Message: fmt.Sprintf("must be an absolute path, got '%s'", dir),
			})
		}
	}

	return errors
}

func (c *Config) validateTimers() []ValidationError {
	var errors []ValidationError

	if c.Refresh.IntervalSeconds < 1 || c.Refresh.IntervalSeconds > 3600 {
		errors = append(errors, ValidationError{
			Path:    "refresh.interval_seconds",
			Message: fmt.Sprintf("must be between 1 and 3600, got %d", c.Refresh.IntervalSeconds),
		})
	}
	if c.Process.TimeoutSeconds < 1 || c.Process.TimeoutSeconds > 120 {
		errors = append(errors, ValidationError{
			Path:    "process.timeout_seconds",
			Message: fmt.Sprintf("must be between 1 and 120, got %d", c.Process.TimeoutSeconds),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	if contains(validLogLevels, c.Logging.Level) {
		return nil
	}

	return []ValidationError{{
		Path:    "logging.level",
		Message: fmt.Sprintf("must be one of %v, got '%s'", validLogLevels, c.Logging.Level),
	}}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
