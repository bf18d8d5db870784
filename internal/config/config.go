package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"voltgui/internal/configdir"
)

const configFileName = "config.yaml"

// Load loads and merges configuration from system and user files
// Priority: defaults < system config < user config
func Load() (Config, error) {
	cfg := DefaultConfig()

	if err := mergeConfigFile(&cfg, SystemConfigPath()); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to load system config: %w", err)
	}

	if err := mergeConfigFile(&cfg, UserConfigPath()); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to load user config: %w", err)
	}

	if validationErrors := cfg.Validate(); len(validationErrors) > 0 {
		return cfg, fmt.Errorf("config.validation.error: %v", formatValidationErrors(validationErrors))
	}

	return cfg, nil
}

// LoadFrom loads configuration from a specific file path
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := mergeConfigFile(&cfg, path); err != nil {
		return cfg, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if validationErrors := cfg.Validate(); len(validationErrors) > 0 {
		return cfg, fmt.Errorf("config.validation.error: %v", formatValidationErrors(validationErrors))
	}

	return cfg, nil
}

// Marshal renders cfg as YAML
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func mergeConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path is constructed from trusted sources
	if err != nil {
		return err
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfig(cfg, &overlay)
	return nil
}

// mergeConfig merges non-zero values from src into dst
func mergeConfig(dst, src *Config) {
	if src.Helper.Path != "" {
		dst.Helper.Path = src.Helper.Path
	}
	if src.Helper.Elevator != "" {
		dst.Helper.Elevator = src.Helper.Elevator
	}

	if src.Paths.SysfsRoot != "" {
		dst.Paths.SysfsRoot = src.Paths.SysfsRoot
	}
	if src.Paths.ICDDir != "" {
		dst.Paths.ICDDir = src.Paths.ICDDir
	}
	if len(src.Paths.SchedulerSearch) > 0 {
		dst.Paths.SchedulerSearch = src.Paths.SchedulerSearch
	}
	if len(src.Paths.OverlaySearch) > 0 {
		dst.Paths.OverlaySearch = src.Paths.OverlaySearch
	}
	if src.Paths.BundleDir != "" {
		dst.Paths.BundleDir = src.Paths.BundleDir
	}
	if src.Paths.ScriptDir != "" {
		dst.Paths.ScriptDir = src.Paths.ScriptDir
	}

	if src.Refresh.IntervalSeconds != 0 {
		dst.Refresh.IntervalSeconds = src.Refresh.IntervalSeconds
	}
	if src.Process.TimeoutSeconds != 0 {
		dst.Process.TimeoutSeconds = src.Process.TimeoutSeconds
	}

	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.File != "" {
		dst.Logging.File = src.Logging.File
	}
}

func formatValidationErrors(errors []ValidationError) string {
	if len(errors) == 0 {
		return ""
	}
	if len(errors) == 1 {
		return errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(errors))
	for _, err := range errors {
		b.WriteString("  - " + err.Error() + "\n")
	}
	return b.String()
}

// SystemConfigPath returns the path to the system configuration file
func SystemConfigPath() string {
	return filepath.Join(configdir.SystemDir(), configFileName)
}

// UserConfigPath returns the path to the user configuration file
func UserConfigPath() string {
	return filepath.Join(configdir.UserDir(), configFileName)
}
