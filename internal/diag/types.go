// Package diag builds support bundles: a ZIP of logs, profiles, options
// and probe reports with secrets redacted.
package diag

import "time"

// Manifest represents the bundle manifest
type Manifest struct {
	Timestamp      string         `json:"timestamp"`
	Host           string         `json:"host"`
	Kernel         string         `json:"kernel,omitempty"`
	VoltGUIVersion string         `json:"volt_gui_version"`
	Files          []ManifestFile `json:"files"`
}

// ManifestFile represents a file in the bundle
type ManifestFile struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256"`
}

// Config configures bundle collection
type Config struct {
	LogDir          string
	ConfigDir       string
	OutputPath      string
	IncludeLogs     bool
	IncludeProfiles bool
	Version         string
	// Extra holds generated artifacts (reports, effective config) keyed by
	// their path inside the archive. They are redacted like files on disk.
	Extra map[string][]byte
}

// NewConfig creates a default bundle config
func NewConfig(version, logDir, configDir string) *Config {
	return &Config{
		LogDir:          logDir,
		ConfigDir:       configDir,
		OutputPath:      generateOutputPath(),
		IncludeLogs:     true,
		IncludeProfiles: true,
		Version:         version,
		Extra:           map[string][]byte{},
	}
}

func generateOutputPath() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return "volt-gui-diag-" + timestamp + ".zip"
}
