package diag

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"voltgui/internal/logging"
)

// Collector gathers bundle artifacts
type Collector struct {
	config   *Config
	redactor *Redactor
	logger   *logging.Logger
	hostInfo func() (*host.InfoStat, error)
}

// NewCollector creates a new collector
func NewCollector(config *Config, logger *logging.Logger) *Collector {
	return &Collector{
		config:   config,
		redactor: NewRedactor(),
		logger:   logger,
		hostInfo: host.Info,
	}
}

// CollectLogs gathers every .log file below the log directory
func (c *Collector) CollectLogs() (map[string][]byte, error) {
	if !c.config.IncludeLogs {
		return nil, nil
	}

	files := make(map[string][]byte)

	if _, err := os.Stat(c.config.LogDir); os.IsNotExist(err) {
		c.logger.Warn("diag.collect.logs.missing", "Log directory not found", map[string]interface{}{
			"path": c.config.LogDir,
		})
		return files, nil
	}

	err := filepath.Walk(c.config.LogDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			c.logger.Warn("diag.collect.logs.walk_error", "Error accessing file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return nil
		}
		if info.IsDir() || filepath.Ext(path) != ".log" {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn("diag.collect.logs.read_error", "Failed to read log file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			return nil
		}

		relPath, err := filepath.Rel(c.config.LogDir, path)
		if err != nil {
			relPath = filepath.Base(path)
		}
		files["logs/"+relPath] = []byte(c.redactor.Redact(string(content)))
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to walk log directory: %w", err)
	}

	c.logger.Info("diag.collect.logs.complete", "Log collection complete", map[string]interface{}{
		"file_count": len(files),
	})
	return files, nil
}

// CollectProfiles gathers the INI files of the config directory (profiles
// and options) with launch option secrets redacted.
func (c *Collector) CollectProfiles() (map[string][]byte, error) {
	if !c.config.IncludeProfiles {
		return nil, nil
	}

	files := make(map[string][]byte)

	matches, err := filepath.Glob(filepath.Join(c.config.ConfigDir, "*.ini"))
	if err != nil {
		return files, fmt.Errorf("failed to list profiles: %w", err)
	}
	sort.Strings(matches)

	for _, path := range matches {
		content, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			c.logger.Warn("diag.collect.profiles.read_error", "Failed to read profile", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		files["config/"+filepath.Base(path)] = []byte(c.redactor.Redact(string(content)))
	}

	c.logger.Info("diag.collect.profiles.complete", "Profile collection complete", map[string]interface{}{
		"file_count": len(files),
	})
	return files, nil
}

// CollectExtra redacts the generated artifacts supplied by the caller.
func (c *Collector) CollectExtra() map[string][]byte {
	files := make(map[string][]byte, len(c.config.Extra))
	for path, content := range c.config.Extra {
		files[path] = []byte(c.redactor.Redact(string(content)))
	}
	return files
}

// CollectSystemInfo gathers host and version information
func (c *Collector) CollectSystemInfo() (map[string][]byte, error) {
	files := make(map[string][]byte)

	sysInfo := map[string]interface{}{
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"volt_gui_version": c.config.Version,
	}

	if info, err := c.hostInfo(); err != nil {
		c.logger.Warn("diag.collect.sysinfo.host_error", "Failed to query host info", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		sysInfo["platform"] = info.Platform
		sysInfo["platform_version"] = info.PlatformVersion
		sysInfo["kernel"] = info.KernelVersion
		sysInfo["arch"] = info.KernelArch
		sysInfo["virtualization"] = info.VirtualizationSystem
	}

	sysInfoJSON, err := json.MarshalIndent(sysInfo, "", "  ")
	if err != nil {
		return files, fmt.Errorf("failed to marshal system info: %w", err)
	}
	files["system_info.json"] = sysInfoJSON

	c.logger.Info("diag.collect.sysinfo.complete", "System info collection complete", nil)
	return files, nil
}

// CalculateSHA256 computes SHA256 hash of data
func CalculateSHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
