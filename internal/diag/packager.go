package diag

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"voltgui/internal/logging"
)

// Packager creates support bundle ZIP files
type Packager struct {
	config    *Config
	collector *Collector
	logger    *logging.Logger
}

// NewPackager creates a new packager
func NewPackager(config *Config, logger *logging.Logger) *Packager {
	return &Packager{
		config:    config,
		collector: NewCollector(config, logger),
		logger:    logger,
	}
}

// CreatePackage collects every artifact and writes the ZIP. Collection
// failures are logged and leave a partial bundle.
func (p *Packager) CreatePackage() (string, error) {
	p.logger.Info("diag.package.start", "Creating support bundle", map[string]interface{}{
		"output": p.config.OutputPath,
	})

	allFiles := make(map[string][]byte)
	merge := func(files map[string][]byte) {
		for path, content := range files {
			allFiles[path] = content
		}
	}

	logs, err := p.collector.CollectLogs()
	if err != nil {
		p.logger.Error("diag.package.logs_error", "Failed to collect logs", map[string]interface{}{
			"error": err.Error(),
		})
	}
	merge(logs)

	profiles, err := p.collector.CollectProfiles()
	if err != nil {
		p.logger.Error("diag.package.profiles_error", "Failed to collect profiles", map[string]interface{}{
			"error": err.Error(),
		})
	}
	merge(profiles)

	merge(p.collector.CollectExtra())

	sysInfo, err := p.collector.CollectSystemInfo()
	if err != nil {
		p.logger.Error("diag.package.sysinfo_error", "Failed to collect system info", map[string]interface{}{
			"error": err.Error(),
		})
	}
	merge(sysInfo)

	manifest := p.createManifest(allFiles)
	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	allFiles["diag_manifest.json"] = manifestJSON

	if err := p.createZIP(allFiles); err != nil {
		return "", fmt.Errorf("failed to create ZIP: %w", err)
	}

	p.logger.Info("diag.package.complete", "Support bundle created", map[string]interface{}{
		"output":     p.config.OutputPath,
		"file_count": len(allFiles),
	})
	return p.config.OutputPath, nil
}

func (p *Packager) createManifest(files map[string][]byte) *Manifest {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	manifest := &Manifest{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Host:           hostname,
		VoltGUIVersion: p.config.Version,
		Files:          make([]ManifestFile, 0, len(files)),
	}
	if info, err := p.collector.hostInfo(); err == nil {
		manifest.Kernel = info.KernelVersion
	}

	for _, path := range sortedPaths(files) {
		manifest.Files = append(manifest.Files, ManifestFile{
			Path:      path,
			SizeBytes: int64(len(files[path])),
			SHA256:    CalculateSHA256(files[path]),
		})
	}
	return manifest
}

func (p *Packager) createZIP(files map[string][]byte) (err error) {
	zipFile, err := os.Create(p.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	for _, path := range sortedPaths(files) {
		writer, err := zipWriter.Create(path)
		if err != nil {
			p.logger.Warn("diag.package.zip.file_error", "Failed to add file to ZIP", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		if _, err := writer.Write(files[path]); err != nil {
			p.logger.Warn("diag.package.zip.write_error", "Failed to write file to ZIP", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}
	return zipWriter.Close()
}

func sortedPaths(files map[string][]byte) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
