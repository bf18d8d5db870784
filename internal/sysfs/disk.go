package sysfs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"voltgui/internal/catalog"
)

// DiskSettingEntry is the scheduler state of one block device.
type DiskSettingEntry struct {
	Device    string
	Path      string
	Current   string
	Available []string
}

// DiskSchedulers discovers every block device exposing a queue scheduler.
// Devices whose file cannot be read are skipped. The result is sorted by
// device name and rebuilt on every call.
func (r *Reader) DiskSchedulers() []DiskSettingEntry {
	matches, err := filepath.Glob(r.Resolve(catalog.DiskSchedulerGlob))
	if err != nil {
		r.logger.Warn("sysfs.disk.glob.failed", "Failed to list block devices", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	sort.Strings(matches)

	entries := make([]DiskSettingEntry, 0, len(matches))
	for _, m := range matches {
		device := deviceFromPath(m)
		path := schedulerPath(device)

		content, err := r.readFile(path)
		if err != nil {
			r.logger.Debug("sysfs.disk.read.failed", "Skipping block device", map[string]interface{}{
				"device": device,
				"error":  err.Error(),
			})
			continue
		}

		current, available := ParseScheduler(content)
		entries = append(entries, DiskSettingEntry{
			Device:    device,
			Path:      path,
			Current:   current,
			Available: available,
		})
	}
	return entries
}

// DiskScheduler reads the active scheduler of one device.
func (r *Reader) DiskScheduler(device string) Reading {
	content, err := r.readFile(schedulerPath(device))
	if err != nil {
		return Reading{Err: err}
	}
	current, _ := ParseScheduler(content)
	return Reading{Value: current}
}

// ParseScheduler parses a queue scheduler file such as
// "mq-deadline kyber [bfq] none". Content without tokens falls back to
// mq-deadline. The available list always contains the current scheduler.
func ParseScheduler(content string) (string, []string) {
	tokens := ParseTokens(content)
	if len(tokens) == 0 {
		return catalog.DefaultDiskScheduler, []string{catalog.DefaultDiskScheduler}
	}

	current, _ := ParseBracketed(content)
	return current, union(tokens, []string{current})
}

// deviceFromPath returns the device element of .../block/<dev>/queue/scheduler.
func deviceFromPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < 3 {
		return path
	}
	return parts[len(parts)-3]
}

func schedulerPath(device string) string {
	return fmt.Sprintf("/sys/block/%s/queue/scheduler", device)
}
