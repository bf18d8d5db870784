// Package hostinfo summarizes the CPU and block devices for the status
// view.
package hostinfo

import (
	"fmt"

	"github.com/jaypipes/ghw/pkg/block"
	"github.com/shirou/gopsutil/v4/cpu"

	"voltgui/internal/logging"
)

// CPU describes the processor model.
type CPU struct {
	Model        string  `json:"model"`
	Vendor       string  `json:"vendor"`
	PhysicalCore int     `json:"physical_cores"`
	LogicalCore  int     `json:"logical_cores"`
	MaxMHz       float64 `json:"max_mhz"`
}

// Disk describes one block device.
type Disk struct {
	Name      string `json:"name"`
	Model     string `json:"model"`
	Vendor    string `json:"vendor"`
	SizeBytes uint64 `json:"size_bytes"`
	Type      string `json:"type"`
	Removable bool   `json:"removable"`
}

// Summary is the host overview.
type Summary struct {
	CPU    CPU      `json:"cpu"`
	Disks  []Disk   `json:"disks"`
	Errors []string `json:"errors,omitempty"`
}

// Sources abstracts the hardware queries so tests can supply fixtures.
type Sources struct {
	CPUInfo   func() ([]cpu.InfoStat, error)
	CPUCounts func(logical bool) (int, error)
	Block     func() ([]Disk, error)
}

// SystemSources queries the running host.
func SystemSources() Sources {
	return Sources{
		CPUInfo:   cpu.Info,
		CPUCounts: cpu.Counts,
		Block:     blockDisks,
	}
}

// Collect builds the summary. Failures are recorded in Summary.Errors.
func Collect(src Sources, logger *logging.Logger) Summary {
	s := Summary{Disks: []Disk{}}

	if src.CPUInfo != nil {
		infos, err := src.CPUInfo()
		switch {
		case err != nil:
			s.Errors = append(s.Errors, fmt.Sprintf("cpu info: %v", err))
		case len(infos) > 0:
			s.CPU = summarizeCPU(infos)
		}
	}

	if src.CPUCounts != nil {
		if n, err := src.CPUCounts(true); err == nil {
			s.CPU.LogicalCore = n
		}
		if n, err := src.CPUCounts(false); err == nil && n > 0 {
			s.CPU.PhysicalCore = n
		}
	}

	if src.Block != nil {
		disks, err := src.Block()
		if err != nil {
			s.Errors = append(s.Errors, fmt.Sprintf("block devices: %v", err))
		} else {
			s.Disks = disks
		}
	}

	if len(s.Errors) > 0 {
		logger.Warn("hostinfo.collect.partial", "Host summary incomplete", map[string]interface{}{
			"errors": s.Errors,
		})
	}
	return s
}

func summarizeCPU(infos []cpu.InfoStat) CPU {
	first := infos[0]
	c := CPU{
		Model:  first.ModelName,
		Vendor: first.VendorID,
	}
	for _, info := range infos {
		c.PhysicalCore += int(info.Cores)
		if info.Mhz > c.MaxMHz {
			c.MaxMHz = info.Mhz
		}
	}
	return c
}

func blockDisks() ([]Disk, error) {
	info, err := block.New()
	if err != nil {
		return nil, fmt.Errorf("enumerate block devices: %w", err)
	}
	disks := make([]Disk, 0, len(info.Disks))
	for _, d := range info.Disks {
		disks = append(disks, Disk{
			Name:      d.Name,
			Model:     d.Model,
			Vendor:    d.Vendor,
			SizeBytes: d.SizeBytes,
			Type:      d.DriveType.String(),
			Removable: d.IsRemovable,
		})
	}
	return disks, nil
}

// Lookup returns the disk with the given kernel name.
func (s Summary) Lookup(name string) (Disk, bool) {
	for _, d := range s.Disks {
		if d.Name == name {
			return d, true
		}
	}
	return Disk{}, false
}

// HumanSize formats a byte count with binary units.
func HumanSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
