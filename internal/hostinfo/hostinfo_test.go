package hostinfo

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltgui/internal/logging"
)

func TestCollect(t *testing.T) {
	src := Sources{
		CPUInfo: func() ([]cpu.InfoStat, error) {
			return []cpu.InfoStat{{ModelName: "AMD Ryzen 7 7800X3D 8-Core Processor", VendorID: "AuthenticAMD", Cores: 8, Mhz: 5050}}, nil
		},
		CPUCounts: func(logical bool) (int, error) {
			if logical {
				return 16, nil
			}
			return 8, nil
		},
		Block: func() ([]Disk, error) {
			return []Disk{{Name: "nvme0n1", Model: "Samsung SSD 980", SizeBytes: 1 << 40, Type: "SSD"}}, nil
		},
	}

	s := Collect(src, logging.Discard())

	assert.Equal(t, "AMD Ryzen 7 7800X3D 8-Core Processor", s.CPU.Model)
	assert.Equal(t, 16, s.CPU.LogicalCore)
	assert.Equal(t, 8, s.CPU.PhysicalCore)
	assert.InDelta(t, 5050, s.CPU.MaxMHz, 0.01)
	require.Len(t, s.Disks, 1)
	assert.Empty(t, s.Errors)

	d, ok := s.Lookup("nvme0n1")
	assert.True(t, ok)
	assert.Equal(t, "Samsung SSD 980", d.Model)
	_, ok = s.Lookup("sda")
	assert.False(t, ok)
}

func TestCollect_RecordsFailures(t *testing.T) {
	src := Sources{
		CPUInfo: func() ([]cpu.InfoStat, error) { return nil, errors.New("no /proc/cpuinfo") },
		Block:   func() ([]Disk, error) { return nil, errors.New("no /sys/block") },
	}

	s := Collect(src, logging.Discard())

	assert.Len(t, s.Errors, 2)
	assert.NotNil(t, s.Disks)
	assert.Empty(t, s.CPU.Model)
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{500 * 1024 * 1024 * 1024, "500.0 GiB"},
		{1 << 40, "1.0 TiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.in))
	}
}
