package catalog

const (
	// KeyDiskScheduler is the block queue I/O scheduler
	KeyDiskScheduler = "scheduler"

	// DiskSchedulerGlob matches every block device scheduler file
	DiskSchedulerGlob = "/sys/block/*/queue/scheduler"

	// DefaultDiskScheduler is assumed when a scheduler file lists nothing
	DefaultDiskScheduler = "mq-deadline"
)

func diskDescriptors() []Descriptor {
	return []Descriptor{
		{
			Key:         KeyDiskScheduler,
			Label:       "I/O Scheduler",
			Description: "Block layer scheduler for the device queue.",
			Path:        DiskSchedulerGlob,
			Dynamic:     true,
			Domain: Domain{
				Kind:     DomainDynamicFile,
				Defaults: []string{Unset},
			},
		},
	}
}

// DiskSettingKeys returns the per-device setting vocabulary.
func (s *Set) DiskSettingKeys() []string {
	return s.Disk.Keys()
}
