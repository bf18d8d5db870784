package catalog

const (
	procVM     = "/proc/sys/vm/"
	procKernel = "/proc/sys/kernel/"
	thpDir     = "/sys/kernel/mm/transparent_hugepage/"
)

func kernelTunable(key, path, description, recommended string) Descriptor {
	return Descriptor{
		Key:         key,
		Label:       key,
		Description: description,
		Recommended: recommended,
		Path:        path,
		Domain:      Domain{Kind: DomainFreeText},
	}
}

// thpTunable is a bracket-annotated file; the same file lists the legal values.
func thpTunable(key, file, description string) Descriptor {
	return Descriptor{
		Key:         key,
		Label:       key,
		Description: description,
		Path:        thpDir + file,
		Dynamic:     true,
		Domain: Domain{
			Kind:        DomainDynamicFile,
			ChoicesPath: thpDir + file,
		},
	}
}

func kernelDescriptors() []Descriptor {
	return []Descriptor{
		kernelTunable("compaction_proactiveness", procVM+"compaction_proactiveness",
			"Memory compaction proactiveness. Lower values reduce CPU overhead.", "0"),
		kernelTunable("watermark_boost_factor", procVM+"watermark_boost_factor",
			"Memory reclaim aggressiveness after fragmentation events.", "1"),
		kernelTunable("min_free_kbytes", procVM+"min_free_kbytes",
			"Minimum free memory kept in reserve. Keep between 1024 KB and 5% of RAM.", "1024"),
		kernelTunable("max_map_count", procVM+"max_map_count",
			"Maximum number of memory map areas per process.", "1048576"),
		kernelTunable("swappiness", procVM+"swappiness",
			"How aggressively pages are swapped. Lower values prefer RAM.", "10"),
		kernelTunable("dirty_ratio", procVM+"dirty_ratio",
			"Percent of memory that may hold dirty pages before writers block.", "15-20"),
		kernelTunable("dirty_background_ratio", procVM+"dirty_background_ratio",
			"Percent of memory at which background writeback starts.", "5-10"),
		kernelTunable("dirty_expire_centisecs", procVM+"dirty_expire_centisecs",
			"Age in centiseconds after which dirty data is written out.", "1500-3000"),
		kernelTunable("dirty_writeback_centisecs", procVM+"dirty_writeback_centisecs",
			"Interval in centiseconds between writeback wakeups.", "500-1500"),
		kernelTunable("vfs_cache_pressure", procVM+"vfs_cache_pressure",
			"Tendency to reclaim dentry and inode caches. Lower keeps caches longer.", "50-80"),
		thpTunable("thp_enabled", "enabled",
			"Transparent huge pages. Can improve throughput at the cost of memory."),
		thpTunable("thp_shmem_enabled", "shmem_enabled",
			"Transparent huge pages for shared memory."),
		thpTunable("thp_defrag", "defrag",
			"When the kernel compacts memory to make huge pages available."),
		kernelTunable("zone_reclaim_mode", procVM+"zone_reclaim_mode",
			"Zone reclaim on NUMA systems. Disabled is faster on most machines.", "0"),
		kernelTunable("page_lock_unfairness", procVM+"page_lock_unfairness",
			"Page lock unfairness before a waiter is handed the lock.", "1"),
		kernelTunable("sched_cfs_bandwidth_slice_us", procKernel+"sched_cfs_bandwidth_slice_us",
			"CFS bandwidth slice in microseconds.", "3000"),
		kernelTunable("sched_autogroup_enabled", procKernel+"sched_autogroup_enabled",
			"Automatic task grouping for desktop responsiveness.", "1"),
		kernelTunable("watchdog", procKernel+"watchdog",
			"Soft lockup detector.", "0"),
		kernelTunable("nmi_watchdog", procKernel+"nmi_watchdog",
			"NMI hard lockup detector.", "0"),
		kernelTunable("laptop_mode", procVM+"laptop_mode",
			"Laptop power-saving mode for disk I/O.", "0"),
	}
}
