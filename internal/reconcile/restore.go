package reconcile

import (
	"sort"

	"voltgui/internal/catalog"
)

// Snapshot is the CPU and disk state captured at start-up.
type Snapshot struct {
	Governor string
	MaxFreq  string
	MinFreq  string
	// Disk maps device name to its scheduler.
	Disk map[string]string
}

// TakeSnapshot records the live values that a restore puts back. Values
// that cannot be read are left empty and are not restored.
func (p *Planner) TakeSnapshot() Snapshot {
	snap := Snapshot{Disk: map[string]string{}}

	read := func(key string) string {
		d, ok := p.set.CPU.Lookup(key)
		if !ok {
			return ""
		}
		return p.reader.ReadCurrent(d).Value
	}
	snap.Governor = read(catalog.KeyGovernor)
	snap.MaxFreq = read(catalog.KeyMaxFreq)
	snap.MinFreq = read(catalog.KeyMinFreq)

	for _, e := range p.reader.DiskSchedulers() {
		snap.Disk[e.Device] = e.Current
	}

	p.logger.Debug("reconcile.snapshot", "Captured start-up state", map[string]interface{}{
		"governor": snap.Governor,
		"devices":  len(snap.Disk),
	})
	return snap
}

// PlanRestore returns the plans that put snap back for every applied
// subsystem. Any sched_ext scheduler is stopped.
func (p *Planner) PlanRestore(snap Snapshot, applied []Subsystem) []HelperPlan {
	var plans []HelperPlan
	for _, sub := range applied {
		switch sub {
		case SubsystemCPU:
			var entries []string
			for _, kv := range [][2]string{
				{catalog.KeyGovernor, snap.Governor},
				{catalog.KeyMaxFreq, snap.MaxFreq},
				{catalog.KeyMinFreq, snap.MinFreq},
				{catalog.KeyScheduler, catalog.SchedulerNone},
			} {
				if kv[1] != "" {
					entries = append(entries, kv[0]+":"+kv[1])
				}
			}
			plans = append(plans, HelperPlan{Subsystem: SubsystemCPU, Args: p.helper.args(flagCPU, entries)})
		case SubsystemDisk:
			if len(snap.Disk) == 0 {
				continue
			}
			devices := make([]string, 0, len(snap.Disk))
			for dev := range snap.Disk {
				devices = append(devices, dev)
			}
			sort.Strings(devices)
			entries := make([]string, len(devices))
			for i, dev := range devices {
				entries[i] = dev + ":" + snap.Disk[dev]
			}
			plans = append(plans, HelperPlan{Subsystem: SubsystemDisk, Args: p.helper.args(flagDisk, entries)})
		}
	}
	return plans
}
