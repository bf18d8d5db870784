package reconcile

import (
	"context"
	"sort"
	"strings"

	"voltgui/internal/catalog"
	"voltgui/internal/logging"
	"voltgui/internal/procexec"
	"voltgui/internal/sysfs"
)

// Subsystem names one independently applied group of settings.
type Subsystem string

const (
	SubsystemCPU    Subsystem = "cpu"
	SubsystemKernel Subsystem = "kernel"
	SubsystemDisk   Subsystem = "disk"
	SubsystemGPU    Subsystem = "gpu"
)

// Subsystems lists every subsystem in apply order.
var Subsystems = []Subsystem{SubsystemCPU, SubsystemKernel, SubsystemDisk, SubsystemGPU}

// ParseSubsystem maps a name to a Subsystem.
func ParseSubsystem(name string) (Subsystem, bool) {
	for _, s := range Subsystems {
		if string(s) == strings.ToLower(name) {
			return s, true
		}
	}
	return "", false
}

const (
	flagCPU    = "-c"
	flagKernel = "-k"
	flagDisk   = "-d"
	flagGPU    = "-g"
)

// Change is one managed setting with its requested and live value.
type Change struct {
	Key     string
	Target  string
	Current string
}

// Pending reports whether the live value differs from the target.
func (c Change) Pending() bool { return c.Target != c.Current }

// HelperPlan is one privileged helper invocation.
type HelperPlan struct {
	Subsystem Subsystem
	// Args is the full command line, elevator first. Empty when there is
	// nothing to run.
	Args           []string
	AlreadyApplied bool
	Changes        []Change
}

// Empty reports whether the plan has no command to run.
func (p HelperPlan) Empty() bool { return len(p.Args) == 0 }

// Command splits Args into program and arguments.
func (p HelperPlan) Command() (string, []string) {
	if p.Empty() {
		return "", nil
	}
	return p.Args[0], p.Args[1:]
}

// Pending returns the changes whose live value differs from the target.
func (p HelperPlan) Pending() []Change {
	var out []Change
	for _, c := range p.Changes {
		if c.Pending() {
			out = append(out, c)
		}
	}
	return out
}

// Helper locates the privileged helper and the program used to elevate it.
type Helper struct {
	Elevator string
	Path     string
}

func (h Helper) args(flag string, entries []string) []string {
	var out []string
	if h.Elevator != "" {
		out = append(out, h.Elevator)
	}
	out = append(out, h.Path, flag)
	return append(out, entries...)
}

// Planner turns selections into helper plans by comparing them with the
// live system.
type Planner struct {
	set    *catalog.Set
	reader *sysfs.Reader
	runner procexec.Runner
	helper Helper
	logger *logging.Logger
}

// NewPlanner creates a planner.
func NewPlanner(set *catalog.Set, reader *sysfs.Reader, runner procexec.Runner, helper Helper, logger *logging.Logger) *Planner {
	return &Planner{set: set, reader: reader, runner: runner, helper: helper, logger: logger}
}

// finish fills Args unless every change is already live.
func (p *Planner) finish(plan HelperPlan, flag string, entries []string) HelperPlan {
	if len(plan.Pending()) == 0 {
		plan.AlreadyApplied = true
		p.logger.Info("reconcile.plan.applied", "Settings already match the system", map[string]interface{}{
			"subsystem": string(plan.Subsystem),
			"entries":   len(plan.Changes),
		})
		return plan
	}
	plan.Args = p.helper.args(flag, entries)
	return plan
}

// PlanCPU plans governor, frequency bounds and scheduler changes.
func (p *Planner) PlanCPU(ctx context.Context, sel map[string]string) HelperPlan {
	plan := HelperPlan{Subsystem: SubsystemCPU}
	var entries []string

	for _, d := range p.set.CPU.Descriptors() {
		v := strings.TrimSpace(sel[d.Key])
		if d.IsDefault(v) {
			continue
		}

		var current string
		if d.Key == catalog.KeyScheduler {
			current = procexec.RunningScheduler(ctx, p.runner)
		} else {
			current = p.reader.ReadCurrent(d).Value
		}

		plan.Changes = append(plan.Changes, Change{Key: d.Key, Target: v, Current: current})
		entries = append(entries, d.Key+":"+v)
	}
	return p.finish(plan, flagCPU, entries)
}

// PlanKernel plans writes of kernel tunables.
func (p *Planner) PlanKernel(sel map[string]string) HelperPlan {
	plan := HelperPlan{Subsystem: SubsystemKernel}
	var entries []string

	for _, d := range p.set.Kernel.Descriptors() {
		v := strings.TrimSpace(sel[d.Key])
		if d.IsDefault(v) || d.Path == "" {
			continue
		}

		current := p.reader.ReadCurrent(d).Value
		plan.Changes = append(plan.Changes, Change{Key: d.Key, Target: v, Current: current})
		entries = append(entries, d.Path+":"+v)
	}
	return p.finish(plan, flagKernel, entries)
}

// PlanDisk plans per-device scheduler changes. Devices are ordered by name.
func (p *Planner) PlanDisk(sel map[string]map[string]string) HelperPlan {
	plan := HelperPlan{Subsystem: SubsystemDisk}
	var entries []string

	devices := make([]string, 0, len(sel))
	for dev := range sel {
		devices = append(devices, dev)
	}
	sort.Strings(devices)

	for _, dev := range devices {
		v := strings.TrimSpace(sel[dev][catalog.KeyDiskScheduler])
		if v == "" || v == catalog.Unset {
			continue
		}
		current := p.reader.DiskScheduler(dev).Value
		plan.Changes = append(plan.Changes, Change{Key: dev, Target: v, Current: current})
		entries = append(entries, dev+":"+v)
	}
	return p.finish(plan, flagDisk, entries)
}

// PlanGPU hands a written environment script to the helper.
func (p *Planner) PlanGPU(scriptPath string) HelperPlan {
	return HelperPlan{
		Subsystem: SubsystemGPU,
		Args:      p.helper.args(flagGPU, []string{scriptPath}),
	}
}
