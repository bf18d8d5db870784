package tui

import (
	"context"
	"slices"

	"voltgui/internal/catalog"
	"voltgui/internal/procexec"
	"voltgui/internal/reconcile"
	"voltgui/internal/sysfs"
)

// launchOptionsKey identifies the launch options row of the GPU screen.
const launchOptionsKey = "launch_options"

// row is one editable setting on a settings screen.
type row struct {
	key   string
	label string
	group string
	desc  catalog.Descriptor
	// choices is nil for free-text settings.
	choices []string
	current sysfs.Reading
	// live is false for settings that have no system value to show.
	live     bool
	disabled string
}

func (r row) freeText() bool { return r.choices == nil }

// screenSubsystem maps a settings screen to the subsystem it applies.
func screenSubsystem(s Screen) (reconcile.Subsystem, bool) {
	switch s {
	case ScreenCPU:
		return reconcile.SubsystemCPU, true
	case ScreenKernel:
		return reconcile.SubsystemKernel, true
	case ScreenDisk:
		return reconcile.SubsystemDisk, true
	case ScreenGPU:
		return reconcile.SubsystemGPU, true
	}
	return "", false
}

// buildRows reads choices and live values for a settings screen.
func (m Model) buildRows(ctx context.Context, s Screen) []row {
	switch s {
	case ScreenCPU:
		return m.cpuRows(ctx)
	case ScreenKernel:
		return m.kernelRows()
	case ScreenDisk:
		return m.diskRows()
	case ScreenGPU:
		return m.gpuRows()
	}
	return nil
}

func (m Model) cpuRows(ctx context.Context) []row {
	var rows []row
	for _, d := range m.deps.Set.CPU.Descriptors() {
		r := row{key: d.Key, label: d.Label, desc: d, live: true}

		if d.Key == catalog.KeyScheduler {
			running := procexec.RunningScheduler(ctx, m.deps.Runner)
			r.current = sysfs.Reading{Value: running}
			r.choices, _ = m.deps.Reader.Choices(d)
			if !slices.Contains(r.choices, running) {
				r.choices = append(r.choices, running)
			}
			rows = append(rows, r)
			continue
		}

		r.current = m.deps.Reader.ReadCurrent(d)
		choices, err := m.deps.Reader.Choices(d)
		if err != nil || len(choices) == 0 {
			r.choices = []string{catalog.Unset}
			r.disabled = "not available"
		} else {
			r.choices = choices
		}
		rows = append(rows, r)
	}
	return rows
}

func (m Model) kernelRows() []row {
	var rows []row
	for _, d := range m.deps.Set.Kernel.Descriptors() {
		r := row{key: d.Key, label: d.Label, desc: d, live: true}
		r.current = m.deps.Reader.ReadCurrent(d)
		if !m.deps.Reader.Available(d) {
			r.disabled = "not available"
		}
		if d.Domain.Kind != catalog.DomainFreeText {
			choices, err := m.deps.Reader.Choices(d)
			if err != nil {
				choices = nil
				r.disabled = "not available"
			}
			if !slices.Contains(choices, catalog.Unset) {
				choices = append([]string{catalog.Unset}, choices...)
			}
			r.choices = choices
		}
		rows = append(rows, r)
	}
	return rows
}

func (m Model) diskRows() []row {
	var rows []row
	for _, e := range m.deps.Reader.DiskSchedulers() {
		label := e.Device
		if m.deps.Host != nil {
			if disk, ok := m.deps.Host.Lookup(e.Device); ok && disk.Model != "" {
				label += " (" + disk.Model + ")"
			}
		}
		choices := append([]string{catalog.Unset}, e.Available...)
		rows = append(rows, row{
			key:     e.Device,
			label:   label,
			choices: choices,
			current: sysfs.Reading{Value: e.Current},
			live:    true,
		})
	}
	return rows
}

func (m Model) gpuRows() []row {
	var rows []row
	for _, c := range m.deps.Set.GPU {
		if c.Category() == catalog.CategoryNVIDIA && !m.deps.NVIDIAAvailable {
			continue
		}
		for _, d := range c.Descriptors() {
			r := row{key: d.Key, label: d.Label, group: c.Label(), desc: d}
			choices, err := m.deps.Reader.Choices(d)
			if err != nil || len(choices) == 0 {
				choices = []string{catalog.Unset}
			}
			r.choices = choices
			if c.Category() == catalog.CategoryRenderPipeline && !m.deps.OverlayAvailable {
				r.disabled = catalog.OverlayCommand + " not installed"
			}
			rows = append(rows, r)
		}
	}
	rows = append(rows, row{key: launchOptionsKey, label: "Launch options", group: "Launch Options"})
	return rows
}

// value returns the selection shown for r on screen s.
func (m Model) value(s Screen, r row) string {
	var v string
	switch s {
	case ScreenCPU:
		v = m.sel.CPU[r.key]
	case ScreenKernel:
		v = m.sel.Kernel[r.key]
	case ScreenDisk:
		v = m.sel.Disk[r.key][catalog.KeyDiskScheduler]
	case ScreenGPU:
		if r.key == launchOptionsKey {
			return m.sel.LaunchOptions
		}
		v = m.sel.GPU[r.key]
	}
	if v == "" && !r.freeText() {
		return catalog.Unset
	}
	return v
}

// setValue records a selection. Sentinel and empty values clear it.
func (m *Model) setValue(s Screen, r row, v string) {
	unset := v == "" || v == catalog.Unset
	switch s {
	case ScreenCPU:
		setOrDelete(m.sel.CPU, r.key, v, unset)
	case ScreenKernel:
		setOrDelete(m.sel.Kernel, r.key, v, unset)
	case ScreenDisk:
		if unset {
			delete(m.sel.Disk[r.key], catalog.KeyDiskScheduler)
			if len(m.sel.Disk[r.key]) == 0 {
				delete(m.sel.Disk, r.key)
			}
			return
		}
		m.sel.SetDisk(r.key, catalog.KeyDiskScheduler, v)
	case ScreenGPU:
		if r.key == launchOptionsKey {
			m.sel.LaunchOptions = v
			return
		}
		setOrDelete(m.sel.GPU, r.key, v, unset)
	}
}

func setOrDelete(values map[string]string, key, v string, unset bool) {
	if unset {
		delete(values, key)
		return
	}
	values[key] = v
}

// cycle moves the selection of r by delta through its choices.
func (m *Model) cycle(s Screen, r row, delta int) {
	if r.freeText() || len(r.choices) == 0 {
		return
	}
	i := slices.Index(r.choices, m.value(s, r))
	if i < 0 {
		i = 0
	} else {
		i = (i + delta + len(r.choices)) % len(r.choices)
	}
	m.setValue(s, r, r.choices[i])
}
