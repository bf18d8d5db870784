package tui

import (
	"fmt"
	"strings"

	"voltgui/internal/hostinfo"
	"voltgui/internal/options"
	"voltgui/internal/profile"
	"voltgui/internal/reconcile"
)

var screenTitles = map[Screen]string{
	ScreenCPU:    "CPU",
	ScreenKernel: "Kernel",
	ScreenDisk:   "Disk",
	ScreenGPU:    "GPU",
}

func (m Model) renderFooter() string {
	var b strings.Builder
	if m.inputMode != inputNone {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render("Enter to confirm, Esc to cancel"))
		b.WriteString("\n")
	}
	if m.statusMessage != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Success.Render(m.statusMessage))
		b.WriteString("\n")
	}
	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render("⚠ " + m.lastError))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSettingsScreen() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render(screenTitles[m.currentScreen] + " Settings"))
	b.WriteString("\n")
	if sub, ok := screenSubsystem(m.currentScreen); ok {
		b.WriteString(m.renderPanelState(sub))
	}
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(m.theme.Muted.Render("No settings available on this system."))
		b.WriteString("\n")
	}

	group := ""
	for i, r := range m.rows {
		if r.group != "" && r.group != group {
			group = r.group
			b.WriteString(m.theme.Section.Render(group))
			b.WriteString("\n")
		}
		b.WriteString(m.renderRow(i, r))
		b.WriteString("\n")
	}

	if r, ok := m.currentRow(); ok {
		if r.desc.Description != "" {
			b.WriteString("\n")
			b.WriteString(m.theme.Muted.Render(r.desc.Description))
			if r.desc.Recommended != "" {
				b.WriteString(m.theme.Muted.Render(" Recommended: " + r.desc.Recommended))
			}
			b.WriteString("\n")
		}
	}

	if m.showPreview && m.currentScreen == ScreenGPU {
		b.WriteString(m.theme.Section.Render("Environment preview"))
		b.WriteString("\n")
		b.WriteString(m.theme.Value.Render(strings.TrimRight(m.envScript().Render(), "\n")))
		b.WriteString("\n")
	}

	hint := "←/→ change | Enter edit | u unset | a apply | r refresh | Esc back"
	if m.currentScreen == ScreenGPU {
		hint += " | p preview"
	}
	b.WriteString(m.theme.Hint.Render(hint))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderRow(i int, r row) string {
	label := fmt.Sprintf("%-28s", r.label)
	if i == m.cursor {
		label = m.theme.Selected.Render(label)
	} else {
		label = m.theme.Label.Render(label)
	}

	value := m.value(m.currentScreen, r)
	if r.freeText() && value == "" {
		value = "(unset)"
	}
	line := label + " " + m.theme.Value.Render(fmt.Sprintf("%-24s", value))

	if r.live {
		line += m.theme.Muted.Render(" current: " + r.current.Display())
	}
	if r.disabled != "" {
		line += " " + m.theme.Error.Render("["+r.disabled+"]")
	}
	return line
}

func (m Model) renderPanelState(sub reconcile.Subsystem) string {
	if m.deps.Controller == nil {
		return ""
	}
	state := m.deps.Controller.State(sub)
	switch {
	case state.Applying:
		return m.theme.Hint.Render("Applying...") + "\n"
	case state.Last != nil && !state.Last.OK():
		return m.theme.Error.Render(fmt.Sprintf("Last apply failed (exit %d)", state.Last.ExitCode)) + "\n"
	case state.Applied:
		return m.theme.Success.Render("Applied this session") + "\n"
	}
	return ""
}

func (m Model) renderProfilesScreen() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Profiles"))
	b.WriteString("\n\n")

	for i, name := range m.profiles {
		text := name
		if name == m.active {
			text += " (active)"
		}
		if i == m.profileCursor {
			b.WriteString(m.theme.Selected.Render(text))
		} else {
			b.WriteString(m.theme.Value.Render(text))
		}
		b.WriteString("\n")
	}

	if m.diffLines != nil {
		b.WriteString(m.theme.Section.Render("Diff " + m.diffTitle))
		b.WriteString("\n")
		for _, l := range m.diffLines {
			switch l.Op {
			case profile.DiffInsert:
				b.WriteString(m.theme.Added.Render(l.String()))
			case profile.DiffDelete:
				b.WriteString(m.theme.Removed.Render(l.String()))
			default:
				b.WriteString(m.theme.Muted.Render(l.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(m.theme.Hint.Render("Enter load | s save | n new | d delete | c compare with active | Esc back"))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderOptionsScreen() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Options"))
	b.WriteString("\n\n")

	for i, name := range options.Names() {
		label := fmt.Sprintf("%-20s", name)
		if i == m.optionCursor {
			label = m.theme.Selected.Render(label)
		} else {
			label = m.theme.Label.Render(label)
		}
		value, _ := m.opts.Get(name)
		b.WriteString(label + " " + m.theme.Value.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Hint.Render("←/→ change | Esc back"))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderStatusScreen renders the host and graphics overview
func (m Model) renderStatusScreen() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Status"))
	b.WriteString("\n")

	b.WriteString(m.theme.Section.Render("Profile"))
	b.WriteString("\n")
	b.WriteString(m.statusLine("Active", m.active))
	b.WriteString(m.statusLine("Restore on close", fmt.Sprintf("%t", m.opts.RestoreOnClose)))

	if h := m.deps.Host; h != nil {
		b.WriteString(m.theme.Section.Render("Host"))
		b.WriteString("\n")
		b.WriteString(m.statusLine("CPU", h.CPU.Model))
		b.WriteString(m.statusLine("Cores", fmt.Sprintf("%d physical, %d logical", h.CPU.PhysicalCore, h.CPU.LogicalCore)))
		for _, d := range h.Disks {
			b.WriteString(m.statusLine(d.Name, strings.TrimSpace(d.Model+" "+hostinfo.HumanSize(d.SizeBytes))))
		}
	}

	if g := m.deps.GPU; g != nil {
		b.WriteString(m.theme.Section.Render("Graphics"))
		b.WriteString("\n")
		for _, c := range g.Cards {
			b.WriteString(m.statusLine(c.Address, c.Label()))
		}
		if g.OpenGLRenderer != "" {
			b.WriteString(m.statusLine("OpenGL", g.OpenGLRenderer))
		}
		for _, d := range g.VulkanDevices {
			b.WriteString(m.statusLine("Vulkan", d))
		}
		if g.NVIDIA.NVMLOk {
			b.WriteString(m.statusLine("NVIDIA driver", g.NVIDIA.DriverVersion))
		}
		b.WriteString(m.statusLine("Vulkan ICDs", strings.Join(g.VulkanICDs, ", ")))
		b.WriteString(m.statusLine("MangoHud", fmt.Sprintf("%t", g.OverlayAvailable)))
	}

	b.WriteString(m.theme.Section.Render("Apply"))
	b.WriteString("\n")
	for _, sub := range reconcile.Subsystems {
		state := "idle"
		if m.deps.Controller != nil {
			s := m.deps.Controller.State(sub)
			switch {
			case s.Applying:
				state = "applying"
			case s.Applied:
				state = "applied"
			case s.Last != nil:
				state = "failed"
			}
		}
		b.WriteString(m.statusLine(subsystemLabel(sub), state))
	}

	b.WriteString(m.theme.Hint.Render("r refresh | Esc back | q quit"))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) statusLine(label, value string) string {
	if value == "" {
		value = "-"
	}
	return m.theme.Label.Render(fmt.Sprintf("  %-18s", label)) + m.theme.Value.Render(value) + "\n"
}

// renderHelpScreen renders the help screen
func (m Model) renderHelpScreen() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Help — Keyboard Shortcuts"))
	b.WriteString("\n")

	sections := []struct {
		title string
		keys  []string
	}{
		{"Navigation", []string{"1-7, ?", "Open a screen", "↑/↓ or k/j", "Move", "Enter/Space", "Select", "Esc", "Return to main menu", "q / Ctrl+C", "Quit volt-gui"}},
		{"Settings", []string{"←/→ or h/l", "Change value", "Enter", "Edit text values", "u", "Unset", "a", "Apply to the system", "p", "Preview launch environment (GPU)"}},
		{"Profiles", []string{"Enter", "Load", "s", "Save current settings", "n", "Save as a new profile", "d", "Delete (confirm with y)", "c", "Compare with the active profile"}},
	}

	for _, s := range sections {
		b.WriteString(m.theme.Section.Render(s.title))
		b.WriteString("\n")
		for i := 0; i+1 < len(s.keys); i += 2 {
			b.WriteString(m.theme.Label.Bold(true).Render(fmt.Sprintf("%-13s", s.keys[i])))
			b.WriteString(m.theme.Value.Render(s.keys[i+1]))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.theme.Hint.Render("Press Esc to return to menu"))
	b.WriteString("\n")
	return b.String()
}
