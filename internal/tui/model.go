package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"voltgui/internal/apply"
	"voltgui/internal/catalog"
	"voltgui/internal/gpu"
	"voltgui/internal/hostinfo"
	"voltgui/internal/logging"
	"voltgui/internal/options"
	"voltgui/internal/procexec"
	"voltgui/internal/profile"
	"voltgui/internal/reconcile"
	"voltgui/internal/sysfs"
)

// Deps bundles the components the TUI drives.
type Deps struct {
	Set        *catalog.Set
	Reader     *sysfs.Reader
	Runner     procexec.Runner
	Planner    *reconcile.Planner
	Controller *apply.Controller
	Profiles   *profile.Store
	Options    *options.Store
	Logger     *logging.Logger

	StateDir        string
	ScriptDir       string
	ICDDir          string
	RefreshInterval time.Duration

	NVIDIAAvailable  bool
	OverlayAvailable bool
	Host             *hostinfo.Summary
	GPU              *gpu.Report
}

type tickMsg time.Time

type completionMsg apply.Completion

type inputMode int

const (
	inputNone inputMode = iota
	inputValue
	inputProfileName
)

// Model represents the TUI application state
type Model struct {
	startTime time.Time
	quitting  bool

	deps   Deps
	logger *logging.Logger
	keys   KeyMap
	theme  Theme

	// UI State
	currentScreen Screen
	selection     int
	lastError     string
	statusMessage string
	stateManager  *UIStateManager

	// Settings
	opts     options.Options
	active   string
	sel      profile.Selections
	snapshot reconcile.Snapshot

	// Settings screens
	rows        []row
	cursor      int
	showPreview bool

	input     textinput.Model
	inputMode inputMode

	// Profiles screen
	profiles      []string
	profileCursor int
	pendingDelete string
	diffLines     []profile.DiffLine
	diffTitle     string

	// Options screen
	optionCursor int
}

// NewModel loads options, the last active profile and the persisted UI
// state, and captures the start-up snapshot used by restore-on-close.
func NewModel(deps Deps) Model {
	if deps.RefreshInterval <= 0 {
		deps.RefreshInterval = 5 * time.Second
	}

	input := textinput.New()
	input.CharLimit = 256
	input.Width = 50

	m := Model{
		startTime:     time.Now(),
		deps:          deps,
		logger:        deps.Logger,
		keys:          DefaultKeyMap(),
		currentScreen: ScreenMenu,
		stateManager:  NewUIStateManager(deps.StateDir, deps.Logger),
		input:         input,
		sel:           profile.NewSelections(),
		active:        profile.DefaultName,
	}

	opts, err := deps.Options.Load()
	if err != nil {
		opts = options.Defaults()
		m.lastError = fmt.Sprintf("Failed to read options: %v", err)
	}
	m.opts = opts
	m.theme = NewTheme(opts.Theme)

	if state, err := m.stateManager.Load(); err == nil {
		m.currentScreen = state.CurrentScreen
		m.selection = state.Selection
		if m.lastError == "" {
			m.lastError = state.LastError
		}
	}

	m.snapshot = deps.Planner.TakeSnapshot()
	m.profiles = deps.Profiles.List()

	name := opts.LastActiveProfile
	if name == "" || !deps.Profiles.Exists(name) {
		name = profile.DefaultName
	}
	m = m.loadProfile(name)
	m.refresh()

	return m
}

// Init starts the refresh timer and the apply completion listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), waitForCompletion(m.deps.Controller))
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.deps.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForCompletion(c *apply.Controller) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		done, _ := c.Next(context.Background())
		return completionMsg(done)
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.inputMode == inputNone {
			m.refresh()
		}
		return m, m.tick()
	case completionMsg:
		m = m.handleCompletion(apply.Completion(msg))
		return m, waitForCompletion(m.deps.Controller)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.saveState()
		return m, tea.Quit
	}

	if m.pendingDelete != "" {
		name := m.pendingDelete
		m.pendingDelete = ""
		if key.Matches(msg, m.keys.Confirm) {
			return m.deleteProfile(name), nil
		}
		m.statusMessage = "Delete cancelled"
		return m, nil
	}

	if key.Matches(msg, m.keys.Escape) && m.currentScreen != ScreenMenu {
		m = m.returnToMenu()
		m.saveState()
		return m, nil
	}

	if next, handled := m.handleShortcutKeys(msg.String()); handled {
		return next, nil
	}

	switch m.currentScreen {
	case ScreenMenu:
		return m.handleMenuKeys(msg), nil
	case ScreenCPU, ScreenKernel, ScreenDisk, ScreenGPU:
		return m.handleSettingsKeys(msg)
	case ScreenProfiles:
		return m.handleProfilesKeys(msg)
	case ScreenOptions:
		return m.handleOptionsKeys(msg), nil
	case ScreenStatus:
		if key.Matches(msg, m.keys.Refresh) {
			m.refresh()
		}
	}
	return m, nil
}

func (m Model) handleShortcutKeys(k string) (Model, bool) {
	switch k {
	case "1", "2", "3", "4", "5", "6", "7", "?":
		updated := m.selectMenuByKey(k)
		updated.saveState()
		return updated, true
	}
	return m, false
}

func (m Model) handleMenuKeys(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.navigateUp()
	case key.Matches(msg, m.keys.Down):
		return m.navigateDown()
	case key.Matches(msg, m.keys.Enter):
		updated := m.selectMenuItem()
		updated.saveState()
		return updated
	}
	return m
}

func (m Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = wrap(m.cursor-1, len(m.rows))
	case key.Matches(msg, m.keys.Down):
		m.cursor = wrap(m.cursor+1, len(m.rows))
	case key.Matches(msg, m.keys.Apply):
		return m.applyScreen(context.Background()), nil
	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
	case key.Matches(msg, m.keys.Preview) && m.currentScreen == ScreenGPU:
		m.showPreview = !m.showPreview
	}

	r, ok := m.currentRow()
	if !ok || r.disabled != "" {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.cycle(m.currentScreen, r, -1)
	case key.Matches(msg, m.keys.Right):
		m.cycle(m.currentScreen, r, 1)
	case key.Matches(msg, m.keys.Reset):
		m.setValue(m.currentScreen, r, "")
	case key.Matches(msg, m.keys.Enter):
		if r.freeText() {
			return m.openInput(inputValue, m.value(m.currentScreen, r), r.label)
		}
		m.cycle(m.currentScreen, r, 1)
	}
	return m, nil
}

func (m Model) handleProfilesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	highlighted := ""
	if m.profileCursor < len(m.profiles) {
		highlighted = m.profiles[m.profileCursor]
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.profileCursor = wrap(m.profileCursor-1, len(m.profiles))
	case key.Matches(msg, m.keys.Down):
		m.profileCursor = wrap(m.profileCursor+1, len(m.profiles))
	case key.Matches(msg, m.keys.Enter) && highlighted != "":
		m = m.loadProfile(highlighted)
		m.diffLines = nil
	case key.Matches(msg, m.keys.Save) && highlighted != "":
		m = m.saveProfile(highlighted)
	case key.Matches(msg, m.keys.New):
		return m.openInput(inputProfileName, "", "Profile name")
	case key.Matches(msg, m.keys.Delete) && highlighted != "":
		if highlighted == profile.DefaultName {
			m.lastError = "The Default profile cannot be deleted"
			return m, nil
		}
		m.pendingDelete = highlighted
		m.statusMessage = fmt.Sprintf("Delete profile %s? Press y to confirm", highlighted)
	case key.Matches(msg, m.keys.Diff) && highlighted != "":
		m = m.diffProfiles(m.active, highlighted)
	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
	}
	return m, nil
}

func (m Model) handleOptionsKeys(msg tea.KeyMsg) Model {
	names := options.Names()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.optionCursor = wrap(m.optionCursor-1, len(names))
	case key.Matches(msg, m.keys.Down):
		m.optionCursor = wrap(m.optionCursor+1, len(names))
	case key.Matches(msg, m.keys.Left):
		return m.cycleOption(names[m.optionCursor], -1)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter):
		return m.cycleOption(names[m.optionCursor], 1)
	}
	return m
}

func (m Model) openInput(mode inputMode, value, prompt string) (tea.Model, tea.Cmd) {
	m.inputMode = mode
	m.input.Prompt = prompt + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.inputMode
		m.inputMode = inputNone
		m.input.Blur()

		switch mode {
		case inputValue:
			if r, ok := m.currentRow(); ok {
				m.setValue(m.currentScreen, r, value)
			}
		case inputProfileName:
			if err := profile.ValidateName(value); err != nil {
				m.lastError = err.Error()
				return m, nil
			}
			m = m.saveProfile(value)
		}
		return m, nil
	case tea.KeyEsc:
		m.inputMode = inputNone
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// refresh re-reads live values for the current screen.
func (m *Model) refresh() {
	switch m.currentScreen {
	case ScreenCPU, ScreenKernel, ScreenDisk, ScreenGPU:
		m.rows = m.buildRows(context.Background(), m.currentScreen)
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
	case ScreenProfiles:
		m.profiles = m.deps.Profiles.List()
		if m.profileCursor >= len(m.profiles) {
			m.profileCursor = 0
		}
	default:
		m.rows = nil
	}
}

// plan builds the helper plan for a subsystem from the current selections.
func (m Model) plan(ctx context.Context, sub reconcile.Subsystem) (reconcile.HelperPlan, error) {
	switch sub {
	case reconcile.SubsystemCPU:
		return m.deps.Planner.PlanCPU(ctx, m.sel.CPU), nil
	case reconcile.SubsystemKernel:
		return m.deps.Planner.PlanKernel(m.sel.Kernel), nil
	case reconcile.SubsystemDisk:
		return m.deps.Planner.PlanDisk(m.sel.Disk), nil
	}

	script := m.envScript()
	path, err := script.WriteTemp(m.deps.ScriptDir)
	if err != nil {
		return reconcile.HelperPlan{}, fmt.Errorf("write environment file: %w", err)
	}
	return m.deps.Planner.PlanGPU(path), nil
}

func (m Model) envScript() reconcile.EnvScript {
	return reconcile.BuildEnvScript(m.deps.Set, m.sel.GPU, m.sel.LaunchOptions, m.deps.ICDDir, m.logger)
}

func (m Model) applyScreen(ctx context.Context) Model {
	sub, ok := screenSubsystem(m.currentScreen)
	if !ok {
		return m
	}
	if m.deps.Controller.Busy(sub) {
		m.statusMessage = fmt.Sprintf("%s apply already in progress", subsystemLabel(sub))
		return m
	}

	plan, err := m.plan(ctx, sub)
	if err != nil {
		m.lastError = err.Error()
		return m
	}

	switch {
	case plan.AlreadyApplied:
		m.statusMessage = "Settings already applied"
	case plan.Empty():
		m.statusMessage = "Nothing to apply"
	case !m.deps.Controller.Start(plan):
		m.statusMessage = fmt.Sprintf("%s apply already in progress", subsystemLabel(sub))
	default:
		m.lastError = ""
		m.statusMessage = fmt.Sprintf("Applying %s settings...", subsystemLabel(sub))
	}
	return m
}

func (m Model) handleCompletion(c apply.Completion) Model {
	label := subsystemLabel(c.Subsystem)
	if c.OK() {
		m.lastError = ""
		m.statusMessage = fmt.Sprintf("%s settings applied", label)
	} else {
		reason := "helper failed"
		if c.Err != nil {
			reason = c.Err.Error()
		}
		m.statusMessage = ""
		m.lastError = fmt.Sprintf("%s apply failed (exit %d): %s", label, c.ExitCode, reason)
	}
	m.refresh()
	return m
}

func (m Model) loadProfile(name string) Model {
	sel, ok, err := m.deps.Profiles.Load(name)
	if err != nil {
		m.lastError = fmt.Sprintf("Failed to load profile %s: %v", name, err)
		return m
	}
	if !ok {
		sel = profile.NewSelections()
		if name != profile.DefaultName {
			m.statusMessage = fmt.Sprintf("Profile %s has no saved settings", name)
		}
	} else {
		m.statusMessage = fmt.Sprintf("Loaded profile %s", name)
	}
	m.sel = sel
	m.active = name
	m.rememberActive()
	m.refresh()
	return m
}

func (m Model) saveProfile(name string) Model {
	if err := m.deps.Profiles.Save(name, m.sel); err != nil {
		m.lastError = fmt.Sprintf("Failed to save profile %s: %v", name, err)
		return m
	}
	m.lastError = ""
	m.statusMessage = fmt.Sprintf("Saved profile %s", name)
	m.active = name
	m.rememberActive()
	m.profiles = m.deps.Profiles.List()
	for i, p := range m.profiles {
		if p == name {
			m.profileCursor = i
		}
	}
	return m
}

func (m Model) deleteProfile(name string) Model {
	deleted, err := m.deps.Profiles.Delete(name)
	switch {
	case err != nil:
		m.lastError = fmt.Sprintf("Failed to delete profile %s: %v", name, err)
		return m
	case !deleted:
		m.statusMessage = fmt.Sprintf("Profile %s has no file to delete", name)
	default:
		m.statusMessage = fmt.Sprintf("Deleted profile %s", name)
	}

	m.profiles = m.deps.Profiles.List()
	if m.profileCursor >= len(m.profiles) {
		m.profileCursor = len(m.profiles) - 1
	}
	if m.active == name {
		m = m.loadProfile(profile.DefaultName)
	}
	return m
}

func (m Model) diffProfiles(a, b string) Model {
	lines, err := m.deps.Profiles.Diff(a, b)
	if err != nil {
		m.lastError = fmt.Sprintf("Failed to compare profiles: %v", err)
		return m
	}
	m.diffTitle = fmt.Sprintf("%s → %s", a, b)
	m.diffLines = lines
	if !profile.Changed(lines) {
		m.statusMessage = "Profiles are identical"
	}
	return m
}

func (m *Model) rememberActive() {
	if m.opts.LastActiveProfile == m.active {
		return
	}
	name := m.active
	opts, err := m.deps.Options.Update(func(o *options.Options) error {
		o.LastActiveProfile = name
		return nil
	})
	if err != nil {
		m.logger.Warn("tui.options.save_failed", "Failed to remember active profile", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	m.opts = opts
}

func optionChoices(name string) []string {
	switch name {
	case "theme":
		return options.Themes
	case "scaling":
		return options.ScalingFactors
	case "last-profile":
		return nil
	default:
		return []string{"enable", "disable"}
	}
}

func (m Model) cycleOption(name string, delta int) Model {
	choices := optionChoices(name)
	if len(choices) == 0 {
		return m
	}
	current, _ := m.opts.Get(name)
	i := 0
	for j, c := range choices {
		if c == current {
			i = wrap(j+delta, len(choices))
		}
	}

	opts, err := m.deps.Options.Update(func(o *options.Options) error {
		return o.Set(name, choices[i])
	})
	if err != nil {
		m.lastError = err.Error()
		return m
	}
	m.opts = opts
	m.theme = NewTheme(opts.Theme)
	m.statusMessage = fmt.Sprintf("%s set to %s", name, choices[i])
	return m
}

// Shutdown restores the start-up CPU and disk state for subsystems applied
// during the session when restore-on-close is enabled. It blocks until
// every helper run has finished.
func (m Model) Shutdown(ctx context.Context) []apply.Completion {
	if !m.opts.RestoreOnClose || m.deps.Controller == nil {
		return nil
	}

	var out []apply.Completion
	for _, plan := range m.deps.Planner.PlanRestore(m.snapshot, m.deps.Controller.Applied()) {
		c := m.deps.Controller.RunSync(ctx, plan)
		if !c.OK() {
			m.logger.Warn("tui.restore.failed", "Failed to restore start-up settings", map[string]interface{}{
				"subsystem": string(c.Subsystem),
				"exit_code": c.ExitCode,
			})
		}
		out = append(out, c)
	}
	return out
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.currentScreen {
	case ScreenMenu:
		return m.renderMenu()
	case ScreenStatus:
		return m.renderStatusScreen()
	case ScreenCPU, ScreenKernel, ScreenDisk, ScreenGPU:
		return m.renderSettingsScreen()
	case ScreenProfiles:
		return m.renderProfilesScreen()
	case ScreenOptions:
		return m.renderOptionsScreen()
	case ScreenHelp:
		return m.renderHelpScreen()
	default:
		return m.renderMenu()
	}
}

func (m *Model) saveState() {
	state := &UIState{
		CurrentScreen: m.currentScreen,
		Selection:     m.selection,
		LastError:     m.lastError,
		Updated:       time.Now().UTC(),
	}

	if err := m.stateManager.Save(state); err != nil {
		m.logger.Warn("tui.state.save_failed", "Failed to save UI state", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func subsystemLabel(s reconcile.Subsystem) string {
	switch s {
	case reconcile.SubsystemCPU:
		return "CPU"
	case reconcile.SubsystemGPU:
		return "GPU"
	case reconcile.SubsystemKernel:
		return "Kernel"
	case reconcile.SubsystemDisk:
		return "Disk"
	}
	return string(s)
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
