package tui

import "time"

// Screen represents different TUI screens
type Screen string

const (
	// ScreenMenu is the main menu screen
	ScreenMenu Screen = "menu"
	// ScreenStatus shows the host and graphics summary
	ScreenStatus Screen = "status"
	// ScreenCPU edits governor, frequency bounds and scheduler
	ScreenCPU Screen = "cpu"
	// ScreenKernel edits kernel tunables
	ScreenKernel Screen = "kernel"
	// ScreenDisk edits per-device I/O schedulers
	ScreenDisk Screen = "disk"
	// ScreenGPU edits launch environment settings and launch options
	ScreenGPU Screen = "gpu"
	// ScreenProfiles manages saved profiles
	ScreenProfiles Screen = "profiles"
	// ScreenOptions edits application options
	ScreenOptions Screen = "options"
	// ScreenHelp shows help overlay
	ScreenHelp Screen = "help"
)

// MenuItem represents a menu item
type MenuItem struct {
	Key         string // Number key or letter
	Label       string
	Description string
	Screen      Screen
}

// UIState represents the persisted UI state
type UIState struct {
	CurrentScreen Screen    `json:"menu"`
	Selection     int       `json:"selection"`
	LastError     string    `json:"last_error"`
	Updated       time.Time `json:"updated"`
}

// DefaultMenuItems returns the default main menu items
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Key: "1", Label: "Status", Description: "Host, graphics and profile overview", Screen: ScreenStatus},
		{Key: "2", Label: "CPU", Description: "Governor, frequency limits and sched_ext scheduler", Screen: ScreenCPU},
		{Key: "3", Label: "Kernel", Description: "Virtual memory and kernel tunables", Screen: ScreenKernel},
		{Key: "4", Label: "Disk", Description: "Block device I/O schedulers", Screen: ScreenDisk},
		{Key: "5", Label: "GPU", Description: "Launch environment and launch options", Screen: ScreenGPU},
		{Key: "6", Label: "Profiles", Description: "Load, save, compare and delete profiles", Screen: ScreenProfiles},
		{Key: "7", Label: "Options", Description: "Theme and start-up behaviour", Screen: ScreenOptions},
		{Key: "?", Label: "Help", Description: "Show help", Screen: ScreenHelp},
	}
}
