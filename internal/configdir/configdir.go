package configdir

import (
	"os"
	"path/filepath"
)

const (
	defaultSystemDir = "/etc/volt-gui"
	userDirName      = "volt-gui"
)

// SystemDir resolves the system-wide configuration directory respecting
// VOLT_SYSTEM_CONFIG_DIR.
func SystemDir() string {
	if env := os.Getenv("VOLT_SYSTEM_CONFIG_DIR"); env != "" {
		if abs, err := filepath.Abs(env); err == nil {
			return abs
		}
	}
	return defaultSystemDir
}

// UserDir resolves the per-user directory that holds profiles, options and
// the user config file. Order: VOLT_CONFIG_DIR, XDG_CONFIG_HOME/volt-gui,
// ~/.config/volt-gui.
func UserDir() string {
	if env := os.Getenv("VOLT_CONFIG_DIR"); env != "" {
		if abs, err := filepath.Abs(env); err == nil {
			return abs
		}
		return env
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, userDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), userDirName)
	}
	return filepath.Join(home, ".config", userDirName)
}
