package configdir

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserDir_Override(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VOLT_CONFIG_DIR", dir)

	assert.Equal(t, dir, UserDir())
}

func TestUserDir_XDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("VOLT_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	assert.Equal(t, filepath.Join(xdg, "volt-gui"), UserDir())
}

func TestUserDir_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("VOLT_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "volt-gui"), UserDir())
}

func TestSystemDir(t *testing.T) {
	t.Setenv("VOLT_SYSTEM_CONFIG_DIR", "")
	assert.Equal(t, "/etc/volt-gui", SystemDir())

	dir := t.TempDir()
	t.Setenv("VOLT_SYSTEM_CONFIG_DIR", dir)
	assert.Equal(t, dir, SystemDir())
}
