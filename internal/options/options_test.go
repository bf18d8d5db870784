package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltgui/internal/logging"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s := NewStore(t.TempDir(), logging.Discard())

	o, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), o)
	assert.True(t, o.RestoreOnClose)
	assert.False(t, o.StartMinimized)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := NewStore(t.TempDir(), logging.Discard())

	o := Defaults()
	o.Theme = "nvidia"
	o.Transparency = false
	o.StartMaximized = true
	o.ScalingFactor = "1.5"
	o.ShowWelcome = false
	o.LastActiveProfile = "Gaming"

	require.NoError(t, s.Save(o))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestSaveLoad_QuotedProfileName(t *testing.T) {
	s := NewStore(t.TempDir(), logging.Discard())

	o := Defaults()
	o.LastActiveProfile = `'Night'`
	require.NoError(t, s.Save(o))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, `'Night'`, got.LastActiveProfile)
}

func TestSave_FileFormat(t *testing.T) {
	s := NewStore(t.TempDir(), logging.Discard())
	require.NoError(t, s.Save(Defaults()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)

	for _, want := range []string{
		"[Theme]", "selected_theme = amd",
		"[Transparency]", "[SystemTray]", "[StartupMinimized]", "[StartupMaximized]",
		"[Scaling]", "[WelcomeMessage]", "[RestoreOnClose]",
		"[Profile]", "LastActiveProfile = Default",
		"start_minimized = disable",
	} {
		assert.Contains(t, text, want)
	}
}

func TestLoad_LegacySections(t *testing.T) {
	dir := t.TempDir()
	content := `[Theme]
selected_theme = intel

[Appearance]
transparency = disable

[StartupBehavior]
start_minimized = enable

[CPUBehavior]
restore_on_close = disable
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	o, err := NewStore(dir, logging.Discard()).Load()
	require.NoError(t, err)
	assert.Equal(t, "intel", o.Theme)
	assert.False(t, o.Transparency)
	assert.True(t, o.StartMinimized)
	assert.False(t, o.RestoreOnClose)
	assert.True(t, o.RunInTray)
}

func TestLoad_InvalidValuesKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "[Theme]\nselected_theme = purple\n\n[SystemTray]\nrun_in_tray = maybe\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	o, err := NewStore(dir, logging.Discard()).Load()
	require.NoError(t, err)
	assert.Equal(t, "amd", o.Theme)
	assert.True(t, o.RunInTray)
}

func TestSet(t *testing.T) {
	o := Defaults()

	require.NoError(t, o.Set("theme", "intel"))
	require.NoError(t, o.Set("tray", "off"))
	require.NoError(t, o.Set("restore-on-close", "disable"))
	require.NoError(t, o.Set("scaling", "2.0"))

	assert.Equal(t, "intel", o.Theme)
	assert.False(t, o.RunInTray)
	assert.False(t, o.RestoreOnClose)

	v, err := o.Get("tray")
	require.NoError(t, err)
	assert.Equal(t, "disable", v)

	assert.Error(t, o.Set("theme", "purple"))
	assert.Error(t, o.Set("scaling", "12"))
	assert.Error(t, o.Set("welcome", "perhaps"))
	assert.Error(t, o.Set("last-profile", " "))
	assert.Error(t, o.Set("volume", "11"))
	_, err = o.Get("volume")
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	s := NewStore(t.TempDir(), logging.Discard())

	o, err := s.Update(func(o *Options) error {
		o.LastActiveProfile = "Work"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Work", o.LastActiveProfile)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Work", got.LastActiveProfile)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, "theme", names[0])
	assert.Contains(t, names, "restore-on-close")
	assert.Len(t, names, 9)
}
