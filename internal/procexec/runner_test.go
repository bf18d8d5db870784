package procexec

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltgui/internal/catalog"
	"voltgui/internal/logging"
)

func TestCleanEnv(t *testing.T) {
	environ := []string{
		"HOME=/home/user",
		"LD_LIBRARY_PATH=/tmp/_MEI123/lib",
		"LD_PRELOAD=/tmp/_MEI123/libfoo.so",
		"PATH=/tmp/_MEI123:/usr/bin:/tmp/_MEI123/bin:/usr/local/bin",
		"DISPLAY=:0",
	}

	got := CleanEnv(environ, "/tmp/_MEI123")

	assert.Equal(t, []string{
		"HOME=/home/user",
		"PATH=/usr/bin:/usr/local/bin",
		"DISPLAY=:0",
	}, got)
}

func TestCleanEnv_NoBundleDir(t *testing.T) {
	got := CleanEnv([]string{"PATH=/usr/bin", "LD_PRELOAD=x"}, "")
	assert.Equal(t, []string{"PATH=/usr/bin"}, got)
}

func TestExecRunner_Success(t *testing.T) {
	r := NewExecRunner(5*time.Second, "", logging.Discard())

	res := r.Run(context.Background(), "sh", "-c", "echo hello")
	require.True(t, res.OK(), res.Err)
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestExecRunner_ExitCode(t *testing.T) {
	r := NewExecRunner(5*time.Second, "", logging.Discard())

	res := r.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	assert.False(t, res.OK())
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Err.Error(), "oops")
}

func TestExecRunner_Timeout(t *testing.T) {
	r := NewExecRunner(50*time.Millisecond, "", logging.Discard())

	res := r.Run(context.Background(), "sleep", "5")
	assert.False(t, res.OK())
	assert.Equal(t, -1, res.ExitCode)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := NewExecRunner(time.Second, "", logging.Discard())

	res := r.Run(context.Background(), "volt-definitely-missing-binary")
	assert.False(t, res.OK())
	assert.Equal(t, -1, res.ExitCode)
}

func TestExecRunner_Unbounded(t *testing.T) {
	r := NewExecRunner(time.Second, "", nil)
	u := r.Unbounded()

	assert.Equal(t, time.Duration(0), u.timeout)
	assert.Equal(t, time.Second, r.timeout)
}

func TestFindExecutable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mangohud"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scx_notes"), []byte("x"), 0o644))

	assert.True(t, FindExecutable([]string{t.TempDir(), dir}, "mangohud"))
	assert.False(t, FindExecutable([]string{dir}, "scx_"))
	assert.False(t, FindExecutable(nil, "mangohud"))
}

func TestRunningScheduler(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"running", Result{Stdout: "COMMAND\nsystemd\nscx_lavd\nbash\n"}, "scx_lavd"},
		{"first wins", Result{Stdout: "scx_rusty\nscx_lavd\n"}, "scx_rusty"},
		{"defunct", Result{Stdout: "scx_lavd <defunct>\n"}, catalog.SchedulerNone},
		{"none running", Result{Stdout: "systemd\nbash\n"}, catalog.SchedulerNone},
		{"ps failed", Result{ExitCode: 1, Err: errNotFound}, catalog.SchedulerNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewFakeRunner().On(tt.result, "ps", "-eo", "comm")
			assert.Equal(t, tt.want, RunningScheduler(context.Background(), r))
		})
	}
}

func TestFlatpakLists(t *testing.T) {
	r := NewFakeRunner().On(Result{Stdout: "MangoHud\torg.freedesktop.Platform.VulkanLayer.MangoHud\n"}, "flatpak", "list")

	assert.True(t, FlatpakLists(context.Background(), r, "mangohud"))
	assert.False(t, FlatpakLists(context.Background(), r, "gamescope"))
	assert.False(t, FlatpakLists(context.Background(), NewFakeRunner(), "mangohud"))
}

func TestOverlayAvailable(t *testing.T) {
	assert.False(t, OverlayAvailable(context.Background(), NewFakeRunner(), []string{t.TempDir()}))

	r := NewFakeRunner().On(Result{Stdout: "mangohud\n"}, "flatpak", "list")
	assert.True(t, OverlayAvailable(context.Background(), r, nil))
}

func TestFakeRunner_RecordsCalls(t *testing.T) {
	r := NewFakeRunner()
	r.Run(context.Background(), "pkexec", "/usr/local/bin/volt-helper", "-k", "/proc/sys/vm/swappiness:10")

	calls := r.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "pkexec", calls[0].Name)
	assert.Equal(t, []string{"/usr/local/bin/volt-helper", "-k", "/proc/sys/vm/swappiness:10"}, calls[0].Args)
}
