package procexec

import (
	"context"
	"strings"

	"voltgui/internal/catalog"
)

// FlatpakLists reports whether "flatpak list" mentions name, ignoring case.
// A missing flatpak binary counts as not installed.
func FlatpakLists(ctx context.Context, r Runner, name string) bool {
	res := r.Run(ctx, "flatpak", "list")
	if !res.OK() {
		return false
	}
	return strings.Contains(strings.ToLower(res.Stdout), strings.ToLower(name))
}

// OverlayAvailable reports whether the performance overlay is installed
// natively or as a Flatpak.
func OverlayAvailable(ctx context.Context, r Runner, dirs []string) bool {
	if FindExecutable(dirs, catalog.OverlayCommand) {
		return true
	}
	return FlatpakLists(ctx, r, catalog.OverlayCommand)
}

// RunningScheduler returns the first running sched_ext scheduler, or
// "none" when there is none, the query fails, or the process is defunct.
func RunningScheduler(ctx context.Context, r Runner) string {
	res := r.Run(ctx, "ps", "-eo", "comm")
	if !res.OK() {
		return catalog.SchedulerNone
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		name := strings.TrimSpace(line)
		if !strings.HasPrefix(name, catalog.SchedulerPrefix) {
			continue
		}
		if strings.Contains(name, "<defunc") {
			return catalog.SchedulerNone
		}
		return name
	}
	return catalog.SchedulerNone
}
