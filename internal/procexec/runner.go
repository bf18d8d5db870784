package procexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"voltgui/internal/fsutil"
	"voltgui/internal/logging"
)

// DefaultTimeout bounds every query subprocess.
const DefaultTimeout = 10 * time.Second

// Result is the outcome of one subprocess run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// OK reports whether the process ran and exited with status zero.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner starts external programs.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// ExecRunner runs programs through os/exec with a sanitized environment.
type ExecRunner struct {
	timeout time.Duration
	env     []string
	logger  *logging.Logger
}

// NewExecRunner creates a runner. A zero timeout leaves calls unbounded.
// Library paths injected by a bundled build below bundleDir are removed
// from the child environment.
func NewExecRunner(timeout time.Duration, bundleDir string, logger *logging.Logger) *ExecRunner {
	return &ExecRunner{
		timeout: timeout,
		env:     CleanEnv(os.Environ(), bundleDir),
		logger:  logger,
	}
}

// Unbounded returns a copy of the runner without a timeout, for the
// privileged helper whose authentication prompt may take arbitrarily long.
func (r *ExecRunner) Unbounded() *ExecRunner {
	c := *r
	c.timeout = 0
	return &c
}

// Run executes name with args and collects its output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) Result {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = r.env
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.ExitCode = -1
		res.Err = fmt.Errorf("%s timed out after %s: %w", name, r.timeout, ctx.Err())
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		res.Err = fmt.Errorf("%s exited with status %d: %s", name, res.ExitCode, strings.TrimSpace(res.Stderr))
	default:
		res.ExitCode = -1
		res.Err = fmt.Errorf("start %s: %w", name, err)
	}

	if res.Err != nil {
		r.logger.Debug("process.run.failed", "Subprocess failed", map[string]interface{}{
			"command":   name,
			"exit_code": res.ExitCode,
			"error":     res.Err.Error(),
		})
	}
	return res
}

// CleanEnv returns environ without LD_LIBRARY_PATH and LD_PRELOAD, and
// with PATH entries below bundleDir removed.
func CleanEnv(environ []string, bundleDir string) []string {
	out := make([]string, 0, len(environ))
	for _, kv := range environ {
		name, value, _ := strings.Cut(kv, "=")
		switch name {
		case "LD_LIBRARY_PATH", "LD_PRELOAD":
			continue
		case "PATH":
			if bundleDir != "" {
				kv = "PATH=" + stripPathEntries(value, bundleDir)
			}
		}
		out = append(out, kv)
	}
	return out
}

func stripPathEntries(value, bundleDir string) string {
	var keep []string
	for _, entry := range filepath.SplitList(value) {
		if strings.Contains(entry, bundleDir) {
			continue
		}
		keep = append(keep, entry)
	}
	return strings.Join(keep, string(os.PathListSeparator))
}

// FindExecutable reports whether any dir holds an executable file whose
// name starts with prefix.
func FindExecutable(dirs []string, prefix string) bool {
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if fsutil.IsExecutable(m) {
				return true
			}
		}
	}
	return false
}
