package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltgui/internal/config"
	"voltgui/internal/gpu"
	"voltgui/internal/hostinfo"
	"voltgui/internal/logging"
	"voltgui/internal/procexec"
)

const helperPath = "/usr/local/bin/volt-helper"

type cli struct {
	root      string
	configDir string
	runner    *procexec.FakeRunner
}

func writeSys(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	color.NoColor = true

	root := t.TempDir()
	cpufreq := "/sys/devices/system/cpu/cpu0/cpufreq/"
	writeSys(t, root, cpufreq+"scaling_available_governors", "performance powersave\n")
	writeSys(t, root, cpufreq+"scaling_governor", "powersave\n")
	writeSys(t, root, cpufreq+"cpuinfo_min_freq", "800000\n")
	writeSys(t, root, cpufreq+"cpuinfo_max_freq", "1000000\n")
	writeSys(t, root, "/proc/sys/vm/swappiness", "60\n")
	writeSys(t, root, "/sys/block/sda/queue/scheduler", "none [mq-deadline] kyber\n")

	configDir := t.TempDir()
	t.Setenv("VOLT_CONFIG_DIR", configDir)
	t.Setenv("VOLT_SYSTEM_CONFIG_DIR", t.TempDir())
	t.Setenv("VOLT_STATE_DIR", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Paths.SysfsRoot = root
	cfg.Paths.ICDDir = t.TempDir()
	cfg.Paths.SchedulerSearch = []string{t.TempDir()}
	cfg.Paths.OverlaySearch = []string{t.TempDir()}
	cfg.Paths.ScriptDir = t.TempDir()
	cfg.Logging.Level = "error"
	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(configDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c := &cli{root: root, configDir: configDir, runner: procexec.NewFakeRunner()}

	prevRunners, prevProber, prevHost := newRunners, newProber, hostSources
	newRunners = func(config.Config, *logging.Logger) (procexec.Runner, procexec.Runner) {
		return c.runner, c.runner
	}
	newProber = func(r procexec.Runner, icdDir string, overlayDirs []string, logger *logging.Logger) *gpu.Prober {
		p := gpu.NewProber(r, icdDir, overlayDirs, logger)
		p.Detector = nil
		p.CardLister = func(*logging.Logger) ([]gpu.Card, error) {
			return []gpu.Card{{Index: 0, Address: "0000:03:00.0", Vendor: "AMD", Product: "Navi 31", Driver: "amdgpu"}}, nil
		}
		return p
	}
	hostSources = func() hostinfo.Sources {
		return hostinfo.Sources{
			CPUInfo: func() ([]cpu.InfoStat, error) {
				return []cpu.InfoStat{{ModelName: "AMD Ryzen 7 7800X3D", VendorID: "AuthenticAMD"}}, nil
			},
			CPUCounts: func(logical bool) (int, error) {
				if logical {
					return 16, nil
				}
				return 8, nil
			},
		}
	}
	t.Cleanup(func() {
		newRunners, newProber, hostSources = prevRunners, prevProber, prevHost
	})
	return c
}

// run executes the root command with args and resets flag state first.
func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel = "", ""
	saveFrom, saveAssignments, deleteYes, exportOutput = "", nil, false, ""
	applyProfile = ""
	envProfile, envWrite = "", false
	gpuSave, gpuJSON = "", false
	diagOutput, diagNoLogs, diagNoProfiles = "", false, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckNotRoot(t *testing.T) {
	assert.ErrorIs(t, checkNotRoot(0), errRoot)
	assert.NoError(t, checkNotRoot(1000))
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	out, err := c.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "volt-gui version "+version+"\n", out)
}

func TestProfileSaveShowList(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "profile", "save", "Gaming",
		"--set", "cpu.governor=performance",
		"--set", "kernel.swappiness=10",
		"--set", "disk.sda=kyber",
		"--set", "launch_options=gamemoderun %command%")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(c.configDir, "volt-config-Gaming.ini"))

	out, err := c.run(t, "profile", "show", "Gaming")
	require.NoError(t, err)
	assert.Contains(t, out, "governor = performance")
	assert.Contains(t, out, "swappiness = 10")
	assert.Contains(t, out, "gamemoderun")

	out, err = c.run(t, "profile", "list")
	require.NoError(t, err)
	assert.Equal(t, "* Default\n  Gaming\n", out)
}

func TestProfileSave_UpdatesExistingAndClears(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "profile", "save", "Gaming", "--set", "cpu.governor=performance", "--set", "kernel.swappiness=10",
		"--set", "launch_options=mangohud %command%")
	require.NoError(t, err)
	_, err = c.run(t, "profile", "save", "Gaming", "--set", "kernel.swappiness=unset", "--set", "launch_options=unset")
	require.NoError(t, err)

	out, err := c.run(t, "profile", "show", "Gaming")
	require.NoError(t, err)
	assert.Contains(t, out, "governor = performance")
	assert.NotContains(t, out, "swappiness")
	assert.NotContains(t, out, "mangohud")
}

func TestProfileSave_RejectsUnknownKey(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "profile", "save", "Gaming", "--set", "cpu.turbo=on")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turbo")

	_, err = c.run(t, "profile", "save", "Gaming", "--set", "governor")
	assert.Error(t, err)
}

func TestProfileActivateAndDelete(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "profile", "save", "Quiet", "--set", "cpu.governor=powersave")
	require.NoError(t, err)

	out, err := c.run(t, "profile", "activate", "Quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Active profile: Quiet")

	out, err = c.run(t, "options", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "last-profile")
	assert.Contains(t, out, "Quiet")

	_, err = c.run(t, "profile", "delete", "Quiet", "--yes")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(c.configDir, "volt-config-Quiet.ini"))

	out, err = c.run(t, "profile", "list")
	require.NoError(t, err)
	assert.Equal(t, "* Default\n", out)
}

func TestProfileDelete_Default(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(t, "profile", "delete", "Default", "--yes")
	assert.Error(t, err)
}

func TestProfileActivate_Missing(t *testing.T) {
	c := newCLI(t)
	_, err := c.run(t, "profile", "activate", "Nope")
	assert.Error(t, err)
}

func TestProfileDiff(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "profile", "save", "A", "--set", "kernel.swappiness=10")
	require.NoError(t, err)
	_, err = c.run(t, "profile", "save", "B", "--from", "A", "--set", "kernel.swappiness=20")
	require.NoError(t, err)

	out, err := c.run(t, "profile", "diff", "A", "B")
	require.NoError(t, err)
	assert.Contains(t, out, "- swappiness = 10")
	assert.Contains(t, out, "+ swappiness = 20")

	out, err = c.run(t, "profile", "diff", "A", "A")
	require.NoError(t, err)
	assert.Contains(t, out, "identical")
}

func TestProfileExportImport(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "profile", "save", "A", "--set", "cpu.governor=performance")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "shared.ini")
	_, err = c.run(t, "profile", "export", "A", "-o", file)
	require.NoError(t, err)

	out, err := c.run(t, "profile", "import", "Copy", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported Copy (1 settings)")

	out, err = c.run(t, "profile", "diff", "A", "Copy")
	require.NoError(t, err)
	assert.Contains(t, out, "identical")

	_, err = c.run(t, "profile", "import", "Default", file)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	c := newCLI(t)
	c.runner.On(procexec.Result{}, "pkexec", helperPath, "-k", "/proc/sys/vm/swappiness:10")

	_, err := c.run(t, "profile", "save", "Gaming", "--set", "kernel.swappiness=10", "--set", "disk.sda=mq-deadline")
	require.NoError(t, err)

	out, err := c.run(t, "apply", "kernel", "disk", "--profile", "Gaming")
	require.NoError(t, err)
	assert.Contains(t, out, "swappiness: 60 -> 10")
	assert.Contains(t, out, "kernel  applied")
	assert.Contains(t, out, "disk    already applied")
}

func TestApply_Failure(t *testing.T) {
	c := newCLI(t)
	c.runner.On(procexec.Result{ExitCode: 126, Stdout: "authentication dismissed"}, "pkexec", helperPath, "-c", "governor:performance")

	_, err := c.run(t, "profile", "save", "Gaming", "--set", "cpu.governor=performance")
	require.NoError(t, err)
	_, err = c.run(t, "profile", "activate", "Gaming")
	require.NoError(t, err)

	out, err := c.run(t, "apply", "cpu")
	require.Error(t, err)
	assert.Contains(t, out, "exit 126: authentication dismissed")
}

func TestApply_NothingSelected(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "apply", "cpu", "kernel")
	require.NoError(t, err)
	assert.Contains(t, out, "cpu     already applied")
	assert.Empty(t, c.runner.Calls())
}

func TestParseSubsystems(t *testing.T) {
	subs, err := parseSubsystems([]string{"gpu", "all", "CPU"})
	require.NoError(t, err)
	assert.Len(t, subs, 4)
	assert.Equal(t, "gpu", string(subs[0]))

	_, err = parseSubsystems([]string{"network"})
	assert.Error(t, err)
}

func TestEnv(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "no GPU settings")

	_, err = c.run(t, "profile", "save", "Gaming", "--set", "launch_options=gamemoderun %command%")
	require.NoError(t, err)

	out, err = c.run(t, "env", "--profile", "Gaming")
	require.NoError(t, err)
	assert.Equal(t, "launch_options=gamemoderun %command%\n", out)

	out, err = c.run(t, "env", "--profile", "Gaming", "--write")
	require.NoError(t, err)
	data, err := os.ReadFile(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "launch_options=gamemoderun %command%\n", string(data))
}

func TestOptionsSet(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "options", "set", "theme", "nvidia")
	require.NoError(t, err)
	assert.Equal(t, "theme = nvidia\n", out)

	_, err = c.run(t, "options", "set", "theme", "purple")
	assert.Error(t, err)

	_, err = c.run(t, "options", "set", "volume", "11")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is VALID")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("refresh:\n  interval_seconds: 0\nhelper:\n  path: relative\n"), 0o644))
	out, err = c.run(t, "config", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "helper.path")
}

func TestConfigShow(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "sysfs_root: "+c.root)
}

func TestGPU(t *testing.T) {
	c := newCLI(t)
	save := filepath.Join(t.TempDir(), "gpu.json")

	out, err := c.run(t, "gpu", "--save", save)
	require.NoError(t, err)
	assert.Contains(t, out, "AMD Navi 31")
	assert.Contains(t, out, "Overlay:  no")
	assert.FileExists(t, save)

	out, err = c.run(t, "gpu", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"overlay_available": false`)
}

func TestStatus(t *testing.T) {
	c := newCLI(t)

	_, err := c.run(t, "profile", "save", "Gaming", "--set", "cpu.governor=performance", "--set", "disk.sda=kyber")
	require.NoError(t, err)
	_, err = c.run(t, "profile", "activate", "Gaming")
	require.NoError(t, err)

	out, err := c.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "AMD Ryzen 7 7800X3D")
	assert.Contains(t, out, "8 physical, 16 logical")
	assert.Contains(t, out, "powersave -> performance")
	assert.Contains(t, out, "mq-deadline -> kyber")
}

func TestDiag(t *testing.T) {
	c := newCLI(t)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	_, err := c.run(t, "profile", "save", "Gaming", "--set", "launch_options=API_KEY=secret %command%")
	require.NoError(t, err)

	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	out, err := c.run(t, "diag", "-o", bundle, "--no-logs")
	require.NoError(t, err)
	assert.Contains(t, out, bundle)

	r, err := zip.OpenReader(bundle)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "config/effective.yaml")
	assert.Contains(t, names, "config/volt-config-Gaming.ini")
	assert.Contains(t, names, "reports/gpu.json")
	assert.Contains(t, names, "reports/host.json")
	assert.Contains(t, names, "diag_manifest.json")
}
