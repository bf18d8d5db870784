package diag

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shirou/gopsutil/v4/host"

	"voltgui/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readZIP(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open ZIP: %v", err)
	}
	defer r.Close()

	out := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func newTestPackager(t *testing.T) (*Packager, *Config) {
	t.Helper()
	tmp := t.TempDir()

	logDir := filepath.Join(tmp, "state")
	configDir := filepath.Join(tmp, "config")
	writeFile(t, filepath.Join(logDir, "volt-gui.log"), `{"event_type":"app.started"}`+"\n")
	writeFile(t, filepath.Join(logDir, "ui_state.json"), "{}")
	writeFile(t, filepath.Join(configDir, "volt-config-Gaming.ini"),
		"[CPU]\ngovernor = performance\n\n[LaunchOptions]\nlaunch_options = STEAM_API_KEY=abc gamemoderun %command%\n")
	writeFile(t, filepath.Join(configDir, "volt-options.ini"), "[Theme]\nselected_theme = amd\n")
	writeFile(t, filepath.Join(configDir, "config.yaml"), "helper:\n  path: /usr/local/bin/volt-helper\n")

	cfg := NewConfig("0.9.0-test", logDir, configDir)
	cfg.OutputPath = filepath.Join(tmp, "bundle.zip")
	cfg.Extra["reports/gpu.json"] = []byte(`{"cards":[],"icd":"/home/alex/icd.json"}`)

	p := NewPackager(cfg, logging.Discard())
	p.collector.hostInfo = func() (*host.InfoStat, error) {
		return &host.InfoStat{Platform: "arch", KernelVersion: "6.9.1-zen", KernelArch: "x86_64"}, nil
	}
	return p, cfg
}

func TestPackager_CreatePackage(t *testing.T) {
	p, cfg := newTestPackager(t)

	path, err := p.CreatePackage()
	if err != nil {
		t.Fatalf("CreatePackage() error = %v", err)
	}
	if path != cfg.OutputPath {
		t.Errorf("Expected output path %s, got %s", cfg.OutputPath, path)
	}

	files := readZIP(t, path)
	for _, want := range []string{
		"logs/volt-gui.log",
		"config/volt-config-Gaming.ini",
		"config/volt-options.ini",
		"reports/gpu.json",
		"system_info.json",
		"diag_manifest.json",
	} {
		if _, ok := files[want]; !ok {
			t.Errorf("missing %s in bundle", want)
		}
	}
	if _, ok := files["logs/ui_state.json"]; ok {
		t.Error("non-log file from the state directory was bundled")
	}
	if _, ok := files["config/config.yaml"]; ok {
		t.Error("config.yaml is supplied through Extra, not collected from disk")
	}

	profile := files["config/volt-config-Gaming.ini"]
	if strings.Contains(profile, "abc") || !strings.Contains(profile, "STEAM_API_KEY=[REDACTED]") {
		t.Errorf("launch options not redacted: %q", profile)
	}
	if strings.Contains(files["reports/gpu.json"], "alex") {
		t.Error("user name leaked through extra artifact")
	}
	if !strings.Contains(files["system_info.json"], "6.9.1-zen") {
		t.Errorf("system info missing kernel: %s", files["system_info.json"])
	}
}

func TestPackager_Manifest(t *testing.T) {
	p, _ := newTestPackager(t)

	path, err := p.CreatePackage()
	if err != nil {
		t.Fatal(err)
	}

	var manifest Manifest
	if err := json.Unmarshal([]byte(readZIP(t, path)["diag_manifest.json"]), &manifest); err != nil {
		t.Fatalf("invalid manifest: %v", err)
	}
	if manifest.VoltGUIVersion != "0.9.0-test" {
		t.Errorf("version = %q", manifest.VoltGUIVersion)
	}
	if manifest.Kernel != "6.9.1-zen" {
		t.Errorf("kernel = %q", manifest.Kernel)
	}
	if len(manifest.Files) != 5 {
		t.Fatalf("manifest lists %d files, want 5", len(manifest.Files))
	}
	for i := 1; i < len(manifest.Files); i++ {
		if manifest.Files[i-1].Path > manifest.Files[i].Path {
			t.Error("manifest entries are not sorted")
		}
	}
	for _, f := range manifest.Files {
		if len(f.SHA256) != 64 || f.SizeBytes == 0 {
			t.Errorf("bad entry %+v", f)
		}
	}
}

func TestPackager_PartialBundle(t *testing.T) {
	p, cfg := newTestPackager(t)
	cfg.LogDir = filepath.Join(t.TempDir(), "missing")
	cfg.IncludeProfiles = false
	p.collector.hostInfo = func() (*host.InfoStat, error) {
		return nil, errors.New("no /etc/os-release")
	}

	path, err := p.CreatePackage()
	if err != nil {
		t.Fatalf("CreatePackage() error = %v", err)
	}

	files := readZIP(t, path)
	if len(files) != 3 {
		t.Errorf("expected extra, system info and manifest only, got %d files", len(files))
	}
	if strings.Contains(files["system_info.json"], "kernel") {
		t.Error("kernel reported without host info")
	}
}

func TestPackager_UnwritableOutput(t *testing.T) {
	p, cfg := newTestPackager(t)
	cfg.OutputPath = filepath.Join(t.TempDir(), "missing", "bundle.zip")

	if _, err := p.CreatePackage(); err == nil {
		t.Error("expected error for missing output directory")
	}
}

func TestCalculateSHA256(t *testing.T) {
	got := CalculateSHA256([]byte("volt"))
	if len(got) != 64 {
		t.Errorf("hash length = %d", len(got))
	}
	if got != CalculateSHA256([]byte("volt")) {
		t.Error("hash is not deterministic")
	}
}
