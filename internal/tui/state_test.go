package tui

import (
	"os"
	"path/filepath"
	"testing"

	"voltgui/internal/logging"
)

func TestUIStateManager_SaveAndLoad(t *testing.T) {
	manager := NewUIStateManager(t.TempDir(), logging.Discard())

	state := &UIState{
		CurrentScreen: ScreenDisk,
		Selection:     3,
		LastError:     "test error",
	}
	if err := manager.Save(state); err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("Failed to load state: %v", err)
	}

	if loaded.CurrentScreen != ScreenDisk {
		t.Errorf("Expected screen disk, got %s", loaded.CurrentScreen)
	}
	if loaded.Selection != 3 {
		t.Errorf("Expected selection 3, got %d", loaded.Selection)
	}
	if loaded.LastError != "test error" {
		t.Errorf("Expected error 'test error', got %s", loaded.LastError)
	}
	if loaded.Updated.IsZero() {
		t.Error("Expected Updated to be set")
	}
}

func TestUIStateManager_LoadNonExistent(t *testing.T) {
	manager := NewUIStateManager(t.TempDir(), logging.Discard())

	state, err := manager.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if state.CurrentScreen != ScreenMenu {
		t.Errorf("Expected default screen menu, got %s", state.CurrentScreen)
	}
	if state.Selection != 0 || state.LastError != "" {
		t.Errorf("Expected zero state, got %+v", state)
	}
}

func TestUIStateManager_UnknownScreenFallsBackToMenu(t *testing.T) {
	dir := t.TempDir()
	content := `{"menu": "models", "selection": 1}`
	if err := os.WriteFile(filepath.Join(dir, UIStateFileName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	state, err := NewUIStateManager(dir, logging.Discard()).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if state.CurrentScreen != ScreenMenu {
		t.Errorf("Expected menu, got %s", state.CurrentScreen)
	}
}

func TestUIStateManager_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, UIStateFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewUIStateManager(dir, logging.Discard()).Load(); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestUIStateManager_SaveAndClearError(t *testing.T) {
	manager := NewUIStateManager(filepath.Join(t.TempDir(), "nested"), logging.Discard())

	if err := manager.SaveError("helper failed"); err != nil {
		t.Fatalf("SaveError() error = %v", err)
	}
	state, _ := manager.Load()
	if state.LastError != "helper failed" {
		t.Errorf("Expected saved error, got %q", state.LastError)
	}

	if err := manager.ClearError(); err != nil {
		t.Fatalf("ClearError() error = %v", err)
	}
	state, _ = manager.Load()
	if state.LastError != "" {
		t.Errorf("Expected cleared error, got %q", state.LastError)
	}
}
