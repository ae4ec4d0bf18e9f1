package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEngineCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "engine.yaml")

	content := []byte(`
rules:
  total_rounds: 9
relay:
  turn_timeout_seconds: 120
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadEngine(path)
	if err != nil {
		t.Fatalf("LoadEngine() failed: %v", err)
	}

	if cfg.Rules.TotalRounds != 9 {
		t.Errorf("TotalRounds = %d, want 9", cfg.Rules.TotalRounds)
	}
	if cfg.Relay.TurnTimeoutSeconds != 120 {
		t.Errorf("TurnTimeoutSeconds = %d, want 120", cfg.Relay.TurnTimeoutSeconds)
	}
	// Unset fields fall back to defaults.
	if cfg.Relay.MessageBuffer != DefaultEngineConfig().Relay.MessageBuffer {
		t.Errorf("MessageBuffer = %d, want default", cfg.Relay.MessageBuffer)
	}
	if cfg.Archive.DBPath == "" {
		t.Error("Archive.DBPath not defaulted")
	}
}

func TestLoadEngineMissingCustomPath(t *testing.T) {
	if _, err := LoadEngine(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config path")
	}
}

func TestLoadEngineBadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "engine.yaml")
	if err := os.WriteFile(path, []byte("rules: ["), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := LoadEngine(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := LoadEngine("")
	if err != nil {
		t.Fatalf("LoadEngine() failed: %v", err)
	}

	def := DefaultEngineConfig()
	if cfg.Rules.TotalRounds != def.Rules.TotalRounds {
		t.Errorf("TotalRounds = %d, want %d", cfg.Rules.TotalRounds, def.Rules.TotalRounds)
	}
	if cfg.Relay.TurnTimeoutSeconds != def.Relay.TurnTimeoutSeconds {
		t.Errorf("TurnTimeoutSeconds = %d, want %d", cfg.Relay.TurnTimeoutSeconds, def.Relay.TurnTimeoutSeconds)
	}
}
