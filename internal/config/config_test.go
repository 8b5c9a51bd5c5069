package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obx.yaml")
	data := []byte(`
addr: ws://engine:8080/play
transport: ws
replay_dir: ./replays
decision_timeout: 5s
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "ws://engine:8080/play" || cfg.Transport != "ws" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Strategy != "default" {
		t.Errorf("unset strategy should default, got %q", cfg.Strategy)
	}
	if cfg.ReplayDir != "./replays" {
		t.Errorf("replay_dir = %q", cfg.ReplayDir)
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		t.Fatalf("Timeout: %v", err)
	}
	if timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", timeout)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obx.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestBadTimeout(t *testing.T) {
	cfg := Config{DecisionTimeout: "soon"}
	if _, err := cfg.Timeout(); err == nil {
		t.Fatal("expected parse error")
	}
}
