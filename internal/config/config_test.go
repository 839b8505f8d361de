/*
© 2025–present remote-shell-go contributors
ISC License
*/

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	var cfg = Default()
	if cfg.Port != 8080 || cfg.Backlog != 5 || cfg.BufferSize != 1024 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShortQuantum != 3*time.Second || cfg.LongQuantum != 7*time.Second {
		t.Errorf("unexpected quanta: %+v", cfg)
	}
}

func TestLoadNoEnvVar(t *testing.T) {
	t.Setenv(EnvVar, "")
	var cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	var dir = t.TempDir()
	var path = filepath.Join(dir, "config.yaml")
	var yamlContent = "port: 9090\nshort_quantum_seconds: 1.5\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvVar, path)

	var cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port: got %d want 9090", cfg.Port)
	}
	if cfg.ShortQuantum != 1500*time.Millisecond {
		t.Errorf("short quantum: got %v", cfg.ShortQuantum)
	}
	if cfg.Backlog != 5 || cfg.BufferSize != 1024 || cfg.LongQuantum != 7*time.Second {
		t.Errorf("unspecified fields should keep defaults: %+v", cfg)
	}
}
