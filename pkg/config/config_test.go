package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := `
canvas:
  width: 1024
  height: 768
search:
  strictness: 3
  samples: 64
  workers: 8
  mean_count: 16
  max_mean_delta: 0.0005
seed: 7
output: "./out/test.json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Canvas.Width != 1024 || cfg.Canvas.Height != 768 {
		t.Fatalf("canvas mismatch: %+v", cfg.Canvas)
	}
	if cfg.Search.Samples != 64 {
		t.Fatalf("search.samples mismatch: %v", cfg.Search.Samples)
	}
	if cfg.Search.WorkerCount != 8 {
		t.Fatalf("search.workers mismatch: %v", cfg.Search.WorkerCount)
	}
	if cfg.Seed != 7 {
		t.Fatalf("seed mismatch: %v", cfg.Seed)
	}
	if cfg.Output != "./out/test.json" {
		t.Fatalf("output mismatch: %v", cfg.Output)
	}
}

func TestLoadAppConfig_DefaultsAndEnv(t *testing.T) {
	os.Setenv("GEOAID_SEED", "99")
	os.Setenv("GEOAID_SAMPLES", "16")
	os.Setenv("GEOAID_WORKERS", "2")
	os.Setenv("GEOAID_STRICTNESS", "4")
	os.Setenv("GEOAID_OUTPUT", "./env-out.json")
	defer func() {
		os.Unsetenv("GEOAID_SEED")
		os.Unsetenv("GEOAID_SAMPLES")
		os.Unsetenv("GEOAID_WORKERS")
		os.Unsetenv("GEOAID_STRICTNESS")
		os.Unsetenv("GEOAID_OUTPUT")
	}()

	cfg, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("LoadAppConfig(default) failed: %v", err)
	}
	if cfg.Seed != 99 {
		t.Fatalf("env override seed failed: %v", cfg.Seed)
	}
	if cfg.Search.Samples != 16 {
		t.Fatalf("env override samples failed: %v", cfg.Search.Samples)
	}
	if cfg.Search.WorkerCount != 2 {
		t.Fatalf("env override workers failed: %v", cfg.Search.WorkerCount)
	}
	if cfg.Search.Strictness != 4 {
		t.Fatalf("env override strictness failed: %v", cfg.Search.Strictness)
	}
	if cfg.Output != "./env-out.json" {
		t.Fatalf("env override output failed: %v", cfg.Output)
	}
}

func TestAppConfig_ValidateRejectsBadCanvas(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Canvas.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero canvas width")
	}
}

func TestAppConfig_ValidateDefaultsWorkerCount(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Search.WorkerCount = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Search.WorkerCount <= 0 {
		t.Fatalf("expected WorkerCount to default to a positive value, got %d", cfg.Search.WorkerCount)
	}
}
