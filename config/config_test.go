package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docmodel.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: DEBUG
log_format: json
workers: 8
max_file_mb: 10
indent: false
output_dir: out
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.Workers != 8 ||
		cfg.MaxFileMB != 10 || cfg.Indent || cfg.OutputDir != "out" {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.MaxFileBytes() != 10<<20 {
		t.Errorf("MaxFileBytes() = %d", cfg.MaxFileBytes())
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("Level() = %v", level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "workers: 2\nlog_level: info\n")
	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvWorkers, "16")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvMaxFileMB, "0")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 16 || cfg.LogLevel != "warn" || cfg.MaxFileMB != 0 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.MaxFileBytes() != 0 {
		t.Errorf("MaxFileBytes() = %d, want no limit", cfg.MaxFileBytes())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad yaml", file: "workers: [1"},
		{name: "bad level", file: "log_level: loud"},
		{name: "bad format", file: "log_format: xml"},
		{name: "negative size", file: "max_file_mb: -1"},
		{name: "bad workers env", file: "", env: map[string]string{EnvWorkers: "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigFile, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeConfig(t, tt.file)); err == nil {
				t.Error("Load() expected error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("Load() expected error for a missing file")
		}
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Workers: -3, LogLevel: "  ", LogFormat: " JSON "}
	cfg.applyDefaults()
	if cfg.Workers != 1 || cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("applyDefaults() = %+v", cfg)
	}
}
