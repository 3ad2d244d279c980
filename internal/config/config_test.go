package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Server.Port != 8085 {
		t.Errorf("Port = %d, want default 8085", cfg.Server.Port)
	}
	if cfg.Upload.MaxFileSizeMB != 50 {
		t.Errorf("MaxFileSizeMB = %d, want 50", cfg.Upload.MaxFileSizeMB)
	}
	if cfg.Report.Year != 2026 {
		t.Errorf("Year = %d, want 2026", cfg.Report.Year)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	content := `
server:
  port: 9000
upload:
  max_file_size_mb: 10
rate_limit:
  enabled: false
cleanup:
  daily_run_time: "04:30"
`
	path := filepath.Join(t.TempDir(), "portal.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Upload.MaxFileSizeBytes() != 10*1024*1024 {
		t.Errorf("MaxFileSizeBytes = %d, want 10MB", cfg.Upload.MaxFileSizeBytes())
	}
	if cfg.RateLimit.Enabled {
		t.Error("rate limit should be disabled by override")
	}
	if cfg.Cleanup.DailyRunTime != "04:30" {
		t.Errorf("DailyRunTime = %q, want 04:30", cfg.Cleanup.DailyRunTime)
	}
	// Untouched sections keep defaults.
	if cfg.Report.PropertyName == "" {
		t.Error("defaults should survive partial override")
	}
}

func TestLoadConfigRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}
