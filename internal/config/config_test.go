package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sentrim/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsForMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to be reported")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Trim.MinSeconds != 60 || cfg.Trim.MaxSeconds != 120 {
		t.Fatalf("unexpected default window: %+v", cfg.Trim)
	}
	if cfg.Pairing.OriginalMarker != "_original" || cfg.Pairing.DiarizedMarker != "_part1" {
		t.Fatalf("unexpected default markers: %+v", cfg.Pairing)
	}
	if cfg.Export.Backend != "local" {
		t.Fatalf("unexpected default export backend: %q", cfg.Export.Backend)
	}
}

func TestLoadParsesAndExpandsPaths(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, `
[paths]
input_dir = "`+base+`/in"
output_dir = "`+base+`/out"

[trim]
min_seconds = 30.0
max_seconds = 90.0

[whisperx]
model = "small"
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if !filepath.IsAbs(cfg.Paths.InputDir) {
		t.Fatalf("expected absolute input dir, got %q", cfg.Paths.InputDir)
	}
	window := cfg.Window()
	if window.Min != 30 || window.Max != 90 {
		t.Fatalf("unexpected window: %+v", window)
	}
	if cfg.WhisperX.Model != "small" {
		t.Fatalf("unexpected model: %q", cfg.WhisperX.Model)
	}
}

func TestLoadRejectsInvertedWindow(t *testing.T) {
	path := writeConfig(t, `
[trim]
min_seconds = 120.0
max_seconds = 60.0
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for inverted window")
	} else if !strings.Contains(err.Error(), "trim") {
		t.Fatalf("expected trim in error, got %v", err)
	}
}

func TestLoadRejectsUnknownModel(t *testing.T) {
	path := writeConfig(t, `
[whisperx]
model = "enormous"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unknown model")
	}
}

func TestLoadRejectsS3WithoutBucket(t *testing.T) {
	path := writeConfig(t, `
[export]
backend = "s3"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for s3 without bucket")
	}
}

func TestLoadRejectsPyannoteWithoutToken(t *testing.T) {
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGING_FACE_HUB_TOKEN", "")
	path := writeConfig(t, `
[whisperx]
vad_method = "pyannote"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for pyannote without token")
	}
}

func TestEnvOverridesFillSecrets(t *testing.T) {
	t.Setenv("HF_TOKEN", "hf-secret")
	t.Setenv("SENTRIM_NTFY_TOPIC", "sentrim-runs")
	t.Setenv("SENTRIM_LOG_LEVEL", "debug")

	path := writeConfig(t, `
[whisperx]
vad_method = "pyannote"
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WhisperX.HFToken != "hf-secret" {
		t.Fatalf("expected HF token from env, got %q", cfg.WhisperX.HFToken)
	}
	if cfg.Notifications.NtfyTopic != "sentrim-runs" {
		t.Fatalf("expected ntfy topic from env, got %q", cfg.Notifications.NtfyTopic)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected log level override, got %q", cfg.Logging.Level)
	}
}

func TestFileValuesWinOverEnv(t *testing.T) {
	t.Setenv("HF_TOKEN", "env-token")
	path := writeConfig(t, `
[whisperx]
vad_method = "pyannote"
hf_token = "file-token"
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WhisperX.HFToken != "file-token" {
		t.Fatalf("expected file token to win, got %q", cfg.WhisperX.HFToken)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, `
[paths]
input_dir = "`+base+`/in"
output_dir = "`+base+`/out"
work_dir = "`+base+`/work"
log_dir = "`+base+`/logs"
`)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample config to load, exists=%v err=%v", exists, err)
	}
}
