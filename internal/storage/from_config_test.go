package storage

import (
	"path/filepath"
	"testing"

	"sentrim/internal/config"
)

func TestFromConfigSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(t.TempDir(), "output")

	backend, err := FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	if _, ok := backend.(*LocalBackend); !ok {
		t.Fatalf("expected local backend, got %T", backend)
	}

	cfg.Export.Backend = "s3"
	cfg.Export.S3Bucket = "bucket"
	cfg.Export.S3Region = "us-east-1"
	backend, err = FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig(s3) error = %v", err)
	}
	if _, ok := backend.(*S3Backend); !ok {
		t.Fatalf("expected s3 backend, got %T", backend)
	}

	cfg.Export.Backend = "ftp"
	if _, err := FromConfig(&cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
