package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sentrim/internal/fileutil"
)

// LocalBackend publishes trimmed files into a directory on local disk.
type LocalBackend struct {
	outputDir string
}

// NewLocalBackend creates a LocalBackend rooted at outputDir.
// The directory is created if it doesn't exist.
func NewLocalBackend(outputDir string) (*LocalBackend, error) {
	if outputDir == "" {
		return nil, errors.New("local backend: output directory required")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &LocalBackend{outputDir: outputDir}, nil
}

// OutputDir returns the destination directory path.
func (b *LocalBackend) OutputDir() string {
	return b.outputDir
}

// Publish copies the file into the output directory with checksum verification.
func (b *LocalBackend) Publish(ctx context.Context, localPath, name string) (string, error) {
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	if name == "" {
		name = filepath.Base(localPath)
	}
	dest := filepath.Join(b.outputDir, name)
	if err := fileutil.CopyFileVerified(localPath, dest); err != nil {
		return "", fmt.Errorf("publish %s: %w", name, err)
	}
	return dest, nil
}

// Describe returns a label for logging.
func (b *LocalBackend) Describe() string {
	return "local:" + b.outputDir
}
