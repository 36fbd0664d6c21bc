package trim

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Cutter trims audio files with ffmpeg.
type Cutter struct {
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewCutter creates a Cutter using the provided ffmpeg binary name.
func NewCutter(ffmpegBinary string) *Cutter {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Cutter{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Cutter) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	c.commandRunner = runner
}

func buildCutArgs(source, dest string, seconds float64) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-t", strconv.FormatFloat(seconds, 'f', 3, 64),
		"-map", "0:a:0",
		"-c", "copy",
		dest,
	}
}

// Cut writes the first seconds of the source audio file to dest.
func (c *Cutter) Cut(ctx context.Context, source, dest string, seconds float64) error {
	if strings.TrimSpace(source) == "" {
		return errors.New("trim cut: source path required")
	}
	if strings.TrimSpace(dest) == "" {
		return errors.New("trim cut: destination path required")
	}
	if seconds <= 0 {
		return fmt.Errorf("trim cut: invalid cut point %.3f", seconds)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("trim cut: ensure destination dir: %w", err)
	}

	args := buildCutArgs(source, dest, seconds)
	if c.commandRunner != nil {
		return c.commandRunner(ctx, c.ffmpegBinary, args...)
	}
	cmd := exec.CommandContext(ctx, c.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg cut: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
