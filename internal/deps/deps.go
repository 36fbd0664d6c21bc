// Package deps reports the availability of the external binaries sentrim
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"sentrim/internal/config"
)

// Requirement defines an external dependency sentrim relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Defaults returns the requirements for a standard sentrim installation.
// uvx resolves the WhisperX distribution on first use, so only the launcher
// itself needs to be installed.
func Defaults(cfg *config.Config) []Requirement {
	ffmpeg := "ffmpeg"
	ffprobe := "ffprobe"
	if cfg != nil {
		ffmpeg = cfg.FFmpegBinary()
		ffprobe = cfg.FFprobeBinary()
	}
	return []Requirement{
		{Name: "uvx", Command: "uvx", Description: "Runs WhisperX for transcription"},
		{Name: "FFmpeg", Command: ffmpeg, Description: "Audio extraction and trimming"},
		{Name: "FFprobe", Command: ffprobe, Description: "Media inspection for trim reports", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
