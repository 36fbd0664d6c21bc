package trimming

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sentrim/internal/queue"
	"sentrim/internal/segments"
)

// Report captures the trim decision for one item so the cut can be audited
// after the work directory is cleaned up.
type Report struct {
	Base                string   `json:"base"`
	SourcePath          string   `json:"source_path"`
	DiarizedPath        string   `json:"diarized_path,omitempty"`
	WindowMin           float64  `json:"window_min_seconds"`
	WindowMax           float64  `json:"window_max_seconds"`
	CutSeconds          float64  `json:"cut_seconds"`
	CutSegmentIndex     int      `json:"cut_segment_index"`
	DiarizedCutSeconds  float64  `json:"diarized_cut_seconds,omitempty"`
	DiarizedCutSegment  int      `json:"diarized_cut_segment_index,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
	SourceDuration      float64  `json:"source_duration_seconds,omitempty"`
	TrimmedPath         string   `json:"trimmed_path,omitempty"`
	DiarizedTrimmedPath string   `json:"diarized_trimmed_path,omitempty"`
	GeneratedAt         string   `json:"generated_at"`
}

// WriteReport renders the trim decision as JSON into the log directory and
// returns the report path.
func WriteReport(logDir string, item *queue.Item, sourceCut, diarizedCut segments.Cut, window segments.Window, sourceDuration float64) (string, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure log dir: %w", err)
	}

	var warnings []string
	for _, warning := range segments.ParseWarnings(item.Warnings) {
		warnings = append(warnings, string(warning))
	}

	report := Report{
		Base:                item.Base,
		SourcePath:          item.SourcePath,
		DiarizedPath:        item.DiarizedPath,
		WindowMin:           window.Min,
		WindowMax:           window.Max,
		CutSeconds:          sourceCut.Seconds,
		CutSegmentIndex:     sourceCut.SegmentIndex,
		DiarizedCutSeconds:  diarizedCut.Seconds,
		DiarizedCutSegment:  diarizedCut.SegmentIndex,
		Warnings:            warnings,
		SourceDuration:      sourceDuration,
		TrimmedPath:         item.TrimmedPath,
		DiarizedTrimmedPath: item.DiarizedTrimmedPath,
		GeneratedAt:         time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal trim report: %w", err)
	}

	path := filepath.Join(logDir, fmt.Sprintf("trim-report-%d.json", item.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write trim report: %w", err)
	}
	return path, nil
}
