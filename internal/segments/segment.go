package segments

import (
	"errors"
	"fmt"
	"strings"
)

// Segment is a contiguous span of transcribed speech. Sequences are ordered
// by start time and non-overlapping; both invariants are the transcription
// collaborator's contract, not enforced here.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Window is the allowed output duration range in seconds.
type Window struct {
	Min float64
	Max float64
}

// Validate reports whether the window bounds are usable.
func (w Window) Validate() error {
	if w.Min <= 0 {
		return fmt.Errorf("window min must be positive, got %g", w.Min)
	}
	if w.Min >= w.Max {
		return fmt.Errorf("window min %g must be below max %g", w.Min, w.Max)
	}
	return nil
}

// Warning flags a recoverable window violation on a Cut.
type Warning string

const (
	// WarnSubMinimum marks a recording shorter than the window floor; the
	// whole recording is used.
	WarnSubMinimum Warning = "sub_minimum_duration"
	// WarnOvershoot marks a cut past the window ceiling because the only
	// boundary clearing the floor lies beyond it.
	WarnOvershoot Warning = "overshoot_maximum"
	// WarnPairMismatch marks synchronized cuts whose durations could not be
	// matched without violating one side's floor.
	WarnPairMismatch Warning = "pair_length_mismatch"
)

// ErrNoSpeech reports an empty segment sequence. It is the only hard
// per-recording failure; everything else degrades to a flagged best effort.
var ErrNoSpeech = errors.New("no speech detected")

// Cut is a chosen trim boundary, aligned to the end of the segment at
// SegmentIndex.
type Cut struct {
	Seconds      float64
	SegmentIndex int
	Warnings     []Warning
}

// Has reports whether the cut carries the given warning.
func (c Cut) Has(w Warning) bool {
	for _, have := range c.Warnings {
		if have == w {
			return true
		}
	}
	return false
}

// WarningList renders the warnings as a comma-separated string for
// persistence and reports. Empty when the cut is clean.
func (c Cut) WarningList() string {
	if len(c.Warnings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c.Warnings))
	for _, w := range c.Warnings {
		parts = append(parts, string(w))
	}
	return strings.Join(parts, ",")
}

// ParseWarnings converts a comma-separated warning list back into warnings.
// Unknown values are dropped.
func ParseWarnings(value string) []Warning {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	var warnings []Warning
	for _, part := range strings.Split(value, ",") {
		switch Warning(strings.TrimSpace(part)) {
		case WarnSubMinimum:
			warnings = append(warnings, WarnSubMinimum)
		case WarnOvershoot:
			warnings = append(warnings, WarnOvershoot)
		case WarnPairMismatch:
			warnings = append(warnings, WarnPairMismatch)
		}
	}
	return warnings
}

// Duration returns the end timestamp of the final segment, which for a
// recording trimmed from zero is the spoken duration.
func Duration(segs []Segment) float64 {
	if len(segs) == 0 {
		return 0
	}
	return segs[len(segs)-1].End
}
