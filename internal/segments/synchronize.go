package segments

import (
	"fmt"
	"math"
)

// PairMismatchTolerance is the residual duration difference, in seconds,
// above which synchronized cuts are flagged WarnPairMismatch. Independently
// transcribed boundaries rarely coincide exactly, so tiny residuals are
// expected and not worth flagging.
const PairMismatchTolerance = 0.5

// Synchronize reconciles the cut boundaries of two independently transcribed
// recordings of the same event so both trimmed outputs end at the same
// semantic point. The earlier of the two unary cuts is the binding target;
// each side then lands on its largest segment end at or before the target.
// A side whose boundary under the target would fall below its own floor
// takes the closest boundary above the floor instead and the residual
// mismatch is flagged on both cuts.
//
// An empty sequence on either side returns ErrNoSpeech wrapped with the side
// label; callers degrade to unary SelectCut on the remaining side.
func Synchronize(primary, diarized []Segment, window Window) (Cut, Cut, error) {
	cutA, err := SelectCut(primary, window)
	if err != nil {
		return Cut{}, Cut{}, fmt.Errorf("primary: %w", err)
	}
	cutB, err := SelectCut(diarized, window)
	if err != nil {
		return Cut{}, Cut{}, fmt.Errorf("diarized: %w", err)
	}

	target := math.Min(cutA.Seconds, cutB.Seconds)
	finalA := boundaryAtOrBefore(primary, cutA, target, window)
	finalB := boundaryAtOrBefore(diarized, cutB, target, window)

	if math.Abs(finalA.Seconds-finalB.Seconds) > PairMismatchTolerance {
		finalA = withWarning(finalA, WarnPairMismatch)
		finalB = withWarning(finalB, WarnPairMismatch)
	}
	return finalA, finalB, nil
}

// boundaryAtOrBefore resolves one side's final cut against the agreed target.
// The side's own floor still binds: truncating below it is only allowed when
// the whole recording is already below it (the unary cut then carries
// WarnSubMinimum and stands as-is).
func boundaryAtOrBefore(segs []Segment, own Cut, target float64, window Window) Cut {
	if own.Seconds <= target {
		return own
	}

	idx := -1
	for i, seg := range segs {
		if seg.End > target {
			break
		}
		idx = i
	}
	if idx >= 0 && segs[idx].End >= window.Min {
		return Cut{Seconds: segs[idx].End, SegmentIndex: idx, Warnings: own.Warnings}
	}

	// No boundary at or under the target clears this side's floor; take the
	// smallest floor-clearing boundary, the closest valid point to target.
	for i, seg := range segs {
		if seg.End >= window.Min {
			return Cut{Seconds: seg.End, SegmentIndex: i, Warnings: own.Warnings}
		}
	}
	return own
}

func withWarning(cut Cut, warning Warning) Cut {
	if cut.Has(warning) {
		return cut
	}
	warnings := make([]Warning, 0, len(cut.Warnings)+1)
	warnings = append(warnings, cut.Warnings...)
	warnings = append(warnings, warning)
	cut.Warnings = warnings
	return cut
}
