package segments

// SelectCut chooses the trim boundary for a single transcript. A segment end
// is a valid candidate when it falls inside the window; among candidates the
// largest end wins, packing as much content as the ceiling allows while
// guaranteeing the floor. Segment ends double as cumulative output durations
// because the output always starts at zero.
//
// When no candidate exists the cut degrades instead of failing: a recording
// shorter than the floor is used whole and flagged WarnSubMinimum, and a
// recording whose first floor-clearing boundary already exceeds the ceiling
// is cut at that boundary and flagged WarnOvershoot. Splitting inside an
// utterance is never an option. An empty sequence returns ErrNoSpeech.
func SelectCut(segs []Segment, window Window) (Cut, error) {
	if len(segs) == 0 {
		return Cut{}, ErrNoSpeech
	}

	chosen := -1
	for i, seg := range segs {
		if seg.End > window.Max {
			break
		}
		if seg.End >= window.Min {
			chosen = i
		}
	}
	if chosen >= 0 {
		return Cut{Seconds: segs[chosen].End, SegmentIndex: chosen}, nil
	}

	last := len(segs) - 1
	if segs[last].End < window.Min {
		return Cut{
			Seconds:      segs[last].End,
			SegmentIndex: last,
			Warnings:     []Warning{WarnSubMinimum},
		}, nil
	}

	// Every boundary clearing the floor overshoots the ceiling; the earliest
	// such boundary minimizes the overshoot.
	for i, seg := range segs {
		if seg.End >= window.Min {
			return Cut{
				Seconds:      seg.End,
				SegmentIndex: i,
				Warnings:     []Warning{WarnOvershoot},
			}, nil
		}
	}

	// Unreachable for ordered input; keep the whole recording.
	return Cut{
		Seconds:      segs[last].End,
		SegmentIndex: last,
		Warnings:     []Warning{WarnOvershoot},
	}, nil
}
