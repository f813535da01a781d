package logic

import "time"

// LongPressMin is the boundary between a short and a long press. The
// boundary itself classifies as Long.
const LongPressMin = 1000 * time.Millisecond

// ClassifyPress maps a measured press duration to Short or Long. Durations
// are measured externally by timestamping the edge-active interval; this is
// pure classification and total over all non-negative inputs.
func ClassifyPress(d time.Duration) PressKind {
	if d < LongPressMin {
		return PressShort
	}
	return PressLong
}
