package logic

import "time"

const (
	// EpochSanityMin is the lowest epoch value treated as a plausible
	// wall-clock time. Anything below it means the clock was never set.
	EpochSanityMin = 1_000_000_000

	// FallbackSleepSeconds is the fixed interval used when no valid time
	// is available to align against.
	FallbackSleepSeconds = 1800
)

// NextWake returns the number of seconds until the next aligned wake
// boundary: every half hour of wall-clock time (:00 and :30). now must
// already carry the caller's timezone offset; this function applies none.
//
// When ok is false, or now is below the sanity threshold, the fixed
// fallback interval is returned. No retry happens here; acquiring time is
// the network-time collaborator's problem. The result is always in
// [0, FallbackSleepSeconds].
func NextWake(now time.Time, ok bool) int {
	if !ok || now.Unix() < EpochSanityMin {
		return FallbackSleepSeconds
	}

	minute := now.Minute()
	second := now.Second()

	target := 30
	if minute >= 30 {
		target = 60
	}

	// Explicit branch at the hour rollover to keep the arithmetic
	// obviously free of an off-by-one.
	if target-minute == 60 {
		return (60-minute)*60 - second
	}
	return (target-minute)*60 - second
}
