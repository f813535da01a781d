// Package clock provides the node's network time source with abstraction
// for testing. Absence of time is normal, not an error: the schedule
// planner has a fixed fallback for it.
package clock

// Source yields the current wall-clock time, if it can be acquired.
type Source interface {
	// Now returns epoch seconds and whether the value is usable. ok is
	// false when time could not be acquired or the result is implausible.
	// One call makes at most one network attempt; retries belong to the
	// next boot.
	Now() (epoch int64, ok bool)
}
