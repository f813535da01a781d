package logic

import (
	"testing"
	"time"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 6, 14, hour, min, sec, 0, time.UTC)
}

func TestNextWakeBeforeHalfHour(t *testing.T) {
	if got := NextWake(at(12, 5, 0), true); got != 1500 {
		t.Errorf("12:05:00: got %d, want 1500", got)
	}
}

func TestNextWakeAfterHalfHour(t *testing.T) {
	if got := NextWake(at(12, 35, 0), true); got != 1500 {
		t.Errorf("12:35:00: got %d, want 1500", got)
	}
}

func TestNextWakeTimeUnavailable(t *testing.T) {
	if got := NextWake(time.Time{}, false); got != FallbackSleepSeconds {
		t.Errorf("no time: got %d, want %d", got, FallbackSleepSeconds)
	}
}

func TestNextWakeImplausibleTime(t *testing.T) {
	// Epoch below the sanity threshold means the clock was never set.
	early := time.Unix(EpochSanityMin-1, 0).UTC()
	if got := NextWake(early, true); got != FallbackSleepSeconds {
		t.Errorf("implausible time: got %d, want %d", got, FallbackSleepSeconds)
	}
}

func TestNextWakeBoundaries(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exactly on the hour", at(9, 0, 0), 1800},
		{"exactly on the half hour", at(9, 30, 0), 1800},
		{"one second before half hour", at(9, 29, 59), 1},
		{"one second before the hour", at(9, 59, 59), 1},
		{"seconds matter", at(9, 10, 30), 1170},
	}
	for _, tt := range tests {
		if got := NextWake(tt.now, true); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

// TestNextWakeAlwaysBounded sweeps every minute/second combination in an
// hour; the result must stay within [0, 1800].
func TestNextWakeAlwaysBounded(t *testing.T) {
	for min := 0; min < 60; min++ {
		for sec := 0; sec < 60; sec++ {
			got := NextWake(at(15, min, sec), true)
			if got < 0 || got > 1800 {
				t.Fatalf("NextWake(:%02d:%02d) = %d, outside [0,1800]", min, sec, got)
			}
		}
	}
}

func TestNewSleepPlanArmsBothSources(t *testing.T) {
	for _, seconds := range []int{0, 300, 1800, 3600, -5} {
		plan := NewSleepPlan(seconds)
		if !plan.Armed(SourceTimer) {
			t.Errorf("NewSleepPlan(%d): timer not armed", seconds)
		}
		if !plan.Armed(SourceButtonEdge) {
			t.Errorf("NewSleepPlan(%d): button edge not armed", seconds)
		}
	}
	if plan := NewSleepPlan(-5); plan.Seconds != 0 {
		t.Errorf("negative duration should clamp to 0, got %d", plan.Seconds)
	}
}
