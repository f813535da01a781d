// Package logic contains pure decision logic for the moisture node: wake
// classification, calibration, moisture mapping and wake scheduling.
// This package has NO external dependencies (no GPIO, network, storage, or
// time.Sleep). Time is always injectable via parameters.
package logic

// WakeKind identifies the platform-reported reason the node resumed execution.
type WakeKind string

const (
	WakePowerOn    WakeKind = "POWER_ON"
	WakeTimer      WakeKind = "TIMER"
	WakeButtonEdge WakeKind = "BUTTON_EDGE"
	WakeOther      WakeKind = "OTHER"
)

// WakeCause is produced once per boot by the platform and is immutable for
// the boot's lifetime. Code carries the raw platform code for WakeOther.
type WakeCause struct {
	Kind WakeKind
	Code int
}

// OtherWake wraps an unrecognized platform wake code.
func OtherWake(code int) WakeCause {
	return WakeCause{Kind: WakeOther, Code: code}
}

// CalibrationPair holds the two reference readings defining the sensor's
// 0% (dry) and 100% (wet) moisture endpoints.
type CalibrationPair struct {
	Dry int
	Wet int
}

// DefaultCalibration is used when no pair has been persisted yet.
var DefaultCalibration = CalibrationPair{Dry: 2800, Wet: 1300}

// RangeValid reports whether Dry > Wet. A violation is advisory: the node
// keeps operating with the degenerate pair rather than stranding itself.
func (p CalibrationPair) RangeValid() bool {
	return p.Dry > p.Wet
}

// CalibrationOutcome classifies the result of a calibration run.
type CalibrationOutcome string

const (
	OutcomeDryUpdated CalibrationOutcome = "DRY_UPDATED"
	OutcomeWetUpdated CalibrationOutcome = "WET_UPDATED"
	OutcomeNoChange   CalibrationOutcome = "NO_CHANGE"
)

// PressKind classifies a button press by duration.
type PressKind string

const (
	PressShort PressKind = "SHORT"
	PressLong  PressKind = "LONG"
)

// WakeSource is a wake trigger that can be armed before suspension.
type WakeSource string

const (
	SourceTimer      WakeSource = "TIMER"
	SourceButtonEdge WakeSource = "BUTTON_EDGE"
)

// SleepPlan describes the next suspension: how long to sleep and which wake
// sources are armed.
type SleepPlan struct {
	Seconds int
	Sources []WakeSource
}

// NewSleepPlan is the only way to build a SleepPlan. It always arms both the
// timer and the button edge: the node must remain reachable by button press
// regardless of why or how long it sleeps. Negative durations clamp to zero.
func NewSleepPlan(seconds int) SleepPlan {
	if seconds < 0 {
		seconds = 0
	}
	return SleepPlan{
		Seconds: seconds,
		Sources: []WakeSource{SourceTimer, SourceButtonEdge},
	}
}

// Armed reports whether the given wake source is part of the plan.
func (p SleepPlan) Armed(s WakeSource) bool {
	for _, src := range p.Sources {
		if src == s {
			return true
		}
	}
	return false
}
