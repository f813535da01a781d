package logic

import "math"

// Calibration classification thresholds. The gap between CalibrationWetMax
// and CalibrationDryMin is a deliberate dead-zone: a moist-soil reading in
// between must not be misclassified as either calibration endpoint.
const (
	CalibrationDryMin = 2000
	CalibrationWetMax = 1800
)

// Calibrate classifies an averaged calibration reading and derives the new
// calibration pair. A dry reading replaces Dry, a wet reading replaces Wet,
// and a reading inside the dead-zone leaves the pair untouched.
//
// The caller is responsible for persisting a changed pair and for checking
// RangeValid on the result; an inverted range is advisory, not an error.
func Calibrate(sample float64, prev CalibrationPair) (CalibrationPair, CalibrationOutcome) {
	v := int(math.Round(sample))
	switch {
	case v >= CalibrationDryMin:
		return CalibrationPair{Dry: v, Wet: prev.Wet}, OutcomeDryUpdated
	case v <= CalibrationWetMax:
		return CalibrationPair{Dry: prev.Dry, Wet: v}, OutcomeWetUpdated
	default:
		return prev, OutcomeNoChange
	}
}
