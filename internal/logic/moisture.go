package logic

// MapMoisture converts an averaged sensor reading into a moisture percentage
// using the calibration pair. Sensor output is inversely correlated with
// moisture: pair.Dry marks the 0% point and pair.Wet the 100% point. The
// result is always clamped to [0, 100], even when raw lies outside the
// calibrated span.
//
// A degenerate pair (Dry == Wet) saturates to 0 rather than erroring. The
// node keeps operating; the call site may log the condition.
func MapMoisture(raw float64, pair CalibrationPair) float64 {
	span := float64(pair.Wet - pair.Dry)
	if span == 0 {
		return 0
	}
	percent := (raw - float64(pair.Dry)) / span * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
