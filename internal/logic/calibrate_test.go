package logic

import "testing"

func TestCalibrateDryReading(t *testing.T) {
	prev := CalibrationPair{Dry: 2800, Wet: 1300}
	pair, outcome := Calibrate(2200, prev)
	if outcome != OutcomeDryUpdated {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeDryUpdated)
	}
	if pair != (CalibrationPair{Dry: 2200, Wet: 1300}) {
		t.Errorf("pair = %+v, want {2200 1300}", pair)
	}
}

func TestCalibrateWetReading(t *testing.T) {
	prev := CalibrationPair{Dry: 2800, Wet: 1300}
	pair, outcome := Calibrate(1500, prev)
	if outcome != OutcomeWetUpdated {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeWetUpdated)
	}
	if pair != (CalibrationPair{Dry: 2800, Wet: 1500}) {
		t.Errorf("pair = %+v, want {2800 1500}", pair)
	}
}

func TestCalibrateDeadZoneLeavesPairUntouched(t *testing.T) {
	prev := CalibrationPair{Dry: 2800, Wet: 1300}
	pair, outcome := Calibrate(1900, prev)
	if outcome != OutcomeNoChange {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeNoChange)
	}
	if pair != prev {
		t.Errorf("pair = %+v, want unchanged %+v", pair, prev)
	}
}

func TestCalibrateThresholdBoundaries(t *testing.T) {
	prev := CalibrationPair{Dry: 2800, Wet: 1300}

	tests := []struct {
		sample  float64
		outcome CalibrationOutcome
	}{
		{2000, OutcomeDryUpdated}, // dry boundary is inclusive
		{1999, OutcomeNoChange},
		{1801, OutcomeNoChange},
		{1800, OutcomeWetUpdated}, // wet boundary is inclusive
	}
	for _, tt := range tests {
		_, outcome := Calibrate(tt.sample, prev)
		if outcome != tt.outcome {
			t.Errorf("Calibrate(%v): outcome = %s, want %s", tt.sample, outcome, tt.outcome)
		}
	}
}

// A wet reading above the stored dry value produces an inverted pair. That
// is advisory only: the pair is still returned and the range flagged.
func TestCalibrateCanProduceInvalidRange(t *testing.T) {
	prev := CalibrationPair{Dry: 1600, Wet: 1300}
	pair, outcome := Calibrate(1750, prev)
	if outcome != OutcomeWetUpdated {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeWetUpdated)
	}
	if pair != (CalibrationPair{Dry: 1600, Wet: 1750}) {
		t.Errorf("pair = %+v, want {1600 1750}", pair)
	}
	if pair.RangeValid() {
		t.Error("inverted pair should report an invalid range")
	}
}

func TestCalibrateRoundsAveragedSample(t *testing.T) {
	prev := CalibrationPair{Dry: 2800, Wet: 1300}
	pair, _ := Calibrate(2199.6, prev)
	if pair.Dry != 2200 {
		t.Errorf("Dry = %d, want 2200 (rounded)", pair.Dry)
	}
}
