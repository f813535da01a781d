package logic

import (
	"testing"
	"time"
)

func TestClassifyPress(t *testing.T) {
	tests := []struct {
		ms   int
		want PressKind
	}{
		{0, PressShort},
		{900, PressShort},
		{999, PressShort},
		{1000, PressLong}, // boundary is inclusive on Long
		{1001, PressLong},
		{5000, PressLong},
	}
	for _, tt := range tests {
		got := ClassifyPress(time.Duration(tt.ms) * time.Millisecond)
		if got != tt.want {
			t.Errorf("ClassifyPress(%dms) = %s, want %s", tt.ms, got, tt.want)
		}
	}
}
