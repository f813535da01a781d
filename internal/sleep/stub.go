//go:build !linux

package sleep

import (
	"errors"

	"github.com/sweeney/moisture-node/internal/logic"
)

// RealArmer is not available on non-Linux platforms.
type RealArmer struct {
	Chip string
	Pin  int
}

// NewRealArmer creates a stub armer on non-Linux platforms.
func NewRealArmer(chip string, pin int) *RealArmer {
	return &RealArmer{Chip: chip, Pin: pin}
}

// Arm is not implemented on non-Linux platforms.
func (a *RealArmer) Arm(plan logic.SleepPlan) (logic.WakeCause, error) {
	return logic.WakeCause{}, errors.New("sleep: not supported on this platform (requires Linux)")
}
