//go:build linux

package sleep

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/moisture-node/internal/logic"
)

// RealArmer blocks on a timer and a falling-edge watch on the button line.
type RealArmer struct {
	Chip string
	Pin  int
}

// NewRealArmer creates an armer for the given button line.
func NewRealArmer(chip string, pin int) *RealArmer {
	return &RealArmer{Chip: chip, Pin: pin}
}

// Arm requests the button line with a falling-edge watch, starts the wake
// timer, and blocks until either fires. The edge watch is armed before the
// timer and regardless of the plan's duration, including zero.
func (a *RealArmer) Arm(plan logic.SleepPlan) (logic.WakeCause, error) {
	edge := make(chan struct{}, 1)
	line, err := gpiocdev.RequestLine(a.Chip, a.Pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) {
			select {
			case edge <- struct{}{}:
			default:
			}
		}))
	if err != nil {
		return logic.WakeCause{}, fmt.Errorf("arm button edge: %w", err)
	}
	defer line.Close()

	timer := time.NewTimer(time.Duration(plan.Seconds) * time.Second)
	defer timer.Stop()

	select {
	case <-timer.C:
		return logic.WakeCause{Kind: logic.WakeTimer}, nil
	case <-edge:
		return logic.WakeCause{Kind: logic.WakeButtonEdge}, nil
	}
}
