package sleep

import (
	"errors"

	"github.com/sweeney/moisture-node/internal/logic"
)

// ErrNoMoreWakes is returned by FakeArmer when its scripted causes run out.
// Tests use it to terminate a simulated boot-cycle loop.
var ErrNoMoreWakes = errors.New("no more scripted wake causes")

// FakeArmer records sleep plans and returns scripted wake causes.
type FakeArmer struct {
	// Plans contains every plan that was armed, in order.
	Plans []logic.SleepPlan

	// Causes are returned by successive Arm calls.
	Causes []logic.WakeCause

	// ArmError, if set, will be returned by Arm (after recording the plan).
	ArmError error

	index int
}

// NewFakeArmer creates a FakeArmer that will wake with the given causes.
func NewFakeArmer(causes ...logic.WakeCause) *FakeArmer {
	return &FakeArmer{Causes: causes}
}

// Arm records the plan and returns the next scripted cause.
func (f *FakeArmer) Arm(plan logic.SleepPlan) (logic.WakeCause, error) {
	f.Plans = append(f.Plans, plan)
	if f.ArmError != nil {
		return logic.WakeCause{}, f.ArmError
	}
	if f.index >= len(f.Causes) {
		return logic.WakeCause{}, ErrNoMoreWakes
	}
	cause := f.Causes[f.index]
	f.index++
	return cause, nil
}
