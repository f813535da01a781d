// Package sleep arms the node's wake sources and suspends execution until
// one of them fires. On real hardware this is deep suspension; on a Linux
// host the process blocks instead, which preserves the same control flow:
// nothing after Arm runs until the next wake cause exists.
package sleep

import "github.com/sweeney/moisture-node/internal/logic"

// Armer configures wake sources from a plan and suspends.
type Armer interface {
	// Arm arms every wake source in the plan, suspends for up to
	// plan.Seconds, and reports why the node woke. Arming the button
	// edge is unconditional in every real and fake implementation —
	// a scheduling bug must never leave the device unreachable.
	Arm(plan logic.SleepPlan) (logic.WakeCause, error)
}
