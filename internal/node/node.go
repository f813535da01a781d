// Package node implements the wake dispatcher: the top-level state machine
// that decides, once per boot, why the node woke, what to do about it, and
// how long to sleep next. Every path through a cycle ends in a sleep plan;
// nothing in here is allowed to be fatal.
package node

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/sweeney/moisture-node/internal/clock"
	"github.com/sweeney/moisture-node/internal/delivery"
	"github.com/sweeney/moisture-node/internal/gpio"
	"github.com/sweeney/moisture-node/internal/logic"
	"github.com/sweeney/moisture-node/internal/sensor"
	"github.com/sweeney/moisture-node/internal/store"
)

// Setup acquires device configuration from the operator. Implemented by the
// console; blocking, bounded by a human rather than the scheduler.
type Setup interface {
	AcquireCredentials() error
}

// Config contains the dispatcher's tunables.
type Config struct {
	MeasureSamples   int           // reads averaged per measurement
	CalibrateSamples int           // reads averaged per calibration
	Settle           time.Duration // pause between sensor reads
	ButtonPoll       time.Duration // press-timing poll interval
	Debounce         time.Duration // press detection window after wake
	MaxPressWait     time.Duration // upper bound on press timing
	TZOffset         time.Duration // applied to epoch time before alignment
	FirstBootSleep   int           // seconds, when unconfigured
	PostCalibration  int           // seconds, after a calibration run
}

// Deps are the node's external collaborators.
type Deps struct {
	Sensor  sensor.Reader
	Button  gpio.Button
	Store   store.Store
	Deliver delivery.Deliverer
	Clock   clock.Source
	Setup   Setup // may be nil when no operator console is attached
}

// Node dispatches one wake cycle at a time.
type Node struct {
	cfg  Config
	deps Deps

	// Injectable for tests.
	now   func() time.Time
	pause func(time.Duration)
}

// New creates a dispatcher with real time functions.
func New(cfg Config, deps Deps) *Node {
	return &Node{
		cfg:   cfg,
		deps:  deps,
		now:   time.Now,
		pause: time.Sleep,
	}
}

// AttachSetup wires the operator configuration path. Without one, an
// unconfigured timer wake takes the long fallback sleep instead of blocking
// on a prompt nobody will answer.
func (n *Node) AttachSetup(s Setup) {
	n.deps.Setup = s
}

// RunCycle handles one boot: inspect the wake cause, run the matching
// handler, return the plan for the next suspension. The caller hands the
// plan to sleep arming; there is no idle loop to return to.
func (n *Node) RunCycle(cause logic.WakeCause) logic.SleepPlan {
	switch cause.Kind {
	case logic.WakePowerOn:
		return n.firstBoot()
	case logic.WakeButtonEdge:
		return n.buttonWake()
	case logic.WakeTimer:
		return n.timerWake()
	case logic.WakeOther:
		log.Printf("unrecognized wake code %d, handling as timer wake", cause.Code)
		return n.timerWake()
	default:
		log.Printf("unknown wake kind %q, handling as timer wake", cause.Kind)
		return n.timerWake()
	}
}

// firstBoot handles a power-on wake. No sensor read and no delivery happen
// on this path: an unconfigured node takes a long fallback sleep, a
// configured one syncs time and falls into the aligned schedule.
func (n *Node) firstBoot() logic.SleepPlan {
	if !n.configured() {
		log.Printf("first boot without configuration, sleeping %ds", n.cfg.FirstBootSleep)
		return logic.NewSleepPlan(n.cfg.FirstBootSleep)
	}
	epoch, ok := n.deps.Clock.Now()
	return n.scheduleNext(epoch, ok)
}

// buttonWake times the press that woke the node and dispatches on its
// length. Short presses force one measurement with no configuration
// re-check; long presses run calibration and sleep a short fixed interval
// so the operator can immediately trigger another run.
func (n *Node) buttonWake() logic.SleepPlan {
	d := n.pressDuration()
	kind := logic.ClassifyPress(d)
	log.Printf("button press %v classified %s", d.Round(time.Millisecond), kind)

	if kind == logic.PressLong {
		n.RunCalibration()
		return logic.NewSleepPlan(n.cfg.PostCalibration)
	}

	epoch, ok := n.deps.Clock.Now()
	n.measureAndDeliver(epoch, ok)
	return n.scheduleNext(epoch, ok)
}

// timerWake is the normal operation path. A node that lost its
// configuration blocks on the operator for new credentials and then
// restarts the cycle explicitly; otherwise it measures, delivers, and
// realigns with the schedule.
func (n *Node) timerWake() logic.SleepPlan {
	if !n.configured() {
		if n.deps.Setup == nil {
			log.Printf("no configuration and no operator attached, sleeping %ds", n.cfg.FirstBootSleep)
			return logic.NewSleepPlan(n.cfg.FirstBootSleep)
		}
		if err := n.deps.Setup.AcquireCredentials(); err != nil {
			log.Printf("configuration acquisition failed: %v", err)
			return logic.NewSleepPlan(n.cfg.FirstBootSleep)
		}
		if !n.configured() {
			log.Printf("configuration still incomplete, sleeping %ds", n.cfg.FirstBootSleep)
			return logic.NewSleepPlan(n.cfg.FirstBootSleep)
		}
		log.Printf("configuration acquired, restarting wake cycle")
		return n.timerWake()
	}

	epoch, ok := n.deps.Clock.Now()
	n.measureAndDeliver(epoch, ok)
	return n.scheduleNext(epoch, ok)
}

// MeasureAndDeliver takes one averaged measurement and makes one delivery
// attempt. The console uses this entry point too — the diagnostic path and
// the autonomous path are the same code.
func (n *Node) MeasureAndDeliver() (delivery.Reading, error) {
	epoch, ok := n.deps.Clock.Now()
	return n.measureAndDeliver(epoch, ok)
}

func (n *Node) measureAndDeliver(epoch int64, ok bool) (delivery.Reading, error) {
	avg, err := n.average(n.cfg.MeasureSamples)
	if err != nil {
		log.Printf("measurement failed: %v", err)
		return delivery.Reading{}, err
	}

	pair := n.loadCalibration()
	if !pair.RangeValid() {
		log.Printf("calibration range degenerate (dry=%d wet=%d), mapping saturates", pair.Dry, pair.Wet)
	}

	reading := delivery.Reading{
		Raw:     int(math.Round(avg)),
		Percent: logic.MapMoisture(avg, pair),
	}
	if ok {
		reading.Timestamp = epoch
	} else {
		log.Printf("time unavailable, delivering timestamp 0")
	}

	if err := n.deps.Deliver.Deliver(reading); err != nil {
		// No retry this boot; the next scheduled wake attempts again.
		log.Printf("delivery failed: %v", err)
		return reading, err
	}
	log.Printf("delivered raw=%d moisture=%.1f%%", reading.Raw, reading.Percent)
	return reading, nil
}

// RunCalibration measures with the longer calibration average, classifies
// the reading, and persists the pair when it changed. Ambiguous readings
// and inverted ranges are advisory only; prior calibration survives every
// failure.
func (n *Node) RunCalibration() (logic.CalibrationPair, logic.CalibrationOutcome, error) {
	prev := n.loadCalibration()

	avg, err := n.average(n.cfg.CalibrateSamples)
	if err != nil {
		log.Printf("calibration measurement failed: %v", err)
		return prev, logic.OutcomeNoChange, err
	}

	pair, outcome := logic.Calibrate(avg, prev)
	if outcome == logic.OutcomeNoChange {
		log.Printf("calibration reading %.0f is ambiguous, keeping dry=%d wet=%d", avg, prev.Dry, prev.Wet)
	} else {
		if err := n.saveCalibration(pair); err != nil {
			log.Printf("persist calibration: %v", err)
			return prev, outcome, err
		}
		log.Printf("calibration %s: dry=%d wet=%d", outcome, pair.Dry, pair.Wet)
	}

	if !pair.RangeValid() {
		log.Printf("warning: calibration range invalid (dry=%d <= wet=%d)", pair.Dry, pair.Wet)
	}
	return pair, outcome, nil
}

// ScheduleNext acquires time once and plans the next aligned wake. Exposed
// for the console's schedule test.
func (n *Node) ScheduleNext() logic.SleepPlan {
	epoch, ok := n.deps.Clock.Now()
	return n.scheduleNext(epoch, ok)
}

// scheduleNext applies the timezone offset and aligns to the next :00/:30
// boundary. The planner itself is offset agnostic.
func (n *Node) scheduleNext(epoch int64, ok bool) logic.SleepPlan {
	var local time.Time
	if ok {
		local = time.Unix(epoch, 0).UTC().Add(n.cfg.TZOffset)
	} else {
		log.Printf("time unavailable, using %ds fallback", logic.FallbackSleepSeconds)
	}
	return logic.NewSleepPlan(logic.NextWake(local, ok))
}

// average reads count samples with a settle pause between reads and returns
// their arithmetic mean.
func (n *Node) average(count int) (float64, error) {
	var sum float64
	for i := 0; i < count; i++ {
		if i > 0 {
			n.pause(n.cfg.Settle)
		}
		v, err := n.deps.Sensor.Sample()
		if err != nil {
			return 0, fmt.Errorf("sample %d/%d: %w", i+1, count, err)
		}
		sum += float64(v)
	}
	return sum / float64(count), nil
}

// pressDuration measures how long the wake press is held: from boot until
// release, sampled after the debounce window and bounded by MaxPressWait.
// A read error ends the measurement with whatever elapsed — a broken button
// must still classify and reach sleep.
func (n *Node) pressDuration() time.Duration {
	start := n.now()
	n.pause(n.cfg.Debounce)

	for {
		pressed, err := n.deps.Button.Pressed()
		if err != nil {
			log.Printf("button read error: %v", err)
			return n.now().Sub(start)
		}
		elapsed := n.now().Sub(start)
		if !pressed || elapsed >= n.cfg.MaxPressWait {
			return elapsed
		}
		n.pause(n.cfg.ButtonPoll)
	}
}

// configured reports whether both the network and the remote endpoint
// credentials are present.
func (n *Node) configured() bool {
	wifi, err := n.deps.Store.Open(store.NSWifi)
	if err != nil {
		log.Printf("open wifi config: %v", err)
		return false
	}
	ssid := wifi.GetString(store.KeySSID, "")
	wifi.Close()

	creds, err := n.deps.Store.Open(store.NSCredentials)
	if err != nil {
		log.Printf("open credentials: %v", err)
		return false
	}
	endpoint := creds.GetString(store.KeyEndpoint, "")
	creds.Close()

	return ssid != "" && endpoint != ""
}

// loadCalibration reads the persisted pair, falling back to the shipped
// defaults when absent or unreadable.
func (n *Node) loadCalibration() logic.CalibrationPair {
	b, err := n.deps.Store.Open(store.NSCalibration)
	if err != nil {
		log.Printf("open calibration: %v", err)
		return logic.DefaultCalibration
	}
	defer b.Close()
	return logic.CalibrationPair{
		Dry: b.GetInt(store.KeyDry, logic.DefaultCalibration.Dry),
		Wet: b.GetInt(store.KeyWet, logic.DefaultCalibration.Wet),
	}
}

// saveCalibration persists the pair before the calibration run returns.
func (n *Node) saveCalibration(pair logic.CalibrationPair) error {
	b, err := n.deps.Store.Open(store.NSCalibration)
	if err != nil {
		return fmt.Errorf("open calibration: %w", err)
	}
	if err := b.PutInt(store.KeyDry, pair.Dry); err != nil {
		b.Close()
		return fmt.Errorf("put dry_value: %w", err)
	}
	if err := b.PutInt(store.KeyWet, pair.Wet); err != nil {
		b.Close()
		return fmt.Errorf("put wet_value: %w", err)
	}
	if err := b.Close(); err != nil {
		return fmt.Errorf("commit calibration: %w", err)
	}
	return nil
}
