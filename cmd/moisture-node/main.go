// Command moisture-node runs a battery-powered soil sensor's control cycle:
// decide why the device woke, take the matching action, and arm the next
// sleep. On a Linux host, deep sleep is modelled by blocking on the armed
// wake sources.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sweeney/moisture-node/internal/clock"
	"github.com/sweeney/moisture-node/internal/config"
	"github.com/sweeney/moisture-node/internal/console"
	"github.com/sweeney/moisture-node/internal/delivery"
	"github.com/sweeney/moisture-node/internal/gpio"
	"github.com/sweeney/moisture-node/internal/logic"
	"github.com/sweeney/moisture-node/internal/node"
	"github.com/sweeney/moisture-node/internal/sensor"
	"github.com/sweeney/moisture-node/internal/sleep"
	"github.com/sweeney/moisture-node/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to node config yaml (defaults apply when empty)")
	consoleMode := flag.Bool("console", false, "Run the interactive diagnostic console instead of the wake loop")
	once := flag.Bool("once", false, "Run a single wake cycle and exit (for external schedulers)")
	causeName := flag.String("cause", "", `Wake cause override: "power-on", "timer" or "button" (empty = auto)`)
	printState := flag.Bool("print-state", false, "Print calibration and configuration state and exit")
	flag.Parse()

	// .env is optional; it carries deployment overrides like MQTT_BROKER.
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	cfg.ApplyEnv()

	if err := run(cfg, *consoleMode, *once, *causeName, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, consoleMode, once bool, causeName string, printState bool) error {
	st, err := store.NewFileStore(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	if printState {
		return printStoredState(st, os.Stdout)
	}

	reader, err := sensor.NewRealReader(cfg.ADC.Device, cfg.ADC.Channel)
	if err != nil {
		return fmt.Errorf("init sensor: %w", err)
	}

	button, err := gpio.NewRealButton(cfg.GPIO.Chip, cfg.GPIO.Pin)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer button.Close()

	deliverer, err := newDeliverer(cfg, st)
	if err != nil {
		return fmt.Errorf("init delivery: %w", err)
	}
	defer deliverer.Close()

	n := node.New(nodeConfig(cfg), node.Deps{
		Sensor:  reader,
		Button:  button,
		Store:   st,
		Deliver: deliverer,
		Clock:   clock.NewNTPSource(cfg.Time.NTPServer, cfg.NTPTimeout()),
	})

	cons := console.New(n, st, os.Stdin, os.Stdout)
	n.AttachSetup(cons)
	if consoleMode {
		return cons.Run()
	}

	cause, err := parseCause(causeName)
	if err != nil {
		return err
	}
	if cause.Kind == "" {
		cause = initialWakeCause(st)
	}

	if once {
		plan := n.RunCycle(cause)
		log.Printf("cycle done: next wake in %ds, sources=%v", plan.Seconds, plan.Sources)
		return nil
	}

	armer := sleep.NewRealArmer(cfg.GPIO.Chip, cfg.GPIO.Pin)
	for {
		log.Printf("wake: %s", cause.Kind)
		plan := n.RunCycle(cause)
		log.Printf("sleeping %ds, sources=%v", plan.Seconds, plan.Sources)

		cause, err = armer.Arm(plan)
		if err != nil {
			return fmt.Errorf("arm sleep: %w", err)
		}
	}
}

// nodeConfig maps the file config onto the dispatcher's tunables.
func nodeConfig(cfg *config.Config) node.Config {
	return node.Config{
		MeasureSamples:   cfg.Sampling.MeasureSamples,
		CalibrateSamples: cfg.Sampling.CalibrateSamples,
		Settle:           cfg.Settle(),
		ButtonPoll:       cfg.ButtonPoll(),
		Debounce:         cfg.Debounce(),
		MaxPressWait:     cfg.MaxPressWait(),
		TZOffset:         cfg.TZOffset(),
		FirstBootSleep:   cfg.Sleep.FirstBootSeconds,
		PostCalibration:  cfg.Sleep.PostCalibrationSeconds,
	}
}

// newDeliverer picks the transport. The configured address wins; the stored
// endpoint credential is the fallback so a console-provisioned node needs
// no config file edit.
func newDeliverer(cfg *config.Config, st store.Store) (delivery.Deliverer, error) {
	stored := ""
	if b, err := st.Open(store.NSCredentials); err == nil {
		stored = b.GetString(store.KeyEndpoint, "")
		b.Close()
	}

	switch cfg.Delivery.Mode {
	case "webhook":
		url := cfg.Delivery.WebhookURL
		if url == "" {
			url = stored
		}
		if url == "" {
			return nil, fmt.Errorf("no webhook url configured")
		}
		return delivery.NewWebhookDeliverer(url), nil
	default:
		broker := cfg.Delivery.Broker
		if broker == "" {
			broker = stored
		}
		if broker == "" {
			return nil, fmt.Errorf("no broker configured")
		}
		return delivery.NewMQTTDeliverer(broker, cfg.Delivery.ClientID)
	}
}

// parseCause maps the -cause flag onto a wake cause. Empty means "decide
// from the breadcrumb".
func parseCause(name string) (logic.WakeCause, error) {
	switch name {
	case "":
		return logic.WakeCause{}, nil
	case "power-on":
		return logic.WakeCause{Kind: logic.WakePowerOn}, nil
	case "timer":
		return logic.WakeCause{Kind: logic.WakeTimer}, nil
	case "button":
		return logic.WakeCause{Kind: logic.WakeButtonEdge}, nil
	default:
		return logic.WakeCause{}, fmt.Errorf("unknown wake cause %q", name)
	}
}

// nsNodeState holds the boot breadcrumb.
const nsNodeState = "node-state"

// initialWakeCause distinguishes the first-ever power-on from a process
// restart. On a host, resuming the process after the breadcrumb exists is
// the moral equivalent of a timer wake — power was never lost.
func initialWakeCause(st store.Store) logic.WakeCause {
	b, err := st.Open(nsNodeState)
	if err != nil {
		log.Printf("open node state: %v", err)
		return logic.WakeCause{Kind: logic.WakePowerOn}
	}
	defer b.Close()

	if b.GetInt("booted", 0) == 0 {
		if err := b.PutInt("booted", 1); err != nil {
			log.Printf("record boot breadcrumb: %v", err)
		}
		return logic.WakeCause{Kind: logic.WakePowerOn}
	}
	return logic.WakeCause{Kind: logic.WakeTimer}
}

// printStoredState mirrors the old bench workflow: show what the node will
// act on, without touching hardware.
func printStoredState(st store.Store, out *os.File) error {
	cal, err := st.Open(store.NSCalibration)
	if err != nil {
		return fmt.Errorf("open calibration: %w", err)
	}
	dry := cal.GetInt(store.KeyDry, logic.DefaultCalibration.Dry)
	wet := cal.GetInt(store.KeyWet, logic.DefaultCalibration.Wet)
	cal.Close()

	creds, err := st.Open(store.NSCredentials)
	if err != nil {
		return fmt.Errorf("open credentials: %w", err)
	}
	endpoint := creds.GetString(store.KeyEndpoint, "")
	creds.Close()

	configured := "no"
	if endpoint != "" {
		configured = "yes"
	}
	fmt.Fprintf(out, "calibration: dry=%d wet=%d\nconfigured: %s\n", dry, wet, configured)
	return nil
}
