// Package console provides the operator-facing diagnostic menu and the
// interactive configuration path. Every action goes through the same node
// entry points as the autonomous wake cycle — there is no parallel
// implementation of measurement, calibration or scheduling here.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sweeney/moisture-node/internal/logic"
	"github.com/sweeney/moisture-node/internal/node"
	"github.com/sweeney/moisture-node/internal/store"
)

// Console runs the interactive operator menu.
type Console struct {
	node  *node.Node
	store store.Store
	in    *bufio.Reader
	out   io.Writer
}

// New creates a console reading operator input from in and writing to out.
func New(n *node.Node, s store.Store, in io.Reader, out io.Writer) *Console {
	return &Console{
		node:  n,
		store: s,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Run loops over the menu until the operator quits or input ends.
func (c *Console) Run() error {
	fmt.Fprintln(c.out, "moisture-node diagnostic console")
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "  1) read       measure and deliver once")
		fmt.Fprintln(c.out, "  2) calibrate  run a calibration pass")
		fmt.Fprintln(c.out, "  3) schedule   show the next wake plan")
		fmt.Fprintln(c.out, "  4) status     show calibration and configuration")
		fmt.Fprintln(c.out, "  5) setup      enter credentials")
		fmt.Fprintln(c.out, "  q) quit")

		choice, err := c.prompt("select")
		if err != nil {
			return nil // input closed; leave quietly
		}

		switch strings.ToLower(choice) {
		case "1", "read":
			c.runRead()
		case "2", "calibrate":
			c.runCalibrate()
		case "3", "schedule":
			c.runSchedule()
		case "4", "status":
			c.runStatus()
		case "5", "setup":
			if err := c.AcquireCredentials(); err != nil {
				fmt.Fprintf(c.out, "setup aborted: %v\n", err)
			}
		case "q", "quit", "exit":
			return nil
		case "":
			// Bare Enter: redraw the menu.
		default:
			fmt.Fprintf(c.out, "unknown option %q\n", choice)
		}
	}
}

func (c *Console) runRead() {
	reading, err := c.node.MeasureAndDeliver()
	if err != nil {
		fmt.Fprintf(c.out, "read failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "raw=%d moisture=%.1f%% timestamp=%d\n",
		reading.Raw, reading.Percent, reading.Timestamp)
}

func (c *Console) runCalibrate() {
	// Same confirmation the field procedure uses: the probe has to be in
	// position (dry air or water) before sampling starts.
	if _, err := c.prompt("place the probe and press Enter"); err != nil {
		return
	}
	pair, outcome, err := c.node.RunCalibration()
	if err != nil {
		fmt.Fprintf(c.out, "calibration failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "outcome=%s dry=%d wet=%d\n", outcome, pair.Dry, pair.Wet)
	if !pair.RangeValid() {
		fmt.Fprintln(c.out, "warning: dry <= wet; readings will saturate until recalibrated")
	}
}

func (c *Console) runSchedule() {
	plan := c.node.ScheduleNext()
	fmt.Fprintf(c.out, "next wake in %ds, sources=%v\n", plan.Seconds, plan.Sources)
}

func (c *Console) runStatus() {
	cal, err := c.store.Open(store.NSCalibration)
	if err != nil {
		fmt.Fprintf(c.out, "open calibration: %v\n", err)
		return
	}
	dry := cal.GetInt(store.KeyDry, logic.DefaultCalibration.Dry)
	wet := cal.GetInt(store.KeyWet, logic.DefaultCalibration.Wet)
	cal.Close()

	creds, err := c.store.Open(store.NSCredentials)
	if err != nil {
		fmt.Fprintf(c.out, "open credentials: %v\n", err)
		return
	}
	endpoint := creds.GetString(store.KeyEndpoint, "")
	creds.Close()

	fmt.Fprintf(c.out, "calibration: dry=%d wet=%d\n", dry, wet)
	if endpoint == "" {
		fmt.Fprintln(c.out, "endpoint: (not configured)")
	} else {
		fmt.Fprintf(c.out, "endpoint: %s\n", endpoint)
	}
}

// AcquireCredentials prompts for network and endpoint credentials and
// persists them. It implements node.Setup, so an unconfigured timer wake
// blocks here until the operator finishes. Empty answers re-prompt; closed
// input aborts with an error so the dispatcher can fall back to sleep.
func (c *Console) AcquireCredentials() error {
	ssid, err := c.promptRequired("wifi ssid")
	if err != nil {
		return err
	}
	psk, err := c.prompt("wifi psk")
	if err != nil {
		return err
	}
	endpoint, err := c.promptRequired("delivery endpoint")
	if err != nil {
		return err
	}

	wifi, err := c.store.Open(store.NSWifi)
	if err != nil {
		return fmt.Errorf("open wifi config: %w", err)
	}
	if err := wifi.PutString(store.KeySSID, ssid); err != nil {
		wifi.Close()
		return fmt.Errorf("save ssid: %w", err)
	}
	if err := wifi.PutString(store.KeyPSK, psk); err != nil {
		wifi.Close()
		return fmt.Errorf("save psk: %w", err)
	}
	if err := wifi.Close(); err != nil {
		return fmt.Errorf("commit wifi config: %w", err)
	}

	creds, err := c.store.Open(store.NSCredentials)
	if err != nil {
		return fmt.Errorf("open credentials: %w", err)
	}
	if err := creds.PutString(store.KeyEndpoint, endpoint); err != nil {
		creds.Close()
		return fmt.Errorf("save endpoint: %w", err)
	}
	if err := creds.Close(); err != nil {
		return fmt.Errorf("commit credentials: %w", err)
	}

	fmt.Fprintln(c.out, "configuration saved")
	return nil
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) promptRequired(label string) (string, error) {
	for {
		v, err := c.prompt(label)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		fmt.Fprintf(c.out, "%s must not be empty\n", label)
		// Re-prompt, but bail if input is gone entirely.
		if _, err := c.in.Peek(1); err != nil {
			return "", errors.New("input closed")
		}
	}
}
