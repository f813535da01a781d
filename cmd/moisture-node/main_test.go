package main

import (
	"testing"

	"github.com/sweeney/moisture-node/internal/config"
	"github.com/sweeney/moisture-node/internal/logic"
	"github.com/sweeney/moisture-node/internal/store"
)

func TestParseCause(t *testing.T) {
	tests := []struct {
		name string
		want logic.WakeKind
		err  bool
	}{
		{"", "", false},
		{"power-on", logic.WakePowerOn, false},
		{"timer", logic.WakeTimer, false},
		{"button", logic.WakeButtonEdge, false},
		{"cosmic-ray", "", true},
	}
	for _, tt := range tests {
		got, err := parseCause(tt.name)
		if tt.err {
			if err == nil {
				t.Errorf("parseCause(%q): expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseCause(%q): %v", tt.name, err)
			continue
		}
		if got.Kind != tt.want {
			t.Errorf("parseCause(%q) = %s, want %s", tt.name, got.Kind, tt.want)
		}
	}
}

func TestInitialWakeCauseBreadcrumb(t *testing.T) {
	s := store.NewFakeStore()

	// First run: no breadcrumb, so this is a genuine power-on.
	cause := initialWakeCause(s)
	if cause.Kind != logic.WakePowerOn {
		t.Errorf("first run: %s, want %s", cause.Kind, logic.WakePowerOn)
	}
	if s.Data[nsNodeState]["booted"] != "1" {
		t.Errorf("breadcrumb not written: %v", s.Data[nsNodeState])
	}

	// Any later run resumes as a timer wake.
	cause = initialWakeCause(s)
	if cause.Kind != logic.WakeTimer {
		t.Errorf("second run: %s, want %s", cause.Kind, logic.WakeTimer)
	}
}

func TestNodeConfigMapping(t *testing.T) {
	cfg := config.Default()
	nc := nodeConfig(cfg)

	if nc.MeasureSamples != 10 || nc.CalibrateSamples != 20 {
		t.Errorf("sample counts = %d/%d, want 10/20", nc.MeasureSamples, nc.CalibrateSamples)
	}
	if nc.Debounce.Milliseconds() != 100 {
		t.Errorf("debounce = %v, want 100ms", nc.Debounce)
	}
	if nc.FirstBootSleep != 3600 || nc.PostCalibration != 300 {
		t.Errorf("sleep constants = %d/%d, want 3600/300", nc.FirstBootSleep, nc.PostCalibration)
	}
}

func TestNewDelivererRequiresAnEndpoint(t *testing.T) {
	cfg := config.Default() // mqtt mode, no broker
	s := store.NewFakeStore()
	if _, err := newDeliverer(cfg, s); err == nil {
		t.Error("expected error with no broker configured anywhere")
	}

	cfg.Delivery.Mode = "webhook"
	if _, err := newDeliverer(cfg, s); err == nil {
		t.Error("expected error with no webhook url configured anywhere")
	}

	// Stored endpoint credential is the fallback.
	s.Seed(store.NSCredentials, store.KeyEndpoint, "https://hooks.example.net/soil")
	d, err := newDeliverer(cfg, s)
	if err != nil {
		t.Fatalf("newDeliverer with stored endpoint: %v", err)
	}
	d.Close()
}
