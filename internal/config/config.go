// Package config loads the node configuration from a yaml file, with
// defaults for every field and environment overrides for the values that
// differ between deployments.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the node configuration.
type Config struct {
	GPIO     GPIOConfig     `yaml:"gpio"`
	ADC      ADCConfig      `yaml:"adc"`
	Sampling SamplingConfig `yaml:"sampling"`
	Sleep    SleepConfig    `yaml:"sleep"`
	Time     TimeConfig     `yaml:"time"`
	Delivery DeliveryConfig `yaml:"delivery"`
	StateDir string         `yaml:"state_dir"`
}

// GPIOConfig locates the wake button line.
type GPIOConfig struct {
	Chip string `yaml:"chip"`
	Pin  int    `yaml:"pin"`
}

// ADCConfig locates the IIO channel the moisture probe is wired to.
type ADCConfig struct {
	Device  int `yaml:"device"`
	Channel int `yaml:"channel"`
}

// SamplingConfig contains measurement parameters. The debounce window and
// calibration sample count are tunables carried over from the original
// deployment, not derived values.
type SamplingConfig struct {
	MeasureSamples   int `yaml:"measure_samples"`   // reads averaged per measurement
	CalibrateSamples int `yaml:"calibrate_samples"` // reads averaged per calibration
	SettleMs         int `yaml:"settle_ms"`         // pause between sensor reads
	ButtonPollMs     int `yaml:"button_poll_ms"`    // press-timing poll interval
	DebounceMs       int `yaml:"debounce_ms"`       // press detection window after wake
	MaxPressWaitMs   int `yaml:"max_press_wait_ms"` // upper bound on press timing
}

// SleepConfig contains the fixed sleep intervals outside the aligned
// schedule.
type SleepConfig struct {
	FirstBootSeconds       int `yaml:"first_boot_seconds"`       // unconfigured power-on
	PostCalibrationSeconds int `yaml:"post_calibration_seconds"` // after any calibration run
}

// TimeConfig contains network time parameters.
type TimeConfig struct {
	NTPServer       string `yaml:"ntp_server"`
	TimeoutMs       int    `yaml:"timeout_ms"`
	TZOffsetMinutes int    `yaml:"tz_offset_minutes"` // applied before schedule alignment
}

// DeliveryConfig selects and addresses the upstream transport.
type DeliveryConfig struct {
	Mode       string `yaml:"mode"` // "mqtt" or "webhook"
	Broker     string `yaml:"broker"`
	ClientID   string `yaml:"client_id"`
	WebhookURL string `yaml:"webhook_url"`
}

// Default returns the configuration the node ships with.
func Default() *Config {
	return &Config{
		GPIO: GPIOConfig{Chip: "gpiochip0", Pin: 4},
		Sampling: SamplingConfig{
			MeasureSamples:   10,
			CalibrateSamples: 20,
			SettleMs:         50,
			ButtonPollMs:     10,
			DebounceMs:       100,
			MaxPressWaitMs:   5000,
		},
		Sleep: SleepConfig{
			FirstBootSeconds:       3600,
			PostCalibrationSeconds: 300,
		},
		Time: TimeConfig{
			NTPServer: "pool.ntp.org",
			TimeoutMs: 5000,
		},
		Delivery: DeliveryConfig{
			Mode:     "mqtt",
			ClientID: "moisture-node",
		},
		StateDir: "/var/lib/moisture-node",
	}
}

// Load reads the config file and merges it over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides deployment-specific values from the environment.
// Used with a .env file loaded at startup.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		c.Delivery.Broker = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		c.Delivery.WebhookURL = v
	}
	if v := os.Getenv("NTP_SERVER"); v != "" {
		c.Time.NTPServer = v
	}
	if v := os.Getenv("STATE_DIR"); v != "" {
		c.StateDir = v
	}
}

// Validate checks values that would make the node misbehave quietly.
func (c *Config) Validate() error {
	if c.Sampling.MeasureSamples <= 0 {
		return fmt.Errorf("sampling.measure_samples must be positive, got %d", c.Sampling.MeasureSamples)
	}
	if c.Sampling.CalibrateSamples <= 0 {
		return fmt.Errorf("sampling.calibrate_samples must be positive, got %d", c.Sampling.CalibrateSamples)
	}
	if c.Sampling.SettleMs < 0 {
		return fmt.Errorf("sampling.settle_ms must not be negative, got %d", c.Sampling.SettleMs)
	}
	if c.Sleep.FirstBootSeconds <= 0 {
		return fmt.Errorf("sleep.first_boot_seconds must be positive, got %d", c.Sleep.FirstBootSeconds)
	}
	if c.Sleep.PostCalibrationSeconds <= 0 {
		return fmt.Errorf("sleep.post_calibration_seconds must be positive, got %d", c.Sleep.PostCalibrationSeconds)
	}
	switch c.Delivery.Mode {
	case "mqtt", "webhook":
	default:
		return fmt.Errorf("delivery.mode must be mqtt or webhook, got %q", c.Delivery.Mode)
	}
	return nil
}

// Settle returns the pause between sensor reads.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.Sampling.SettleMs) * time.Millisecond
}

// ButtonPoll returns the press-timing poll interval.
func (c *Config) ButtonPoll() time.Duration {
	return time.Duration(c.Sampling.ButtonPollMs) * time.Millisecond
}

// Debounce returns the press detection window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Sampling.DebounceMs) * time.Millisecond
}

// MaxPressWait returns the upper bound on press timing.
func (c *Config) MaxPressWait() time.Duration {
	return time.Duration(c.Sampling.MaxPressWaitMs) * time.Millisecond
}

// NTPTimeout returns the bound on one network time query.
func (c *Config) NTPTimeout() time.Duration {
	return time.Duration(c.Time.TimeoutMs) * time.Millisecond
}

// TZOffset returns the offset applied before schedule alignment.
func (c *Config) TZOffset() time.Duration {
	return time.Duration(c.Time.TZOffsetMinutes) * time.Minute
}
