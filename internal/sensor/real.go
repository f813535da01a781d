package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RealReader reads raw samples from a Linux IIO ADC channel via sysfs.
type RealReader struct {
	path string
}

// NewRealReader creates a reader for the given IIO device and voltage
// channel. It fails fast if the channel is not present so a miswired probe
// is caught at startup, not mid-measurement.
func NewRealReader(device, channel int) (*RealReader, error) {
	path := fmt.Sprintf("/sys/bus/iio/devices/iio:device%d/in_voltage%d_raw", device, channel)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("iio channel %s: %w", path, err)
	}
	return &RealReader{path: path}, nil
}

// Sample reads one raw value from the channel.
func (r *RealReader) Sample() (int, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return 0, fmt.Errorf("read adc: %w", err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse adc value %q: %w", strings.TrimSpace(string(data)), err)
	}
	return v, nil
}
