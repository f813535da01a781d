// Package sensor reads raw moisture samples with hardware abstraction.
// The real implementation reads a Linux IIO ADC channel; the fake returns
// scripted values for tests. One read yields one noisy sample — averaging
// and settling are the caller's job.
package sensor

// Reader reads one raw sample per call.
type Reader interface {
	// Sample returns a single raw ADC reading in the device span
	// (0–4095 for the 12-bit converters this node ships with).
	Sample() (int, error)
}

// Defaults for the IIO ADC channel the probe is wired to.
const (
	DefaultDevice  = 0
	DefaultChannel = 0
)
