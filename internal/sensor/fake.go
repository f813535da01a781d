package sensor

import "errors"

// FakeReader is a test double that returns scripted raw samples.
type FakeReader struct {
	// Samples contains scripted raw values. Each call to Sample()
	// consumes the next one.
	Samples []int

	// index tracks current position in Samples
	index int

	// Reads counts how many samples were taken.
	Reads int

	// ReadError, if set, will be returned by Sample()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []int) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Sample returns the next scripted value.
// If samples are exhausted, returns the last value repeatedly.
func (f *FakeReader) Sample() (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	f.Reads++
	v := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return v, nil
}
