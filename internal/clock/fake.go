package clock

// FakeSource returns scripted time values.
type FakeSource struct {
	// Epoch is returned by Now when OK is true.
	Epoch int64

	// OK controls whether time is reported as available.
	OK bool

	// Calls counts Now invocations, so tests can assert the
	// single-attempt-per-boot rule.
	Calls int
}

// Now returns the scripted value.
func (f *FakeSource) Now() (int64, bool) {
	f.Calls++
	if !f.OK {
		return 0, false
	}
	return f.Epoch, true
}
