package delivery

// FakeDeliverer records delivered readings for test assertions.
type FakeDeliverer struct {
	// Readings contains all readings that were delivered.
	Readings []Reading

	// Payloads contains the JSON payloads that were produced.
	Payloads [][]byte

	// DeliverError, if set, will be returned by Deliver.
	DeliverError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeDeliverer creates a FakeDeliverer for testing.
func NewFakeDeliverer() *FakeDeliverer {
	return &FakeDeliverer{}
}

// Deliver records the reading and its payload.
func (f *FakeDeliverer) Deliver(r Reading) error {
	if f.DeliverError != nil {
		return f.DeliverError
	}

	payload, err := FormatPayload(r)
	if err != nil {
		return err
	}

	f.Readings = append(f.Readings, r)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// Close marks the deliverer as closed.
func (f *FakeDeliverer) Close() error {
	f.Closed = true
	return nil
}
